package inbox

import (
	"context"
	"fmt"
	"time"

	"github.com/imroc/req/v3"
)

const defaultPageSize = 50

// Fetcher pulls recent messages from the SMS gateway running on the phone.
type Fetcher struct {
	cl      *req.Client
	baseURL string
	token   string
}

func NewFetcher(
	baseURL string,
	token string,
	client *req.Client,
) *Fetcher {
	return &Fetcher{
		cl:      client,
		baseURL: baseURL,
		token:   token,
	}
}

// Fetch pages backwards through the inbox until it runs past request.After
// or collects request.Limit messages.
func (f *Fetcher) Fetch(ctx context.Context, request *FetchRequest) ([]SMS, error) {
	before := int64(0)
	var result []SMS

	for ctx.Err() == nil {
		httpReq := f.cl.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+f.token).
			SetQueryParam("count", fmt.Sprint(defaultPageSize))

		if before > 0 {
			httpReq = httpReq.SetQueryParam("before", fmt.Sprint(before))
		}

		var page []*smsResponse

		resp, err := httpReq.SetSuccessResult(&page).Get(f.baseURL + "/api/v1/messages")
		if err != nil {
			return nil, err
		}

		if resp.IsErrorState() {
			return nil, fmt.Errorf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
		}

		if len(page) == 0 {
			break
		}

		var added int
		for _, msg := range page {
			receivedAt := time.UnixMilli(msg.Date)

			before = msg.Date

			if !receivedAt.After(request.After) {
				continue
			}

			result = append(result, SMS{
				ID:         msg.ID,
				Address:    msg.Address,
				Body:       msg.Body,
				ReceivedAt: receivedAt,
			})
			added++

			if request.Limit > 0 && len(result) >= request.Limit {
				return result, nil
			}
		}

		if added == 0 {
			break
		}
	}

	return result, ctx.Err()
}
