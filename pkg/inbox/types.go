package inbox

import "time"

// SMS is one raw message as exposed by the companion gateway app. ID is the
// gateway's stable identifier for the message.
type SMS struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"-"`
}

type FetchRequest struct {
	After time.Time
	Limit int
}

type smsResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Body    string `json:"body"`
	Date    int64  `json:"date"`
}
