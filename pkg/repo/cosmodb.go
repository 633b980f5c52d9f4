package repo

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"

	"github.com/Dineshd5/BudgetSMS/pkg/common"
	"github.com/Dineshd5/BudgetSMS/pkg/database"
)

const (
	messagesContainer     = "messages"
	transactionsContainer = "transactions"
	defaultPoolSize       = 50

	// single logical partition; a personal inbox stays well under the
	// per-partition limits
	sourceSms = "sms"
)

type Cosmo struct {
	cl          *azcosmos.DatabaseClient
	setupCalled bool
}

func NewCosmo(
	cl *azcosmos.Client,
	dbName string,
) (*Cosmo, error) {
	_, err := cl.CreateDatabase(context.Background(), azcosmos.DatabaseProperties{
		ID: dbName,
	}, &azcosmos.CreateDatabaseOptions{})

	c := &Cosmo{}

	if realErr := c.ignoreConflictErr(err); realErr != nil {
		return nil, realErr
	}

	db, err := cl.NewDatabase(dbName)
	if err != nil {
		return nil, err
	}
	c.cl = db

	if err = c.setupContainers(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cosmo) setupContainers() error {
	if c.setupCalled {
		return nil
	}

	for _, containerID := range []string{messagesContainer, transactionsContainer} {
		_, err := c.cl.CreateContainer(context.Background(), azcosmos.ContainerProperties{
			ID: containerID,
			PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
				Paths: []string{"/source"},
			},
		}, &azcosmos.CreateContainerOptions{})
		if c.ignoreConflictErr(err) != nil {
			return err
		}
	}

	c.setupCalled = true

	return nil
}

func (c *Cosmo) ignoreConflictErr(err error) error {
	if err == nil {
		return nil
	}
	var azureErr *azcore.ResponseError
	if errors.As(err, &azureErr) && azureErr.StatusCode == 409 {
		return nil
	}

	return err
}

func (c *Cosmo) getContainer(name string) (*azcosmos.ContainerClient, error) {
	if err := c.setupContainers(); err != nil {
		return nil, err
	}

	return c.cl.NewContainer(name)
}

func (c *Cosmo) AddMessages(ctx context.Context, messages []database.Message) error {
	if len(messages) == 0 {
		return nil
	}

	container, err := c.getContainer(messagesContainer)
	if err != nil {
		return err
	}

	pool := workerpool.New(defaultPoolSize)

	var finalErr error

	for _, msg1 := range messages {
		msgCopy := msg1
		msgCopy.Source = sourceSms

		pool.Submit(func() {
			partitionKey := azcosmos.NewPartitionKeyString(sourceSms)
			bytes, msgErr := json.Marshal(msgCopy)
			if msgErr != nil {
				finalErr = errors.Join(finalErr, msgErr)
				return
			}

			_, createErr := container.CreateItem(ctx, partitionKey, bytes, nil)
			if c.ignoreConflictErr(createErr) != nil {
				finalErr = errors.Join(finalErr, createErr)
			}
		})
	}

	pool.StopWait()

	return finalErr
}

func (c *Cosmo) GetUnprocessedMessages(ctx context.Context) ([]*database.Message, error) {
	container, err := c.getContainer(messagesContainer)
	if err != nil {
		return nil, err
	}

	partitionKey := azcosmos.NewPartitionKeyString(sourceSms)

	query := "SELECT * FROM c where c.isProcessed = false order by c.receivedAt desc"
	pager := container.NewQueryItemsPager(query, partitionKey, nil)

	var items []*database.Message

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return nil, pageErr
		}

		for _, bytes := range response.Items {
			item := database.Message{}
			if err = json.Unmarshal(bytes, &item); err != nil {
				return nil, err
			}

			items = append(items, &item)
		}
	}

	return items, nil
}

func (c *Cosmo) UpdateMessages(ctx context.Context, messages []*database.Message) error {
	container, err := c.getContainer(messagesContainer)
	if err != nil {
		return err
	}

	pool := workerpool.New(defaultPoolSize)
	for _, ms1 := range messages {
		msCopy := ms1
		msCopy.Source = sourceSms

		pool.Submit(func() {
			partitionKey := azcosmos.NewPartitionKeyString(sourceSms)
			bytes, msgErr := json.Marshal(msCopy)
			if msgErr != nil {
				err = errors.Join(err, msgErr)
				return
			}

			if _, upsertErr := container.UpsertItem(ctx, partitionKey, bytes, nil); upsertErr != nil {
				err = errors.Join(err, upsertErr)
			}
		})
	}

	pool.StopWait()

	return err
}

// SaveTransaction checks the ref and creates the document; the read and
// write are not atomic, which is fine for a single-writer personal inbox.
func (c *Cosmo) SaveTransaction(ctx context.Context, tx *database.Transaction) error {
	container, err := c.getContainer(transactionsContainer)
	if err != nil {
		return err
	}

	partitionKey := azcosmos.NewPartitionKeyString(sourceSms)

	query := "SELECT * FROM c where c.ref = @ref"
	parameters := []azcosmos.QueryParameter{
		{
			Name:  "@ref",
			Value: tx.Ref,
		},
	}

	pager := container.NewQueryItemsPager(query, partitionKey, &azcosmos.QueryOptions{
		QueryParameters: parameters,
	})

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return pageErr
		}

		if len(response.Items) > 0 {
			return common.ErrDuplicate
		}
	}

	txCopy := *tx
	txCopy.Source = sourceSms

	b, err := json.Marshal(txCopy)
	if err != nil {
		return err
	}

	_, err = container.CreateItem(ctx, partitionKey, b, nil)
	return err
}

func (c *Cosmo) PendingTransactions(ctx context.Context) ([]*database.Transaction, error) {
	container, err := c.getContainer(transactionsContainer)
	if err != nil {
		return nil, err
	}

	partitionKey := azcosmos.NewPartitionKeyString(sourceSms)

	query := "SELECT * FROM c where c.status = @status order by c.date desc"
	parameters := []azcosmos.QueryParameter{
		{
			Name:  "@status",
			Value: string(database.TransactionStatusPending),
		},
	}

	pager := container.NewQueryItemsPager(query, partitionKey, &azcosmos.QueryOptions{
		QueryParameters: parameters,
	})

	var items []*database.Transaction

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return nil, pageErr
		}

		for _, bytes := range response.Items {
			item := database.Transaction{}
			if err = json.Unmarshal(bytes, &item); err != nil {
				return nil, err
			}

			items = append(items, &item)
		}
	}

	return items, nil
}
