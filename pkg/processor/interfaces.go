package processor

import (
	"context"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package processor_test -source=interfaces.go

type Repo interface {
	AddMessages(ctx context.Context, messages []database.Message) error
	GetUnprocessedMessages(ctx context.Context) ([]*database.Message, error)
	UpdateMessages(ctx context.Context, messages []*database.Message) error
	SaveTransaction(ctx context.Context, tx *database.Transaction) error
	PendingTransactions(ctx context.Context) ([]*database.Transaction, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, request *inbox.FetchRequest) ([]inbox.SMS, error)
}

type NotificationSvc interface {
	SendMessage(ctx context.Context, text string) error
}
