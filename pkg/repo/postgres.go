package repo

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dineshd5/BudgetSMS/pkg/common"
	"github.com/Dineshd5/BudgetSMS/pkg/database"
)

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{
		db: db,
	}
}

func (p *Postgres) AddMessages(ctx context.Context, messages []database.Message) error {
	if len(messages) == 0 {
		return nil
	}

	// rescans resend the same inbox rows; source_id keeps them single
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}},
			DoNothing: true,
		}).
		Create(&messages).Error

	return errors.Wrap(err, "failed to add messages")
}

func (p *Postgres) GetUnprocessedMessages(ctx context.Context) ([]*database.Message, error) {
	var messages []*database.Message

	err := p.db.WithContext(ctx).
		Where("is_processed = ?", false).
		Order("received_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch messages")
	}

	return messages, nil
}

func (p *Postgres) UpdateMessages(ctx context.Context, messages []*database.Message) error {
	for _, message := range messages {
		if err := p.db.WithContext(ctx).Save(message).Error; err != nil {
			return errors.Wrapf(err, "failed to update message %s", message.ID)
		}
	}

	return nil
}

// SaveTransaction inserts a transaction unless its ref is already present.
// A duplicate is reported as common.ErrDuplicate, never as a failure.
func (p *Postgres) SaveTransaction(ctx context.Context, tx *database.Transaction) error {
	result := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ref"}},
			DoNothing: true,
		}).
		Create(tx)

	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to save transaction %s", tx.Ref)
	}

	if result.RowsAffected == 0 {
		return common.ErrDuplicate
	}

	return nil
}

func (p *Postgres) PendingTransactions(ctx context.Context) ([]*database.Transaction, error) {
	var transactions []*database.Transaction

	err := p.db.WithContext(ctx).
		Where("status = ?", database.TransactionStatusPending).
		Order("date desc").
		Find(&transactions).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pending transactions")
	}

	return transactions, nil
}
