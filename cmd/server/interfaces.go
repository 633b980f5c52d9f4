package main

import (
	"context"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
	"github.com/Dineshd5/BudgetSMS/pkg/processor"
)

type BatchProcessor interface {
	ProcessBatch(
		ctx context.Context,
		smsArr []inbox.SMS,
	) (*processor.ScanSummary, error)
}

type PendingLister interface {
	PendingTransactions(
		ctx context.Context,
	) ([]*database.Transaction, error)
}
