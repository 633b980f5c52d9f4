package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dineshd5/BudgetSMS/pkg/database"
	"github.com/Dineshd5/BudgetSMS/pkg/dlt"
)

type Parser struct {
}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Type() string {
	return "sms"
}

// ParseMessage turns one SMS into a transaction. A (nil, nil) result means
// the message is not transactional: promotional sender, or no parseable
// amount. Extractor misses never abort the pipeline; every secondary field
// has a fallback.
func (p *Parser) ParseMessage(
	_ context.Context,
	body string,
	receivedAt time.Time,
	sender string,
) (*database.Transaction, error) {
	var header *dlt.Header
	if sender != "" {
		header = dlt.ParseHeader(sender)

		if header != nil && header.Category == dlt.CategoryPromotional {
			return nil, nil
		}
	}

	amount, ok := ExtractAmount(body)
	if !ok || !amount.IsPositive() {
		return nil, nil
	}

	txType := ExtractType(body)

	merchant := ExtractMerchant(body, txType)
	if (merchant == UnknownEntity || merchant == "Unknown") && header != nil {
		merchant = header.SenderID // bank code beats a placeholder
	}

	category := AssignCategory(body, merchant)

	ref := ExtractReferenceID(body)
	if ref == "" {
		ref = fmt.Sprintf("%d-%s", receivedAt.UnixMilli(), amount.String())
	}

	tx := &database.Transaction{
		ID:       uuid.NewString(),
		Ref:      ref,
		Amount:   amount,
		Type:     txType,
		Mode:     ExtractMode(body),
		Category: category,
		Merchant: merchant,
		Status:   database.TransactionStatusPending,
		Date:     ExtractDate(body, receivedAt),
		Raw:      body,
	}

	if header != nil {
		tx.SenderID = header.SenderID
	}

	return tx, nil
}
