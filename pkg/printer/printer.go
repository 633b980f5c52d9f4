package printer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/Dineshd5/BudgetSMS/pkg/common"
	"github.com/Dineshd5/BudgetSMS/pkg/database"
)

// Entry is one parsed transaction plus the outcome of saving it. Err is
// common.ErrDuplicate when the ref was already in the ledger.
type Entry struct {
	Tx  *database.Transaction
	Err error
}

type Printer struct {
}

func NewPrinter() *Printer {
	return &Printer{}
}

// Digest renders the outcome of one inbox scan for the notification channel.
func (p *Printer) Digest(
	ctx context.Context,
	entries []*Entry,
	rejected int,
	errArr []error,
) string {
	var sb strings.Builder

	sb.WriteString(p.Stat(ctx, entries, rejected, errArr))
	sb.WriteString("\n\n")

	for _, entry := range entries {
		if errors.Is(entry.Err, common.ErrDuplicate) {
			continue
		}

		p.FancyPrintTx(entry, &sb)
	}

	return sb.String()
}

func (p *Printer) Stat(
	_ context.Context,
	entries []*Entry,
	rejected int,
	errArr []error,
) string {
	var duplicateCount int
	var okCount int

	for _, entry := range entries {
		if entry.Err == nil {
			okCount += 1
			continue
		}

		if errors.Is(entry.Err, common.ErrDuplicate) {
			duplicateCount += 1
			continue
		}

		errArr = append(errArr, entry.Err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("New transactions: %v 🔥", okCount))
	sb.WriteString(fmt.Sprintf("\nDuplicates: %v ✨", duplicateCount))
	sb.WriteString(fmt.Sprintf("\nSkipped non-transactional: %v 🚯", rejected))
	sb.WriteString(fmt.Sprintf("\nErrors: %v 🚒", len(errArr)))

	if okCount > 0 {
		sb.WriteString(fmt.Sprintf("\n\n%v waiting for approval", okCount))
	}

	return sb.String()
}

func (p *Printer) Errors(
	_ context.Context,
	entries []*Entry,
	errArr []error,
) string {
	var errCount int
	var sb strings.Builder

	for _, err := range errArr {
		sb.WriteString(fmt.Sprintf("Error: %s\n", err))
		errCount += 1
	}

	for _, entry := range entries {
		if entry.Err == nil || errors.Is(entry.Err, common.ErrDuplicate) {
			continue
		}

		p.FancyPrintTx(entry, &sb)

		errCount += 1
	}

	if errCount == 0 {
		sb.WriteString("No errors.")
	}

	return sb.String()
}

func (p *Printer) FancyPrintTx(entry *Entry, sb *strings.Builder) {
	tx := entry.Tx

	if entry.Err != nil {
		if errors.Is(entry.Err, common.ErrDuplicate) {
			sb.WriteString("Duplicate: ✨\n")
		} else {
			sb.WriteString("Has Error: ❌\n")
		}
	}

	direction := "→"
	if tx.Type == database.TransactionTypeCredit {
		direction = "←"
	}

	sb.WriteString(fmt.Sprintf("%s ₹%s %s %s", direction, tx.Amount.StringFixed(2), tx.Type, tx.Merchant))
	sb.WriteString(fmt.Sprintf("\nCategory: %s", tx.Category))
	sb.WriteString(fmt.Sprintf("\nDate: %s", tx.Date.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("\nRef: %s", tx.Ref))

	if tx.SenderID != "" {
		sb.WriteString(fmt.Sprintf("\nBank: %s", tx.SenderID))
	}

	if entry.Err != nil && !errors.Is(entry.Err, common.ErrDuplicate) {
		sb.WriteString(fmt.Sprintf("\nERROR: %s", entry.Err))
	}

	sb.WriteString("\n====================\n")
}
