package processor

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Dineshd5/BudgetSMS/pkg/backup"
	"github.com/Dineshd5/BudgetSMS/pkg/common"
	"github.com/Dineshd5/BudgetSMS/pkg/database"
	"github.com/Dineshd5/BudgetSMS/pkg/filter"
	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
	"github.com/Dineshd5/BudgetSMS/pkg/parser"
	"github.com/Dineshd5/BudgetSMS/pkg/printer"
)

const defaultScanWindow = 300

type Config struct {
	Repo            Repo
	Fetcher         Fetcher
	NotificationSvc NotificationSvc
	Parser          *parser.Parser
	Filter          *filter.Filter
	Printer         *printer.Printer
	Scan            common.ScanConfiguration
}

// Processor drives the ingestion loop: raw inbox -> filter -> parse ->
// idempotent upsert. Each message is handled independently, so an abandoned
// batch leaves already-saved transactions valid.
type Processor struct {
	cfg *Config
}

func NewProcessor(cfg *Config) *Processor {
	if cfg.Scan.MaxMessages <= 0 {
		cfg.Scan.MaxMessages = defaultScanWindow
	}

	return &Processor{
		cfg: cfg,
	}
}

// ScanGateway pulls recent messages from the companion gateway and runs the
// pipeline over them.
func (p *Processor) ScanGateway(ctx context.Context, after time.Time) (*ScanSummary, error) {
	messages, err := p.cfg.Fetcher.Fetch(ctx, &inbox.FetchRequest{
		After: after,
		Limit: p.cfg.Scan.MaxMessages,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch inbox")
	}

	return p.ProcessBatch(ctx, messages)
}

// ImportBackup runs the pipeline over an exported SMS backup spreadsheet.
func (p *Processor) ImportBackup(ctx context.Context, data []byte) (*ScanSummary, error) {
	messages, err := backup.ParseExport(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse backup")
	}

	return p.ProcessBatch(ctx, messages)
}

// ProcessBatch persists the raw messages and runs the pipeline over them.
func (p *Processor) ProcessBatch(ctx context.Context, smsArr []inbox.SMS) (*ScanSummary, error) {
	if len(smsArr) == 0 {
		return &ScanSummary{}, nil
	}

	rows := lo.Map(smsArr, func(sms inbox.SMS, _ int) database.Message {
		return database.Message{
			ID:         uuid.NewString(),
			SourceID:   sms.ID,
			Sender:     sms.Address,
			Body:       sms.Body,
			ReceivedAt: sms.ReceivedAt,
		}
	})

	if err := p.cfg.Repo.AddMessages(ctx, rows); err != nil {
		return nil, err
	}

	return p.run(ctx, lo.ToSlicePtr(rows))
}

// ProcessPending re-runs the pipeline over stored messages that have not
// been processed yet, e.g. rows accepted by the webhook between scans.
func (p *Processor) ProcessPending(ctx context.Context) (*ScanSummary, error) {
	rows, err := p.cfg.Repo.GetUnprocessedMessages(ctx)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &ScanSummary{}, nil
	}

	return p.run(ctx, rows)
}

func (p *Processor) run(ctx context.Context, rows []*database.Message) (*ScanSummary, error) {
	summary := &ScanSummary{
		Fetched: len(rows),
	}

	var entries []*printer.Entry
	now := time.Now().UTC()

	for _, row := range rows {
		if entry := p.processRow(ctx, row, summary); entry != nil {
			entries = append(entries, entry)
		}

		row.IsProcessed = true
		row.ProcessedAt = &now
	}

	if err := p.cfg.Repo.UpdateMessages(ctx, rows); err != nil {
		return nil, err
	}

	p.notify(ctx, entries, summary)

	return summary, nil
}

func (p *Processor) processRow(
	ctx context.Context,
	row *database.Message,
	summary *ScanSummary,
) *printer.Entry {
	if p.cfg.Scan.RequireSender && row.Sender == "" {
		summary.Rejected += 1

		return nil
	}

	if !p.cfg.Filter.IsRelevant(row.Body, row.Sender) {
		// noise is expected, not an error
		zerolog.Ctx(ctx).Debug().Str("sender", row.Sender).Msg("message filtered out")
		summary.Rejected += 1

		return nil
	}

	tx, err := p.cfg.Parser.ParseMessage(ctx, row.Body, row.ReceivedAt, row.Sender)
	if err != nil {
		summary.Errors = append(summary.Errors, errors.Wrapf(err, "message: %s", row.SourceID))

		return nil
	}

	if tx == nil {
		zerolog.Ctx(ctx).Debug().Str("sender", row.Sender).Msg("message is not transactional")
		summary.Rejected += 1

		return nil
	}

	saveErr := p.cfg.Repo.SaveTransaction(ctx, tx)

	switch {
	case saveErr == nil:
		summary.New += 1
	case errors.Is(saveErr, common.ErrDuplicate):
		summary.Duplicates += 1
	default:
		summary.Errors = append(summary.Errors, errors.Wrapf(saveErr, "ref: %s", tx.Ref))
	}

	return &printer.Entry{
		Tx:  tx,
		Err: saveErr,
	}
}

func (p *Processor) notify(ctx context.Context, entries []*printer.Entry, summary *ScanSummary) {
	if p.cfg.NotificationSvc == nil {
		return
	}

	if summary.New == 0 && len(summary.Errors) == 0 {
		return
	}

	rejected := summary.Rejected
	if p.cfg.Scan.SilentOnReject {
		rejected = 0
	}

	digest := p.cfg.Printer.Digest(ctx, entries, rejected, summary.Errors)

	if err := p.cfg.NotificationSvc.SendMessage(ctx, digest); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to send digest")
	}
}
