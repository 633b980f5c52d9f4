package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Dineshd5/BudgetSMS/pkg/filter"
	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
	"github.com/Dineshd5/BudgetSMS/pkg/notifications"
	"github.com/Dineshd5/BudgetSMS/pkg/parser"
	"github.com/Dineshd5/BudgetSMS/pkg/printer"
	"github.com/Dineshd5/BudgetSMS/pkg/processor"
	"github.com/Dineshd5/BudgetSMS/pkg/repo"
)

func main() {
	backupPath := flag.String("backup", "", "path to an exported sms backup spreadsheet")
	afterHours := flag.Int("after", 24, "how far back to scan the gateway inbox, in hours")
	flag.Parse()

	ctx := log.Logger.WithContext(context.Background())

	db, err := gorm.Open(postgres.Open(os.Getenv("POSTGRES_CONNECTION_STRING")), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get postgres")
	}

	log.Info().Msg("[Db] start migrations")

	if err = repo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	processorSvc := processor.NewProcessor(&processor.Config{
		Repo: repo.NewPostgres(db),
		Fetcher: inbox.NewFetcher(
			os.Getenv("SMS_GATEWAY_URL"),
			os.Getenv("SMS_GATEWAY_TOKEN"),
			req.DefaultClient(),
		),
		NotificationSvc: buildNotifier(),
		Parser:          parser.NewParser(),
		Filter:          filter.NewFilter(),
		Printer:         printer.NewPrinter(),
	})

	var summary *processor.ScanSummary

	if *backupPath != "" {
		data, readErr := os.ReadFile(*backupPath)
		if readErr != nil {
			log.Fatal().Err(readErr).Msg("failed to read backup file")
		}

		summary, err = processorSvc.ImportBackup(ctx, data)
	} else {
		after := time.Now().UTC().Add(-time.Duration(*afterHours) * time.Hour)
		summary, err = processorSvc.ScanGateway(ctx, after)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	log.Info().
		Int("fetched", summary.Fetched).
		Int("new", summary.New).
		Int("duplicates", summary.Duplicates).
		Int("rejected", summary.Rejected).
		Int("errors", len(summary.Errors)).
		Msg("scan complete")

	for _, scanErr := range summary.Errors {
		log.Error().Err(scanErr).Msg("message failed")
	}
}

func buildNotifier() processor.NotificationSvc {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid telegram chat id")
	}

	return notifications.NewTelegram(token, chatID, req.DefaultClient())
}
