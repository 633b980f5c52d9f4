package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/gorilla/mux"
	"github.com/imroc/req/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Dineshd5/BudgetSMS/pkg/filter"
	"github.com/Dineshd5/BudgetSMS/pkg/notifications"
	"github.com/Dineshd5/BudgetSMS/pkg/parser"
	"github.com/Dineshd5/BudgetSMS/pkg/printer"
	"github.com/Dineshd5/BudgetSMS/pkg/processor"
	"github.com/Dineshd5/BudgetSMS/pkg/repo"
)

var apiKey string

func main() {
	apiKey = os.Getenv("API_KEY")

	dataRepo, err := buildRepo()
	if err != nil {
		panic(err)
	}

	var notifier processor.NotificationSvc
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, chatErr := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if chatErr != nil {
			panic(chatErr)
		}

		notifier = notifications.NewTelegram(token, chatID, req.DefaultClient())
	}

	processorSvc := processor.NewProcessor(&processor.Config{
		Repo:            dataRepo,
		NotificationSvc: notifier,
		Parser:          parser.NewParser(),
		Filter:          filter.NewFilter(),
		Printer:         printer.NewPrinter(),
	})

	handle := NewHandler(processorSvc, dataRepo)

	r := mux.NewRouter()
	r.Handle("/api/sms/webhook", handle).Methods(http.MethodPost)
	r.HandleFunc("/api/transactions/pending", handle.ServePending).Methods(http.MethodGet)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		listenAddr = ":" + val
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         listenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	panic(srv.ListenAndServe())
}

func buildRepo() (processor.Repo, error) {
	if dsn := os.Getenv("POSTGRES_CONNECTION_STRING"); dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}

		if err = repo.Migrate(db); err != nil {
			return nil, err
		}

		return repo.NewPostgres(db), nil
	}

	client, err := azcosmos.NewClientFromConnectionString(os.Getenv("COSMO_DB_CONNECTION_STRING"), nil)
	if err != nil {
		return nil, err
	}

	return repo.NewCosmo(client, os.Getenv("COSMO_DB_NAME"))
}
