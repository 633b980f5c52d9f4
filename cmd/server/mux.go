package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
	"github.com/Dineshd5/BudgetSMS/pkg/processor"
)

type Handler struct {
	processor BatchProcessor
	repo      PendingLister
}

func NewHandler(
	processor BatchProcessor,
	repo PendingLister,
) *Handler {
	return &Handler{
		processor: processor,
		repo:      repo,
	}
}

func (h *Handler) ProcessWebhook(
	ctx context.Context,
	webhook Webhook,
) (*processor.ScanSummary, error) {
	smsArr := lo.Map(webhook.Messages, func(msg WebhookMessage, _ int) inbox.SMS {
		return inbox.SMS{
			ID:         msg.ID,
			Address:    msg.Address,
			Body:       msg.Body,
			ReceivedAt: time.UnixMilli(msg.Date).UTC(),
		}
	})

	return h.processor.ProcessBatch(ctx, smsArr)
}

func (h *Handler) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	if apiKey != r.URL.Query().Get("api_key") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var webhook Webhook

	b, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err = json.Unmarshal(b, &webhook); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	summary, err := h.ProcessWebhook(r.Context(), webhook)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	h.writeJSON(w, WebhookResponse{
		Fetched:    summary.Fetched,
		New:        summary.New,
		Duplicates: summary.Duplicates,
		Rejected:   summary.Rejected,
		Errors: lo.Map(summary.Errors, func(err error, _ int) string {
			return err.Error()
		}),
	})
}

func (h *Handler) ServePending(
	w http.ResponseWriter,
	r *http.Request,
) {
	if apiKey != r.URL.Query().Get("api_key") {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	pending, err := h.repo.PendingTransactions(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	h.writeJSON(w, pending)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
