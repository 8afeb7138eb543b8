package worker

// report_worker.go
// Processes analytics report jobs: recomputes KPIs and rankings for the
// store, renders them as a PDF, and emails the result to the requester.

import (
	"context"
	"encoding/json"
	"fmt"

	"sellerhub/internal/infra"
	"sellerhub/internal/repository"
	"sellerhub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReportJobPayload is the job envelope sent to QueueReport.
type ReportJobPayload struct {
	StoreID string `json:"store_id"`
	ToEmail string `json:"to_email"`
}

type ReportWorker struct {
	analytics   service.AnalyticsService
	stores      repository.StoreRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewReportWorker(analytics service.AnalyticsService, stores repository.StoreRepository, mailer *infra.Mailer, storagePath string) *ReportWorker {
	return &ReportWorker{analytics: analytics, stores: stores, mailer: mailer, storagePath: storagePath}
}

// Process generates and delivers one report. Returned errors trigger the
// pool's retry/DLQ path.
func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	storeID, err := uuid.Parse(payload.StoreID)
	if err != nil {
		log.Error().Str("store_id", payload.StoreID).Msg("report_worker: invalid store id")
		return nil
	}

	store, err := w.stores.FindByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("report_worker: find store: %w", err)
	}
	metrics, err := w.analytics.Metrics(ctx, storeID, nil, nil)
	if err != nil {
		return fmt.Errorf("report_worker: metrics: %w", err)
	}
	rankings, err := w.analytics.Rankings(ctx, storeID)
	if err != nil {
		return fmt.Errorf("report_worker: rankings: %w", err)
	}

	pdfPath, err := infra.GenerateSalesReportPDF(store.Name, storeID.String(), metrics, rankings, w.storagePath)
	if err != nil {
		return fmt.Errorf("report_worker: render pdf: %w", err)
	}

	subject := fmt.Sprintf("Sales performance report for %s", store.Name)
	body := "Attached is your latest sales performance report."
	if err := w.mailer.Send(payload.ToEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("report_worker: send email: %w", err)
	}

	log.Info().Str("store_id", payload.StoreID).Str("to", payload.ToEmail).Msg("report_worker: report delivered")
	return nil
}
