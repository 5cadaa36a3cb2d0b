package worker

// email_worker.go
// Processes email jobs from QueueEmail: verification links on
// registration/resend/address change, and invoice mails with a PDF
// attachment on paid plan selection. Failed sends go to the DLQ.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fullbootcamp/pos-saas-sub000/internal/infra"
	"github.com/fullbootcamp/pos-saas-sub000/internal/metrics"
)

// Email job kinds.
const (
	EmailKindVerification = "verification"
	EmailKindInvoice      = "invoice"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	Kind    string `json:"kind"`
	To      string `json:"to"`
	Token   string `json:"token,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailWorker sends queued mail through SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
	dlq    *DeadLetter
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, dlq: NewDeadLetter(rdb)}
}

// Process sends one email job.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient, skipping")
		return
	}

	var err error
	switch payload.Kind {
	case EmailKindVerification:
		err = w.mailer.SendVerification(payload.To, payload.Token)
	case EmailKindInvoice:
		err = w.mailer.SendInvoice(payload.To, payload.Subject, payload.Body, payload.PDFPath)
	default:
		log.Warn().Str("kind", payload.Kind).Msg("email_worker: unknown kind")
		return
	}

	if err != nil {
		metrics.EmailJobsTotal.WithLabelValues(payload.Kind, "error").Inc()
		log.Error().Err(err).Str("to", payload.To).Str("kind", payload.Kind).
			Msg("email_worker: failed to send email")
		w.dlq.Push(ctx, QueueEmail, payload.Kind, raw, err.Error(), 1)
		return
	}
	metrics.EmailJobsTotal.WithLabelValues(payload.Kind, "ok").Inc()
	log.Info().Str("to", payload.To).Str("kind", payload.Kind).Msg("email_worker: sent")
}
