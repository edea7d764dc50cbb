package webhookproc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/agentprompts/backend/internal/app/service/purchase"
	"github.com/agentprompts/backend/internal/models"
	"github.com/agentprompts/backend/internal/platform/provider"
	"github.com/agentprompts/backend/pkg/logctx"
	"github.com/agentprompts/backend/pkg/metrics"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Outcome is the terminal state of one webhook delivery. Every delivery
// moves received -> verified -> {processed | ignored | rejected}; a local
// failure after verification is failed.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

// HTTPStatus maps an outcome to the response the provider sees. Rejected
// signatures are 403. Failed is 500 on purpose: the insert is idempotent, so
// asking the provider to redeliver after a local outage is safe and recovers
// the purchase without manual intervention.
func (o Outcome) HTTPStatus() int {
	switch o {
	case OutcomeProcessed, OutcomeIgnored:
		return http.StatusAccepted
	case OutcomeRejected:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Verifier is the slice of the provider client the processor needs.
type Verifier interface {
	VerifyWebhook(rawBody []byte, headers http.Header) (*provider.Event, error)
}

// EventRecorder persists the audit trail without blocking the request.
type EventRecorder interface {
	Save(ctx context.Context, entry *models.WebhookEventLog)
}

type Processor struct {
	verifier  Verifier
	purchases *purchase.Service
	events    EventRecorder
	log       *zap.SugaredLogger
}

func New(verifier Verifier, purchases *purchase.Service, events EventRecorder, log *zap.SugaredLogger) *Processor {
	return &Processor{verifier: verifier, purchases: purchases, events: events, log: log}
}

// Process runs one delivery through the state machine. Side effects are
// exactly zero or one purchase insert plus logging; redelivery of the same
// order is absorbed by the payment_id idempotency check.
func (p *Processor) Process(ctx context.Context, rawBody []byte, headers http.Header) Outcome {
	lg := logctx.FromCtx(ctx, p.log)

	ev, err := p.verifier.VerifyWebhook(rawBody, headers)
	if err != nil {
		if errors.Is(err, provider.ErrSignatureInvalid) {
			lg.Warnw("webhook_rejected", "reason", "bad_signature")
			p.record(ctx, nil, rawBody, models.WebhookEventLogStatusRejected, "invalid signature")
			return p.finish(OutcomeRejected)
		}
		// Authenticated but unparseable: acknowledging cannot help, but the
		// provider will redeliver the same bytes, so treat as ignored.
		lg.Warnw("webhook_ignored", "reason", "malformed", "error", err.Error())
		p.record(ctx, nil, rawBody, models.WebhookEventLogStatusIgnored, "malformed payload")
		return p.finish(OutcomeIgnored)
	}

	lg.Infow("webhook_verified", "event_type", ev.Type, "payment_id", ev.Data.ID)

	if ev.Type != provider.EventTypeOrderPaid {
		p.record(ctx, ev, rawBody, models.WebhookEventLogStatusIgnored, "unhandled event type")
		return p.finish(OutcomeIgnored)
	}

	rec, created, err := p.purchases.CreateFromPaidOrder(ctx, &ev.Data)
	switch {
	case errors.Is(err, purchase.ErrMissingUserMetadata):
		// Provider-side data-contract violation. Redelivery would carry the
		// same missing field, so acknowledge and log rather than retry.
		lg.Errorw("webhook_unprocessable", "payment_id", ev.Data.ID, "reason", "missing userId metadata")
		p.record(ctx, ev, rawBody, models.WebhookEventLogStatusIgnored, "missing userId metadata")
		return p.finish(OutcomeIgnored)
	case err != nil:
		lg.Errorw("webhook_processing_failed", "payment_id", ev.Data.ID, "error", err.Error())
		p.record(ctx, ev, rawBody, models.WebhookEventLogStatusFailed, err.Error())
		return p.finish(OutcomeFailed)
	}

	if created {
		lg.Infow("purchase_created", "payment_id", rec.PaymentID, "product_type", rec.ProductType)
	} else {
		lg.Warnw("webhook_duplicate", "payment_id", rec.PaymentID)
	}
	p.record(ctx, ev, rawBody, models.WebhookEventLogStatusProcessed, "")
	return p.finish(OutcomeProcessed)
}

func (p *Processor) finish(o Outcome) Outcome {
	metrics.WebhookEvents.WithLabelValues(string(o)).Inc()
	return o
}

func (p *Processor) record(ctx context.Context, ev *provider.Event, rawBody []byte, status models.WebhookEventLogStatus, detail string) {
	entry := &models.WebhookEventLog{
		Provider:   string(types.PaymentProviderCreem),
		Payload:    datatypes.JSON(rawBody),
		Status:     status,
		ReceivedAt: time.Now(),
	}
	if ev != nil {
		entry.EventType = ev.Type
		entry.PaymentID = ev.Data.ID
		if ev.Data.Metadata.UserID != "" {
			entry.UserID = lo.ToPtr(ev.Data.Metadata.UserID)
		}
	}
	if tid, ok := ctx.Value("traceID").(string); ok {
		entry.TraceID = tid
	}
	if detail != "" {
		res, _ := json.Marshal(map[string]string{"detail": detail})
		j := datatypes.JSON(res)
		entry.Result = &j
	}
	p.events.Save(ctx, entry)
}
