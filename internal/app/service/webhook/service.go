package webhook

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/internal/platform/queue"
	"github.com/fatflowers/hotspot/pkg/logctx"
	"github.com/fatflowers/hotspot/pkg/types"
)

type Verifier interface {
	VerifyCallback(name types.PaymentProvider, headers http.Header, rawBody []byte) payment.CallbackVerification
}

type OrderResolver interface {
	GetByProviderRef(ctx context.Context, providerTxRef string) (*models.Order, error)
}

type Events interface {
	Record(ctx context.Context, event *models.WebhookEvent) error
}

type Jobs interface {
	PublishReconcile(ctx context.Context, job *queue.ReconcileJob) error
}

// Service authenticates inbound provider callbacks, audits every one of
// them, and enqueues reconciliation work for the verified, matched ones.
type Service struct {
	providers Verifier
	orders    OrderResolver
	events    Events
	jobs      Jobs
	log       *zap.SugaredLogger
}

func NewService(providers Verifier, orders OrderResolver, events Events, jobs Jobs, log *zap.SugaredLogger) *Service {
	return &Service{providers: providers, orders: orders, events: events, jobs: jobs, log: log}
}

// Handle runs the full ingestion path on the exact request bytes. The
// caller should acknowledge generically regardless of the outcome; only
// audit/enqueue failures surface as errors (so the provider retries).
func (s *Service) Handle(ctx context.Context, provider types.PaymentProvider, headers http.Header, rawBody []byte) error {
	verification := s.providers.VerifyCallback(provider, headers, rawBody)

	var matched *models.Order
	if verification.Reference != "" {
		o, err := s.orders.GetByProviderRef(ctx, verification.Reference)
		switch {
		case err == nil:
			matched = o
		case errors.Is(err, order.ErrOrderNotFound):
			// audited below; nothing disclosed to the caller
		default:
			return err
		}
	}

	// The audit record is written before any branching so the trail is
	// complete even for forged or unmatched callbacks.
	event := &models.WebhookEvent{
		Provider:       provider,
		RawPayload:     datatypes.JSON(rawBody),
		SignatureValid: verification.OK,
	}
	if matched != nil {
		event.OrderID = lo.ToPtr(matched.ID)
	}
	if err := s.events.Record(ctx, event); err != nil {
		return err
	}

	if !verification.OK || matched == nil {
		logctx.FromCtx(ctx, s.log).Warnw("webhook_unmatched",
			"provider", provider,
			"signature_valid", verification.OK,
			"matched", matched != nil)
		return nil
	}

	job := &queue.ReconcileJob{
		OrderID:  matched.ID,
		Provider: provider,
		Payload: queue.ReconcilePayload{
			Status:        verification.Status,
			TransactionID: verification.TransactionID,
			Amount:        verification.Amount,
		},
	}
	if err := s.jobs.PublishReconcile(ctx, job); err != nil {
		return err
	}

	logctx.FromCtx(ctx, s.log).Infow("webhook_reconcile_queued",
		"provider", provider, "order_id", matched.ID, "status", verification.Status)
	return nil
}
