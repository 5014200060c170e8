package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/internal/platform/queue"
	"github.com/fatflowers/hotspot/pkg/logctx"
	"github.com/fatflowers/hotspot/pkg/types"
)

type OrderStore interface {
	GetWithVoucher(ctx context.Context, orderID string) (*models.Order, *models.Voucher, error)
	MarkPaid(ctx context.Context, orderID, providerTxID string) (bool, error)
	MarkFailed(ctx context.Context, orderID, reason string) (bool, error)
}

type VoucherMinter interface {
	Mint(ctx context.Context, orderID string, pkg *models.Package) (*models.Voucher, bool, error)
}

type Notifier interface {
	PublishSMS(ctx context.Context, job *queue.SMSJob) error
}

// Worker drives the order state machine. Jobs arrive at least once, in
// any order, possibly concurrently across workers; all coordination
// goes through the store's conditional updates, so Process only has to
// be safe to re-enter, never to schedule its own retries.
type Worker struct {
	orders   OrderStore
	vouchers VoucherMinter
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewWorker(orders OrderStore, vouchers VoucherMinter, notifier Notifier, log *zap.SugaredLogger) *Worker {
	return &Worker{orders: orders, vouchers: vouchers, notifier: notifier, log: log}
}

// Process consumes one reconciliation job. A nil return acknowledges
// the job; an error hands it back to the queue for redelivery with
// backoff.
func (w *Worker) Process(ctx context.Context, job *queue.ReconcileJob) error {
	log := logctx.FromCtx(ctx, w.log).With("order_id", job.OrderID)

	o, v, err := w.orders.GetWithVoucher(ctx, job.OrderID)
	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			log.Warnw("order not found during reconciliation")
			return nil
		}
		return err
	}

	if o.Status == types.OrderStatusPaid && v != nil {
		log.Infow("order already reconciled")
		return nil
	}

	switch job.Payload.Status {
	case types.PaymentStatusPaid:
		return w.reconcilePaid(ctx, log, o, v, job)
	case types.PaymentStatusFailed:
		flipped, err := w.orders.MarkFailed(ctx, o.ID, "Provider reported failure")
		if err != nil {
			return err
		}
		if flipped {
			log.Infow("order marked as failed")
		}
		return nil
	default:
		// PENDING: another callback is expected, nothing to do yet.
		return nil
	}
}

func (w *Worker) reconcilePaid(ctx context.Context, log *zap.SugaredLogger, o *models.Order, v *models.Voucher, job *queue.ReconcileJob) error {
	switch o.Status {
	case types.OrderStatusPending:
		if _, err := w.orders.MarkPaid(ctx, o.ID, job.Payload.TransactionID); err != nil {
			return err
		}
		// A zero-row update just means a concurrent delivery flipped the
		// order first; minting below still converges on one voucher.
	case types.OrderStatusPaid:
		// PAID without a voucher: an earlier run died between marking
		// and minting. Complete minting without re-marking.
	default:
		log.Errorw("PAID callback for terminal order", "status", o.Status)
		return nil
	}

	if v != nil {
		return nil
	}

	minted, created, err := w.vouchers.Mint(ctx, o.ID, o.Package)
	if err != nil {
		return err
	}
	if !created {
		// Voucher already existed by the time we re-checked; the run
		// that created it owns the notification.
		return nil
	}

	// Accepted loss: if this publish fails the redelivered job finds the
	// voucher already minted and never resends the SMS (no outbox). The
	// code stays reachable through the order status endpoint.
	msg := fmt.Sprintf("Your Wi-Fi voucher for %s: %s", o.Package.Name, minted.Code)
	if err := w.notifier.PublishSMS(ctx, &queue.SMSJob{To: o.MSISDN, Message: msg}); err != nil {
		return err
	}
	log.Infow("voucher generated and SMS queued", "voucher_id", minted.ID)
	return nil
}
