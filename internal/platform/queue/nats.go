package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/pkg/types"
)

const (
	streamName = "HOTSPOT_JOBS"

	// SubjectReconcile carries payment reconciliation jobs.
	SubjectReconcile = "jobs.payment.confirmation"
	// SubjectSMS carries outbound notification jobs.
	SubjectSMS = "jobs.sms.dispatch"

	ackWait      = 30 * time.Second
	maxDeliver   = 10
	retryBackoff = 5 * time.Second
)

// ReconcilePayload is the normalized provider callback carried by a
// reconciliation job.
type ReconcilePayload struct {
	Status        types.PaymentStatus `json:"status"`
	TransactionID string              `json:"transaction_id,omitempty"`
	Amount        *int64              `json:"amount,omitempty"`
}

// ReconcileJob is delivered at least once; consumers must be idempotent.
type ReconcileJob struct {
	OrderID  string                `json:"order_id"`
	Provider types.PaymentProvider `json:"provider"`
	Payload  ReconcilePayload      `json:"payload"`
}

type SMSJob struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Queue wraps a JetStream work queue. Failed handlers are nak'd with a
// delay so the server redelivers with backoff; retry scheduling lives
// here, not in the consumers.
type Queue struct {
	nc  *nats.Conn
	js  nats.JetStreamContext
	log *zap.SugaredLogger
}

func New(lc fx.Lifecycle, cfg *cfgpkg.Config, log *zap.SugaredLogger) (*Queue, error) {
	nc, err := nats.Connect(cfg.Nats.URL,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warnw("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Infow("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get jetstream context: %w", err)
	}

	if _, err := js.StreamInfo(streamName); err != nil {
		if !errors.Is(err, nats.ErrStreamNotFound) {
			nc.Close()
			return nil, fmt.Errorf("failed to look up stream: %w", err)
		}
		if _, err := js.AddStream(&nats.StreamConfig{
			Name:      streamName,
			Subjects:  []string{"jobs.>"},
			Retention: nats.WorkQueuePolicy,
		}); err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream: %w", err)
		}
		log.Infow("created jetstream work queue", "stream", streamName)
	}

	q := &Queue{nc: nc, js: js, log: log}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Infow("draining nats connection")
			return nc.Drain()
		},
	})
	return q, nil
}

func (q *Queue) publish(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if _, err := q.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

// PublishReconcile enqueues a payment reconciliation job.
func (q *Queue) PublishReconcile(ctx context.Context, job *ReconcileJob) error {
	return q.publish(ctx, SubjectReconcile, job)
}

// PublishSMS enqueues an outbound notification. Delivery is
// fire-and-forget from the caller's point of view.
func (q *Queue) PublishSMS(ctx context.Context, job *SMSJob) error {
	return q.publish(ctx, SubjectSMS, job)
}

// Handler processes one job. A non-nil return triggers redelivery.
type Handler func(ctx context.Context, data []byte) error

// Subscribe starts a durable queue consumer on subject. Multiple
// subscriptions with the same durable name form a worker pool; the
// server delivers each message to exactly one member (at least once).
func (q *Queue) Subscribe(subject, durable string, handler Handler) (*nats.Subscription, error) {
	sub, err := q.js.QueueSubscribe(subject, durable, func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), ackWait)
		defer cancel()
		if err := handler(ctx, msg.Data); err != nil {
			q.log.Errorw("job handler failed, scheduling redelivery",
				"subject", subject, "err", err)
			if err := msg.NakWithDelay(retryBackoff); err != nil {
				q.log.Errorw("failed to nak message", "subject", subject, "err", err)
			}
			return
		}
		if err := msg.Ack(); err != nil {
			q.log.Errorw("failed to ack message", "subject", subject, "err", err)
		}
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.AckWait(ackWait),
		nats.MaxDeliver(maxDeliver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe %s: %w", subject, err)
	}
	return sub, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
