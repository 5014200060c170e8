package notify

import (
	"context"
	"encoding/json"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/hotspot/internal/platform/queue"
)

const durableName = "sms-dispatch"

func newSender(s *LogSender) Sender { return s }

// registerWorker consumes the SMS queue. Delivery is fire-and-forget
// for producers; failures here are retried by the queue layer alone.
func registerWorker(lc fx.Lifecycle, q *queue.Queue, sender Sender, log *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := q.Subscribe(queue.SubjectSMS, durableName, func(ctx context.Context, data []byte) error {
				var job queue.SMSJob
				if err := json.Unmarshal(data, &job); err != nil {
					log.Errorw("dropping malformed sms job", "err", err)
					return nil
				}
				return sender.Send(ctx, &job)
			})
			return err
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewLogSender),
	fx.Provide(newSender),
	fx.Invoke(registerWorker),
)
