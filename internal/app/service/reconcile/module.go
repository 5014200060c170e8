package reconcile

import (
	"context"
	"encoding/json"

	"go.uber.org/fx"
	"go.uber.org/zap"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	vouchersvc "github.com/fatflowers/hotspot/internal/app/service/voucher"
	"github.com/fatflowers/hotspot/internal/platform/queue"
)

const (
	durableName = "payment-confirmation"
	workerCount = 4
)

func newWorker(o *ordersvc.Service, v *vouchersvc.Service, q *queue.Queue, log *zap.SugaredLogger) *Worker {
	return NewWorker(o, v, q, log)
}

// registerWorkers starts the consumer pool. Members share one durable
// queue group, so each job lands on exactly one of them per delivery.
func registerWorkers(lc fx.Lifecycle, q *queue.Queue, w *Worker, log *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for i := 0; i < workerCount; i++ {
				_, err := q.Subscribe(queue.SubjectReconcile, durableName, func(ctx context.Context, data []byte) error {
					var job queue.ReconcileJob
					if err := json.Unmarshal(data, &job); err != nil {
						// Poison message; redelivery cannot fix it.
						log.Errorw("dropping malformed reconcile job", "err", err)
						return nil
					}
					return w.Process(ctx, &job)
				})
				if err != nil {
					return err
				}
			}
			log.Infow("reconciliation workers started", "count", workerCount)
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(newWorker),
	fx.Invoke(registerWorkers),
)
