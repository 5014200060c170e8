package webhook

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ordersvc "github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/platform/queue"
)

func newService(p *payment.Service, o *ordersvc.Service, db *gorm.DB, q *queue.Queue, log *zap.SugaredLogger) *Service {
	return NewService(p, o, NewEventStore(db, log), q, log)
}

var Module = fx.Options(
	fx.Provide(newService),
)
