package app

import (
	"github.com/fatflowers/hotspot/internal/app/api/server"
	"github.com/fatflowers/hotspot/internal/app/radius"
	"github.com/fatflowers/hotspot/internal/app/service/notify"
	"github.com/fatflowers/hotspot/internal/app/service/order"
	"github.com/fatflowers/hotspot/internal/app/service/payment"
	"github.com/fatflowers/hotspot/internal/app/service/reconcile"
	"github.com/fatflowers/hotspot/internal/app/service/voucher"
	"github.com/fatflowers/hotspot/internal/app/service/webhook"
	"github.com/fatflowers/hotspot/internal/platform/db"
	"github.com/fatflowers/hotspot/internal/platform/queue"
	"github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/pkg/logger"
	"time"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	queue.Module,
	server.Module,
	payment.Module,
	order.Module,
	voucher.Module,
	webhook.Module,
	reconcile.Module,
	notify.Module,
	radius.Module,
)
