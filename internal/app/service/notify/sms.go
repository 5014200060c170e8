package notify

import (
	"context"

	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/internal/platform/queue"
)

// Sender delivers one SMS. The real gateway integration lives outside
// the core; LogSender stands in for it.
type Sender interface {
	Send(ctx context.Context, job *queue.SMSJob) error
}

// LogSender writes outbound messages to the log instead of a gateway.
type LogSender struct {
	from string
	log  *zap.SugaredLogger
}

func NewLogSender(cfg *cfgpkg.Config, log *zap.SugaredLogger) *LogSender {
	return &LogSender{from: cfg.SMS.From, log: log}
}

func (s *LogSender) Send(_ context.Context, job *queue.SMSJob) error {
	s.log.Infow("sms_dispatched", "from", s.from, "to", job.To, "message", job.Message)
	return nil
}
