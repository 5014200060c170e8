package webhook

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/tool"
)

// EventStore appends webhook audit records. Rows are written once and
// never updated.
type EventStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewEventStore(db *gorm.DB, log *zap.SugaredLogger) *EventStore {
	return &EventStore{db: db, log: log}
}

func (s *EventStore) Record(ctx context.Context, event *models.WebhookEvent) error {
	if event.ID == "" {
		event.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record webhook event: %w", err)
	}
	return nil
}
