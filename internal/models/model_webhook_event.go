package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/hotspot/pkg/types"
)

// WebhookEvent is the append-only audit record for every inbound
// provider callback, verified or not, matched or not. Rows are never
// updated.
type WebhookEvent struct {
	ID             string                `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Provider       types.PaymentProvider `gorm:"column:provider;type:varchar(16);not null" json:"provider"`
	RawPayload     datatypes.JSON        `gorm:"column:raw_payload;type:jsonb" json:"raw_payload"`
	SignatureValid bool                  `gorm:"column:signature_valid;not null" json:"signature_valid"`
	OrderID        *string               `gorm:"column:order_id;type:uuid" json:"order_id"`
	CreatedAt      time.Time             `json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_event" }
