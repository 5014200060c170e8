package models

import (
	"time"

	"github.com/fatflowers/hotspot/pkg/types"
)

// Order 用户购买记录, one payment attempt for one package.
type Order struct {
	ID        string                `gorm:"column:id;primary_key;type:uuid" json:"id"`
	MSISDN    string                `gorm:"column:msisdn;type:varchar(32);not null;index" json:"msisdn"`
	Provider  types.PaymentProvider `gorm:"column:provider;type:varchar(16);not null" json:"provider"`
	PackageID string                `gorm:"column:package_id;type:uuid;not null" json:"package_id"`
	Package   *Package              `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	AmountUGX int64                 `gorm:"column:amount_ugx;type:bigint;not null" json:"amount_ugx"`
	Status    types.OrderStatus     `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	// ProviderTxRef is generated at order creation and handed to the
	// provider; it is the only key used to match inbound webhooks.
	ProviderTxRef string `gorm:"column:provider_tx_ref;type:varchar(64);not null;uniqueIndex" json:"provider_tx_ref"`
	// ProviderTxID is the provider-side transaction id, set on confirmation.
	ProviderTxID       *string    `gorm:"column:provider_tx_id;type:varchar(128)" json:"provider_tx_id"`
	FailureReason      *string    `gorm:"column:failure_reason;type:varchar(255)" json:"failure_reason"`
	CallbackVerifiedAt *time.Time `gorm:"column:callback_verified_at;default:null" json:"callback_verified_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Order) TableName() string { return "order" }
