package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/hotspot/pkg/types"
)

// Voucher is the single-use network-access credential minted when an
// order is confirmed PAID. OrderID carries a unique index so an order
// can never yield more than one voucher, no matter how many times its
// reconciliation job is delivered.
type Voucher struct {
	ID        string              `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Code      string              `gorm:"column:code;type:varchar(32);not null;uniqueIndex" json:"code"`
	PackageID string              `gorm:"column:package_id;type:uuid;not null" json:"package_id"`
	Package   *Package            `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Status    types.VoucherStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ExpiresAt time.Time           `gorm:"column:expires_at;not null" json:"expires_at"`
	RedeemedAt *time.Time         `gorm:"column:redeemed_at;default:null" json:"redeemed_at"`
	OrderID   string              `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	// PackageSnapshot 套餐快照 taken at mint time.
	PackageSnapshot datatypes.JSONType[*Package] `gorm:"column:package_snapshot;type:jsonb;default:'{}'" json:"package_snapshot"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

func (Voucher) TableName() string { return "voucher" }

// EffectivePackage prefers the mint-time snapshot over the live package
// row, so later package edits cannot change an issued voucher.
func (v *Voucher) EffectivePackage() *Package {
	if v == nil {
		return nil
	}
	if snap := v.PackageSnapshot.Data(); snap != nil {
		return snap
	}
	return v.Package
}
