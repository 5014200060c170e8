package models

import (
	"time"
)

// Package is a purchasable access plan. Price and duration are copied
// onto orders and vouchers at the moment of use, so editing a package
// never rewrites history.
type Package struct {
	ID       string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name     string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	PriceUGX int64  `gorm:"column:price_ugx;type:bigint;not null" json:"price_ugx"`
	// DurationMinutes is nil for unbounded packages.
	DurationMinutes *int `gorm:"column:duration_minutes" json:"duration_minutes"`
	// DataMB is nil when the package has no data cap.
	DataMB    *int      `gorm:"column:data_mb" json:"data_mb"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Package) TableName() string { return "package" }

// SessionSeconds returns the session duration in seconds, or 0 when the
// package is unbounded.
func (p *Package) SessionSeconds() int {
	if p == nil || p.DurationMinutes == nil {
		return 0
	}
	return *p.DurationMinutes * 60
}

// DataCapBytes returns the data cap in bytes, or 0 when uncapped.
func (p *Package) DataCapBytes() int64 {
	if p == nil || p.DataMB == nil {
		return 0
	}
	return int64(*p.DataMB) * 1024 * 1024
}
