package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/logctx"
	"github.com/fatflowers/hotspot/pkg/msisdn"
	"github.com/fatflowers/hotspot/pkg/tool"
	"github.com/fatflowers/hotspot/pkg/types"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPackageNotFound = errors.New("package not found or inactive")
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreatePendingRequest struct {
	PackageID string
	MSISDN    string
	Provider  types.PaymentProvider
}

// CreatePending snapshots the package price onto a new PENDING order and
// assigns the random provider transaction reference that inbound
// webhooks will later be matched on.
func (s *Service) CreatePending(ctx context.Context, req CreatePendingRequest) (*models.Order, error) {
	var pkg models.Package
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", req.PackageID, true).
		First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}

	normalized, err := msisdn.Normalize(req.MSISDN)
	if err != nil {
		return nil, err
	}

	o := &models.Order{
		ID:            tool.GenerateUUIDV7(),
		MSISDN:        normalized,
		Provider:      req.Provider,
		PackageID:     pkg.ID,
		AmountUGX:     pkg.PriceUGX,
		Status:        types.OrderStatusPending,
		ProviderTxRef: tool.GenerateUUIDV4(),
	}
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	o.Package = &pkg

	logctx.FromCtx(ctx, s.log).Infow("order_created",
		"order_id", o.ID, "package_id", pkg.ID, "provider", o.Provider)
	return o, nil
}

// GetWithVoucher loads an order with its package and, when one has been
// minted, its voucher.
func (s *Service) GetWithVoucher(ctx context.Context, orderID string) (*models.Order, *models.Voucher, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Preload("Package").
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("failed to load order: %w", err)
	}

	var v models.Voucher
	err = s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &o, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load voucher: %w", err)
	}
	return &o, &v, nil
}

// GetByProviderRef resolves an order from the reference the provider
// echoes back in its webhook. This is the only webhook matching key; a
// body-supplied order id is never trusted.
func (s *Service) GetByProviderRef(ctx context.Context, providerTxRef string) (*models.Order, error) {
	var o models.Order
	err := s.db.WithContext(ctx).Preload("Package").
		Where("provider_tx_ref = ?", providerTxRef).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order by reference: %w", err)
	}
	return &o, nil
}

// MarkPaid flips PENDING -> PAID in a single conditional update. The
// returned bool reports whether this call performed the flip; false
// means another delivery got there first (or the order is terminal).
func (s *Service) MarkPaid(ctx context.Context, orderID, providerTxID string) (bool, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, types.OrderStatusPending).
		Updates(map[string]any{
			"status":               types.OrderStatusPaid,
			"provider_tx_id":       providerTxID,
			"callback_verified_at": now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// MarkFailed flips PENDING -> FAILED; terminal, same conditional shape
// as MarkPaid.
func (s *Service) MarkFailed(ctx context.Context, orderID, reason string) (bool, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, types.OrderStatusPending).
		Updates(map[string]any{
			"status":               types.OrderStatusFailed,
			"failure_reason":       reason,
			"callback_verified_at": now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark order failed: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
