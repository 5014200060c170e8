package voucher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/hotspot/internal/models"
	"github.com/fatflowers/hotspot/pkg/logctx"
	"github.com/fatflowers/hotspot/pkg/tool"
	"github.com/fatflowers/hotspot/pkg/types"
)

var (
	ErrNotFound    = errors.New("voucher not found")
	ErrAlreadyUsed = errors.New("voucher already used")
	ErrExpired     = errors.New("voucher expired")
)

// defaultValidity applies when the package has no bounded duration.
const defaultValidity = 60 * time.Minute

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// Mint persists an UNUSED voucher for orderID. Expiry is computed from
// the package duration relative to mint time, not purchase time. The
// unique index on order_id makes concurrent mints for the same order
// converge on a single row: the reported bool is true only for the
// call that actually created the voucher.
func (s *Service) Mint(ctx context.Context, orderID string, pkg *models.Package) (*models.Voucher, bool, error) {
	if pkg == nil {
		return nil, false, fmt.Errorf("cannot mint voucher without a package")
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, false, err
	}

	validity := defaultValidity
	if pkg.DurationMinutes != nil {
		validity = time.Duration(*pkg.DurationMinutes) * time.Minute
	}

	v := &models.Voucher{
		ID:              tool.GenerateUUIDV7(),
		Code:            code,
		PackageID:       pkg.ID,
		Status:          types.VoucherStatusUnused,
		ExpiresAt:       time.Now().Add(validity),
		OrderID:         orderID,
		PackageSnapshot: datatypes.NewJSONType(pkg),
	}
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent delivery; hand back theirs.
			var existing models.Voucher
			lookupErr := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&existing).Error
			if lookupErr == nil {
				return &existing, false, nil
			}
			// Duplicate on code, not order. Astronomically unlikely;
			// let the queue retry with a fresh code.
		}
		return nil, false, fmt.Errorf("failed to create voucher: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("voucher_minted",
		"order_id", orderID, "voucher_id", v.ID, "expires_at", v.ExpiresAt)
	return v, true, nil
}

// Verify checks a code without consuming it.
func (s *Service) Verify(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher
	err := s.db.WithContext(ctx).Preload("Package").
		Where("code = ?", code).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load voucher: %w", err)
	}
	if v.Status != types.VoucherStatusUnused {
		return nil, ErrAlreadyUsed
	}
	if v.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpired
	}
	return &v, nil
}

// Redeem performs the one-way UNUSED -> USED transition as a single
// conditional update. Under concurrent attempts for the same code
// exactly one caller wins; the rest see ErrAlreadyUsed. Never split
// into a read followed by a write.
func (s *Service) Redeem(ctx context.Context, code string) (*models.Voucher, error) {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("code = ? AND status = ?", code, types.VoucherStatusUnused).
		Updates(map[string]any{
			"status":      types.VoucherStatusUsed,
			"redeemed_at": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to redeem voucher: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var v models.Voucher
		err := s.db.WithContext(ctx).Where("code = ?", code).First(&v).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyUsed
	}

	var v models.Voucher
	if err := s.db.WithContext(ctx).Preload("Package").Where("code = ?", code).First(&v).Error; err != nil {
		return nil, fmt.Errorf("failed to reload voucher: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("voucher_redeemed", "voucher_id", v.ID)
	return &v, nil
}
