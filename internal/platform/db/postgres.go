package db

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatflowers/hotspot/internal/models"
	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	gormzap "github.com/fatflowers/hotspot/pkg/gormlog"
	"github.com/fatflowers/hotspot/pkg/tool"
)

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	// TranslateError lets callers match duplicate-key violations with
	// errors.Is(err, gorm.ErrDuplicatedKey).
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{Logger: gormzap.New(l), TranslateError: true})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(SeedPackages),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Package{},
		&models.Order{},
		&models.Voucher{},
		&models.WebhookEvent{},
	); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// SeedPackages inserts the default catalogue into an empty packages table.
func SeedPackages(l *zap.SugaredLogger, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Package{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Package{
		{ID: tool.GenerateUUIDV7(), Name: "1 Hour", PriceUGX: 2000, DurationMinutes: lo.ToPtr(60), IsActive: true},
		{ID: tool.GenerateUUIDV7(), Name: "3 Hours", PriceUGX: 5000, DurationMinutes: lo.ToPtr(180), IsActive: true},
		{ID: tool.GenerateUUIDV7(), Name: "Daily", PriceUGX: 10000, DurationMinutes: lo.ToPtr(24 * 60), IsActive: true},
	}
	if err := db.Create(&defaults).Error; err != nil {
		return err
	}
	l.Infow("seeded default packages", "count", len(defaults))
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
