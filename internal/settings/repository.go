package settings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"artistly/internal/shared/apperrors"
	"artistly/pkg/cache"
	"artistly/pkg/logger"
)

const settingsCacheKey = "settings:financial"

type Repository interface {
	// Get returns the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (*FinancialSettings, error)
	Update(ctx context.Context, settings *FinancialSettings) error
}

type repository struct {
	db         *gorm.DB
	cache      cache.Service
	cacheTTL   time.Duration
	defaultFee float64
	log        *logger.Logger
}

func NewRepository(db *gorm.DB, cacheService cache.Service, cacheTTL time.Duration, defaultFee float64) Repository {
	return &repository{
		db:         db,
		cache:      cacheService,
		cacheTTL:   cacheTTL,
		defaultFee: defaultFee,
		log:        logger.GetDefault(),
	}
}

func (r *repository) Get(ctx context.Context) (*FinancialSettings, error) {
	var settings FinancialSettings
	err := r.cache.Get(ctx, settingsCacheKey, &settings)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.log.ErrorWithContext(ctx, "settings cache read failed", err, nil)
	}

	err = r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = FinancialSettings{PlatformFeePercentage: r.defaultFee}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, apperrors.Internal("failed to create default settings", err)
		}
	} else if err != nil {
		return nil, apperrors.Internal("failed to load settings", err)
	}

	if err := r.cache.Set(ctx, settingsCacheKey, &settings, r.cacheTTL); err != nil {
		r.log.ErrorWithContext(ctx, "settings cache write failed", err, nil)
	}
	return &settings, nil
}

func (r *repository) Update(ctx context.Context, settings *FinancialSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return apperrors.Internal("failed to update settings", err)
	}
	// Drop instead of rewrite so the next read repopulates from the store.
	if err := r.cache.Delete(ctx, settingsCacheKey); err != nil {
		r.log.ErrorWithContext(ctx, "failed to invalidate settings cache", err, nil)
	}
	return nil
}
