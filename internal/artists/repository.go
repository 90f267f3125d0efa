package artists

import (
	"context"
	"errors"

	"artistly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, artist *Artist) error
	Update(ctx context.Context, artist *Artist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Artist, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Artist, error)
	GetByReferralCode(ctx context.Context, code string) (*Artist, error)
	GetAll(ctx context.Context) ([]Artist, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Artist, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, artist *Artist) error {
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		return apperrors.Internal("failed to create artist profile", err)
	}
	return nil
}

func (r *repository) Update(ctx context.Context, artist *Artist) error {
	if err := r.db.WithContext(ctx).Save(artist).Error; err != nil {
		return apperrors.Internal("failed to update artist profile", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Artist, error) {
	var artist Artist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("artist not found")
		}
		return nil, apperrors.Internal("failed to load artist", err)
	}
	return &artist, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Artist, error) {
	var artist Artist
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("artist not found")
		}
		return nil, apperrors.Internal("failed to load artist", err)
	}
	return &artist, nil
}

func (r *repository) GetByReferralCode(ctx context.Context, code string) (*Artist, error) {
	var artist Artist
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("no artist for referral code")
		}
		return nil, apperrors.Internal("failed to load artist", err)
	}
	return &artist, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Artist, error) {
	var list []Artist
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, apperrors.Internal("failed to list artists", err)
	}
	return list, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Artist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []Artist
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, apperrors.Internal("failed to load artists", err)
	}
	return list, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Artist{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("failed to check artist", err)
	}
	return count > 0, nil
}
