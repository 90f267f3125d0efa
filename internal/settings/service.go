package settings

import (
	"context"

	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
)

// Service interface defines the contract for settings business logic
type Service interface {
	GetFinancialSettings(ctx context.Context) (*FinancialSettings, error)

	// PlatformFeePercent returns the current fee rate as a percentage.
	PlatformFeePercent(ctx context.Context) (float64, error)

	UpdateFinancialSettings(ctx context.Context, updatedBy uuid.UUID, req UpdateSettingsRequest) (*FinancialSettings, error)
}

type service struct {
	repo Repository
}

// NewService creates a new settings service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetFinancialSettings(ctx context.Context) (*FinancialSettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) PlatformFeePercent(ctx context.Context) (float64, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return settings.PlatformFeePercentage, nil
}

func (s *service) UpdateFinancialSettings(ctx context.Context, updatedBy uuid.UUID, req UpdateSettingsRequest) (*FinancialSettings, error) {
	if req.PlatformFeePercentage < 0 || req.PlatformFeePercentage > 100 {
		return nil, apperrors.InvalidArgument("platform fee must be between 0 and 100 percent")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.PlatformFeePercentage = req.PlatformFeePercentage
	settings.UpdatedBy = &updatedBy
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
