package payouts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
	"artistly/pkg/logger"
)

// ArtistNames resolves artist display names for the payout report.
type ArtistNames interface {
	DisplayNames(ctx context.Context, artistIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

// FeeSource supplies the current platform commission rate.
type FeeSource interface {
	PlatformFeePercent(ctx context.Context) (float64, error)
}

// Service interface defines the contract for payout business logic
type Service interface {
	// CalculatePayouts aggregates all completed, unpaid bookings into
	// per-artist payouts at the current fee rate.
	CalculatePayouts(ctx context.Context) ([]Payout, error)

	// MarkAsPaid settles one artist's booking set. Idempotent over the same
	// set.
	MarkAsPaid(ctx context.Context, req MarkAsPaidRequest) (*SettlementResult, error)

	ListHistory(ctx context.Context, query HistoryListQuery) (*HistoryListResponse, error)
}

type service struct {
	repo    Repository
	artists ArtistNames
	fees    FeeSource
	log     *logger.Logger
}

// NewService creates a new payout service instance
func NewService(repo Repository, artists ArtistNames, fees FeeSource) Service {
	return &service{
		repo:    repo,
		artists: artists,
		fees:    fees,
		log:     logger.GetDefault(),
	}
}

func (s *service) CalculatePayouts(ctx context.Context) ([]Payout, error) {
	eligible, err := s.repo.GetCompletedUnpaid(ctx)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return []Payout{}, nil
	}

	feePercent, err := s.fees.PlatformFeePercent(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uuid.UUID]bool)
	var artistIDs []uuid.UUID
	for _, booking := range eligible {
		for _, id := range booking.ArtistIDs {
			if !idSet[id] {
				idSet[id] = true
				artistIDs = append(artistIDs, id)
			}
		}
	}

	names, err := s.artists.DisplayNames(ctx, artistIDs)
	if err != nil {
		return nil, err
	}

	return Aggregate(eligible, names, feePercent), nil
}

func (s *service) MarkAsPaid(ctx context.Context, req MarkAsPaidRequest) (*SettlementResult, error) {
	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid artist id")
	}

	bookingIDs := make([]uuid.UUID, 0, len(req.BookingIDs))
	seen := make(map[uuid.UUID]bool)
	for _, raw := range req.BookingIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.InvalidArgument("invalid booking id")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		bookingIDs = append(bookingIDs, id)
	}

	feePercent, err := s.fees.PlatformFeePercent(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.SettlePayout(ctx, artistID, bookingIDs, feePercent, time.Now())
	if err != nil {
		return nil, err
	}

	if result.Settled {
		s.log.LogPayoutSettled(ctx, artistID.String(), len(result.SettledIDs), result.NetPayout)
	}
	return result, nil
}

func (s *service) ListHistory(ctx context.Context, query HistoryListQuery) (*HistoryListResponse, error) {
	history, total, err := s.repo.ListHistory(ctx, query)
	if err != nil {
		return nil, err
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &HistoryListResponse{
		History:    history,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}
