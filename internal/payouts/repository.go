package payouts

import (
	"errors"
	"time"

	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artistly/internal/bookings"
	"artistly/internal/shared/apperrors"
)

type Repository interface {
	// GetCompletedUnpaid returns every booking eligible for payout
	// aggregation.
	GetCompletedUnpaid(ctx context.Context) ([]bookings.Booking, error)

	// SettlePayout marks the artist's bookings as paid and appends one
	// history row, all in a single transaction. A settlement key already in
	// the history makes the call a no-op. Bookings that drifted out of
	// eligibility since the payout was computed are silently excluded; if
	// none remain nothing is written.
	SettlePayout(ctx context.Context, artistID uuid.UUID, bookingIDs []uuid.UUID, feePercent float64, paymentDate time.Time) (*SettlementResult, error)

	ListHistory(ctx context.Context, query HistoryListQuery) ([]PayoutHistory, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCompletedUnpaid(ctx context.Context) ([]bookings.Booking, error) {
	var list []bookings.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND paid_out = ?", bookings.StatusCompleted, false).
		Find(&list).Error
	if err != nil {
		return nil, apperrors.Internal("failed to load eligible bookings", err)
	}
	return list, nil
}

func (r *repository) SettlePayout(ctx context.Context, artistID uuid.UUID, bookingIDs []uuid.UUID, feePercent float64, paymentDate time.Time) (*SettlementResult, error) {
	key := SettlementKey(bookingIDs)
	result := &SettlementResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing PayoutHistory
		err := tx.Where("settlement_key = ?", key).First(&existing).Error
		if err == nil {
			result.AlreadyPaid = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Internal("failed to check settlement history", err)
		}

		// Lock the candidate rows so eligibility cannot drift under us.
		var eligible []bookings.Booking
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND status = ? AND paid_out = ?", bookingIDs, bookings.StatusCompleted, false).
			Find(&eligible).Error
		if err != nil {
			return apperrors.Internal("failed to lock bookings for settlement", err)
		}

		settledIDs := make(bookings.UUIDList, 0, len(eligible))
		for _, b := range eligible {
			settledIDs = append(settledIDs, b.ID)
		}
		result.SettledIDs = settledIDs
		result.ExcludedIDs = excludedFrom(bookingIDs, settledIDs)

		if len(eligible) == 0 {
			return nil
		}

		if err := tx.Model(&bookings.Booking{}).
			Where("id IN ?", []uuid.UUID(settledIDs)).
			Updates(map[string]interface{}{"paid_out": true, "updated_at": time.Now()}).Error; err != nil {
			return apperrors.Internal("failed to mark bookings as paid", err)
		}

		// Snapshot the settled position over the rows actually flipped.
		snapshot := settlementSnapshot(artistID, eligible, feePercent)
		history := PayoutHistory{
			ArtistID:       artistID,
			SettlementKey:  key,
			BookingIDs:     settledIDs,
			TotalBookings:  snapshot.TotalBookings,
			GrossRevenue:   snapshot.GrossRevenue,
			PayoutDue:      snapshot.PayoutDue,
			CommissionOwed: snapshot.CommissionOwed,
			PlatformFees:   snapshot.PlatformFees,
			GST:            snapshot.GST,
			NetPayout:      snapshot.NetPayout,
			PaymentDate:    paymentDate,
		}
		result.NetPayout = snapshot.NetPayout
		if err := tx.Create(&history).Error; err != nil {
			// A concurrent settlement of the same set beat us to the unique
			// key; treat it as already paid.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result.AlreadyPaid = true
				result.SettledIDs = nil
				result.ExcludedIDs = nil
				return apperrors.FailedPrecondition("settlement already recorded")
			}
			return apperrors.Internal("failed to record settlement", err)
		}

		result.Settled = true
		return nil
	})
	if err != nil {
		if result.AlreadyPaid {
			return result, nil
		}
		return nil, err
	}
	return result, nil
}

// settlementSnapshot recomputes the artist's aggregates over the bookings
// being settled.
func settlementSnapshot(artistID uuid.UUID, settled []bookings.Booking, feePercent float64) Payout {
	for _, payout := range Aggregate(settled, nil, feePercent) {
		if payout.ArtistID == artistID {
			return payout
		}
	}
	return Payout{ArtistID: artistID}
}

func excludedFrom(requested []uuid.UUID, settled bookings.UUIDList) bookings.UUIDList {
	var excluded bookings.UUIDList
	for _, id := range requested {
		if !settled.Contains(id) {
			excluded = append(excluded, id)
		}
	}
	return excluded
}

func (r *repository) ListHistory(ctx context.Context, query HistoryListQuery) ([]PayoutHistory, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&PayoutHistory{})
	if query.ArtistID != "" {
		if artistID, err := uuid.Parse(query.ArtistID); err == nil {
			baseQuery = baseQuery.Where("artist_id = ?", artistID)
		}
	}

	var totalCount int64
	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count settlement history", err)
	}

	var history []PayoutHistory
	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("payment_date DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&history).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list settlement history", err)
	}
	return history, totalCount, nil
}
