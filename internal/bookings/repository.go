package bookings

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artistly/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// UpdateWithLock runs fn against the freshly locked row inside a
	// transaction and persists the mutation. fn returning an error aborts
	// the transaction with no partial write.
	UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*Booking) error) (*Booking, error)

	// Claim atomically assigns an open booking to a single artist. Exactly
	// one concurrent claimant wins; the rest observe the post-claim status
	// and fail with a failed-precondition error.
	Claim(ctx context.Context, bookingID, artistID uuid.UUID) (*Booking, error)

	GetUserBookings(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// DeleteAllInBatches purges every booking in fixed-size pages and
	// returns the number of rows removed. An empty table is a no-op.
	DeleteAllInBatches(ctx context.Context, batchSize int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return apperrors.Internal("failed to create booking", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*Booking) error) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row so the guard always validates against the latest
		// status, never a stale read.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking not found")
			}
			return apperrors.Internal("failed to lock booking", err)
		}

		if err := fn(&booking); err != nil {
			return err
		}

		booking.UpdatedAt = time.Now()
		if err := tx.Save(&booking).Error; err != nil {
			return apperrors.Internal("failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) Claim(ctx context.Context, bookingID, artistID uuid.UUID) (*Booking, error) {
	return r.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		if b.Status != StatusNeedsAssignment {
			return apperrors.FailedPrecondition("job already claimed")
		}
		next, err := NextStatus(b.Status, TriggerClaim, transitionContext{
			HasArtists:    true,
			PaymentOnline: b.IsOnline(),
		})
		if err != nil {
			return err
		}
		b.ArtistIDs = UUIDList{artistID}
		b.Status = next
		return nil
	})
}

func (r *repository) GetUserBookings(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("customer_id = ?", customerID)
	return r.paginate(baseQuery, query)
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	return r.paginate(baseQuery, query)
}

func (r *repository) paginate(baseQuery *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery = applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count bookings", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list bookings", err)
	}

	return bookings, totalCount, nil
}

func (r *repository) DeleteAllInBatches(ctx context.Context, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	var total int64
	for {
		// Iterative page delete, exit on empty page. No recursion, no
		// unbounded transaction.
		res := r.db.WithContext(ctx).Exec(
			"DELETE FROM bookings WHERE id IN (SELECT id FROM bookings LIMIT ?)",
			batchSize,
		)
		if res.Error != nil {
			return total, apperrors.Internal("failed to purge bookings", res.Error)
		}
		total += res.RowsAffected
		if res.RowsAffected < int64(batchSize) {
			return total, nil
		}
	}
}

// applyFilters applies query filters to the GORM query
func applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	// Filter by status
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	// Filter by date range
	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// Add 23:59:59 to include the entire day
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("created_at <= ?", dateTo)
		}
	}

	return query
}

// CalculateTotalPages computes page count for a paginated response.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
