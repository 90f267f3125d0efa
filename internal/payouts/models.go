package payouts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artistly/internal/bookings"
)

// Payout is one artist's aggregated financial position over their completed,
// unpaid bookings. It is computed on demand, never stored.
type Payout struct {
	ArtistID      uuid.UUID `json:"artist_id"`
	ArtistName    string    `json:"artist_name"`
	TotalBookings int       `json:"total_bookings"`

	// GrossRevenue is the GST-inclusive sum of online shares.
	GrossRevenue float64 `json:"gross_revenue"`

	// PayoutDue is what the platform owes the artist from online bookings.
	PayoutDue float64 `json:"payout_due"`

	// CommissionOwed is what the artist owes the platform from offline
	// bookings, where the customer paid the artist directly.
	CommissionOwed float64 `json:"commission_owed"`

	PlatformFees float64 `json:"platform_fees"`
	GST          float64 `json:"gst"`

	// NetPayout is PayoutDue minus CommissionOwed. Negative means the artist
	// owes the platform.
	NetPayout float64 `json:"net_payout"`

	BookingIDs bookings.UUIDList `json:"booking_ids"`
}

// PayoutHistory is the persisted record of one settlement. The settlement key
// makes a repeated MarkAsPaid over the same booking set a no-op.
type PayoutHistory struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	ArtistID      uuid.UUID         `json:"artist_id" gorm:"type:uuid;not null;index"`
	SettlementKey string            `json:"settlement_key" gorm:"uniqueIndex;not null"`
	BookingIDs    bookings.UUIDList `json:"booking_ids" gorm:"type:jsonb;not null"`
	TotalBookings  int               `json:"total_bookings" gorm:"not null"`
	GrossRevenue   float64           `json:"gross_revenue" gorm:"not null"`
	PayoutDue      float64           `json:"payout_due" gorm:"not null"`
	CommissionOwed float64           `json:"commission_owed" gorm:"not null"`
	PlatformFees   float64           `json:"platform_fees" gorm:"not null"`
	GST            float64           `json:"gst" gorm:"not null"`
	NetPayout      float64           `json:"net_payout" gorm:"not null"`
	PaymentDate    time.Time         `json:"payment_date" gorm:"not null"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (ph *PayoutHistory) BeforeCreate(tx *gorm.DB) error {
	if ph.ID == uuid.Nil {
		ph.ID = uuid.New()
	}
	return nil
}

// TableName overrides the table name
func (PayoutHistory) TableName() string {
	return "payout_history"
}

// MarkAsPaidRequest is the admin settlement payload.
type MarkAsPaidRequest struct {
	ArtistID   string   `json:"artist_id" binding:"required,uuid"`
	BookingIDs []string `json:"booking_ids" binding:"required,min=1"`
}

// SettlementResult reports what a MarkAsPaid call actually did.
type SettlementResult struct {
	Settled     bool              `json:"settled"`
	AlreadyPaid bool              `json:"already_paid"`
	NetPayout   float64           `json:"net_payout"`
	SettledIDs  bookings.UUIDList `json:"settled_ids,omitempty"`
	ExcludedIDs bookings.UUIDList `json:"excluded_ids,omitempty"`
}

// HistoryListQuery filters the settlement history listing.
type HistoryListQuery struct {
	ArtistID string `form:"artist_id"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// HistoryListResponse wraps a paginated settlement history list.
type HistoryListResponse struct {
	History    []PayoutHistory `json:"history"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
