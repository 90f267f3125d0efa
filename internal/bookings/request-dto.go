package bookings

import "time"

// CreateBookingRequest represents the booking creation payload. The amount is
// trusted as the final discount-adjusted payable; the pipeline only checks it
// against the item-price sum.
type CreateBookingRequest struct {
	CustomerID    string        `json:"customer_id" binding:"required,uuid"`
	CartItems     []CartItem    `json:"cart_items" binding:"required,min=1"`
	Amount        float64       `json:"amount" binding:"required,gt=0"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	ReferralCode  string        `json:"referral_code,omitempty"`
	EventDate     time.Time     `json:"event_date" binding:"required"`
	ServiceDates  []time.Time   `json:"service_dates" binding:"required,min=1"`
	State         string        `json:"state" binding:"required"`
	District      string        `json:"district" binding:"required"`
	Locality      string        `json:"locality,omitempty"`
}

// AssignArtistsRequest represents the admin artist-assignment payload
type AssignArtistsRequest struct {
	ArtistIDs []string `json:"artist_ids" binding:"required,min=1"`
}

// BookingListQuery represents list filter parameters
type BookingListQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}
