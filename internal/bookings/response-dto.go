package bookings

// CreateBookingResponse is returned on successful booking creation.
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// ClaimJobResponse is returned from a claim attempt.
type ClaimJobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BookingListResponse wraps a paginated booking list.
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
