package cancellation

import (
	"context"

	"github.com/google/uuid"

	"artistly/internal/bookings"
)

// bookingAdapter bridges the bookings service to this package's narrower
// BookingService interface.
type bookingAdapter struct {
	svc bookings.Service
}

// NewBookingAdapter wraps the bookings service for cancellation use.
func NewBookingAdapter(svc bookings.Service) BookingService {
	return &bookingAdapter{svc: svc}
}

func (a *bookingAdapter) GetBookingInfo(ctx context.Context, bookingID uuid.UUID) (*BookingInfo, error) {
	booking, err := a.svc.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &BookingInfo{
		ID:            booking.ID,
		CustomerID:    booking.CustomerID,
		Status:        string(booking.Status),
		EventDate:     booking.EventDate,
		PaymentMethod: string(booking.PaymentMethod),
		Amount:        booking.Amount,
	}, nil
}

func (a *bookingAdapter) CancelByCustomer(ctx context.Context, bookingID, customerID uuid.UUID, reason string) error {
	_, err := a.svc.CancelByCustomer(ctx, bookingID, customerID, reason)
	return err
}
