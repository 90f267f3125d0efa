package cancellation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"artistly/internal/shared/apperrors"
	"artistly/pkg/logger"
)

// BookingService is the booking surface this flow depends on (implemented by
// an adapter over the bookings package).
type BookingService interface {
	GetBookingInfo(ctx context.Context, bookingID uuid.UUID) (*BookingInfo, error)

	// CancelByCustomer applies the cancellation with the supplied reason.
	// Ownership and state guards re-validate inside the booking row lock.
	CancelByCustomer(ctx context.Context, bookingID, customerID uuid.UUID, reason string) error
}

// Service interface defines the contract for cancellation business logic
type Service interface {
	// RequestCancellation cancels the customer's booking and reports refund
	// eligibility per the 72 hour window.
	RequestCancellation(ctx context.Context, bookingID, customerID uuid.UUID) (*CancellationResponse, error)
}

type service struct {
	bookings BookingService
	now      func() time.Time
	log      *logger.Logger
}

// NewService creates a new cancellation service instance
func NewService(bookings BookingService) Service {
	return &service{
		bookings: bookings,
		now:      time.Now,
		log:      logger.GetDefault(),
	}
}

func (s *service) RequestCancellation(ctx context.Context, bookingID, customerID uuid.UUID) (*CancellationResponse, error) {
	info, err := s.bookings.GetBookingInfo(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if info.CustomerID != customerID {
		return nil, apperrors.PermissionDenied("caller does not own this booking")
	}

	// The refund decision is made once, before the state changes. A booking
	// already in a terminal state never reaches this point twice: the
	// transition guard below rejects it.
	decision := Evaluate(info.EventDate, s.now())

	if err := s.bookings.CancelByCustomer(ctx, bookingID, customerID, decision.Reason); err != nil {
		return nil, err
	}

	resp := &CancellationResponse{
		Success:        true,
		BookingID:      bookingID.String(),
		RefundEligible: decision.RefundEligible,
		Reason:         decision.Reason,
	}
	if decision.RefundEligible && info.PaymentMethod == "ONLINE" {
		resp.RefundAmount = info.Amount
	}

	s.log.InfoWithContext(ctx, "booking cancelled by customer", map[string]interface{}{
		"booking_id":      bookingID.String(),
		"customer_id":     customerID.String(),
		"refund_eligible": decision.RefundEligible,
	})

	return resp, nil
}
