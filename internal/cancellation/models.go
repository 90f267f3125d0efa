package cancellation

import (
	"time"

	"github.com/google/uuid"
)

// BookingInfo is the slice of booking state the cancellation flow needs.
type BookingInfo struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	Status        string
	EventDate     time.Time
	PaymentMethod string
	Amount        float64
}

// CancellationRequest is the customer cancellation payload.
type CancellationRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// CancellationResponse is returned after a successful cancellation. A refund
// that is due is signalled here for downstream processing; no payment gateway
// call happens in this flow.
type CancellationResponse struct {
	Success        bool    `json:"success"`
	BookingID      string  `json:"booking_id"`
	RefundEligible bool    `json:"refund_eligible"`
	RefundAmount   float64 `json:"refund_amount,omitempty"`
	Reason         string  `json:"reason"`
}
