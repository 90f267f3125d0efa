package cancellation

import "time"

// RefundWindow is how far ahead of the event a cancellation must land to
// qualify for a refund.
const RefundWindow = 72 * time.Hour

// Decision is the outcome of the refund policy for one cancellation.
type Decision struct {
	RefundEligible bool   `json:"refund_eligible"`
	Reason         string `json:"reason"`
}

// Evaluate applies the refund window to a cancellation happening at now for
// a booking on eventDate. Exactly 72 hours out is NOT eligible; the window
// must be strictly exceeded.
func Evaluate(eventDate, now time.Time) Decision {
	if eventDate.Sub(now) > RefundWindow {
		return Decision{
			RefundEligible: true,
			Reason:         "customer cancelled within refund window",
		}
	}
	return Decision{
		RefundEligible: false,
		Reason:         "customer cancelled outside refund window",
	}
}
