package bookings

import "artistly/internal/shared/apperrors"

type Status string

const (
	// StatusPendingConfirmation awaits manual phone confirmation for
	// pay-at-venue bookings placed with a referral code.
	StatusPendingConfirmation Status = "PENDING_CONFIRMATION"
	// StatusPendingApproval has an artist attached and awaits admin sign-off.
	StatusPendingApproval Status = "PENDING_APPROVAL"
	// StatusNeedsAssignment is open for any matching artist to claim.
	StatusNeedsAssignment Status = "NEEDS_ASSIGNMENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusCompleted       Status = "COMPLETED"
	StatusCancelled       Status = "CANCELLED"
	StatusDisputed        Status = "DISPUTED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingConfirmation, StatusPendingApproval, StatusNeedsAssignment,
		StatusConfirmed, StatusCompleted, StatusCancelled, StatusDisputed:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanBeCancelledByCustomer reports whether a customer cancellation request
// may still be evaluated for this status.
func (s Status) CanBeCancelledByCustomer() bool {
	return !s.IsTerminal() && s.IsValid()
}

// Trigger names a state-machine event. Transitions not listed in the table
// below are rejected with a failed-precondition error and leave the booking
// untouched.
type Trigger string

const (
	TriggerApprove         Trigger = "APPROVE"
	TriggerManualConfirm   Trigger = "MANUAL_CONFIRM"
	TriggerAssignArtists   Trigger = "ASSIGN_ARTISTS"
	TriggerClaim           Trigger = "CLAIM"
	TriggerComplete        Trigger = "COMPLETE"
	TriggerDispute         Trigger = "DISPUTE"
	TriggerResolveComplete Trigger = "RESOLVE_COMPLETE"
	TriggerResolveCancel   Trigger = "RESOLVE_CANCEL"
	TriggerCancel          Trigger = "CANCEL"
	TriggerCustomerCancel  Trigger = "CUSTOMER_CANCEL"
)

// transitionContext carries the booking facts a trigger's guard or target
// derivation depends on.
type transitionContext struct {
	HasArtists    bool
	PaymentOnline bool
}

// NextStatus validates a trigger against the current status and returns the
// resulting status. Invalid (status, trigger) pairs fail with a
// failed-precondition error.
func NextStatus(current Status, trigger Trigger, tc transitionContext) (Status, error) {
	invalid := func() (Status, error) {
		return current, apperrors.Newf(apperrors.KindFailedPrecondition,
			"invalid transition: cannot apply %s while booking is %s", trigger, current)
	}

	switch trigger {
	case TriggerApprove:
		if current != StatusPendingApproval {
			return invalid()
		}
		if !tc.HasArtists {
			return current, apperrors.FailedPrecondition("cannot approve a booking with no assigned artists")
		}
		return StatusConfirmed, nil

	case TriggerManualConfirm:
		if current != StatusPendingConfirmation {
			return invalid()
		}
		if tc.HasArtists {
			return StatusPendingApproval, nil
		}
		return StatusNeedsAssignment, nil

	case TriggerAssignArtists:
		if current != StatusNeedsAssignment {
			return invalid()
		}
		if !tc.HasArtists {
			return current, apperrors.FailedPrecondition("at least one artist id is required")
		}
		if tc.PaymentOnline {
			return StatusConfirmed, nil
		}
		return StatusPendingApproval, nil

	case TriggerClaim:
		if current != StatusNeedsAssignment {
			return invalid()
		}
		return StatusConfirmed, nil

	case TriggerComplete:
		if current != StatusConfirmed {
			return invalid()
		}
		return StatusCompleted, nil

	case TriggerDispute:
		if current != StatusConfirmed {
			return invalid()
		}
		return StatusDisputed, nil

	case TriggerResolveComplete:
		if current != StatusDisputed {
			return invalid()
		}
		return StatusCompleted, nil

	case TriggerResolveCancel:
		if current != StatusDisputed {
			return invalid()
		}
		return StatusCancelled, nil

	case TriggerCancel:
		if current != StatusConfirmed {
			return invalid()
		}
		return StatusCancelled, nil

	case TriggerCustomerCancel:
		if !current.CanBeCancelledByCustomer() {
			return invalid()
		}
		return StatusCancelled, nil
	}

	return invalid()
}
