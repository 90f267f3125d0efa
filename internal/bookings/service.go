package bookings

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"

	"artistly/internal/artists"
	"artistly/internal/shared/apperrors"
	"artistly/pkg/logger"
)

// ArtistDirectory is the read-only artist lookup the pipeline needs
// (implemented by the artists service).
type ArtistDirectory interface {
	GetArtist(ctx context.Context, id uuid.UUID) (*artists.Artist, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*artists.Artist, error)
	ResolveReferralCode(ctx context.Context, code string) (*artists.Artist, error)
	MatchArtists(ctx context.Context, state, district string, services []string) ([]artists.Artist, error)
}

// AdminDirectory lists admin accounts for the notification snapshot.
type AdminDirectory interface {
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
	IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Notifier publishes booking events. Failures are logged and never fail the
// triggering operation. Only event metadata crosses this boundary — customer
// identity is withheld from artist-facing notifications.
type Notifier interface {
	NotifyArtistAssigned(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string) error
	NotifyOpenJob(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string, state, district string) error
	NotifyAdminBookingCreated(ctx context.Context, adminIDs []uuid.UUID, bookingID uuid.UUID, status string) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, callerID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, customerID uuid.UUID, query BookingListQuery) (*BookingListResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error)

	// IsAssignedArtist reports whether the user has an artist profile
	// assigned to the booking. Lookup failures deny rather than error.
	IsAssignedArtist(ctx context.Context, booking *Booking, userID uuid.UUID) bool

	// ClaimJob atomically assigns an open booking to the calling artist.
	ClaimJob(ctx context.Context, artistUserID, bookingID uuid.UUID) (*ClaimJobResponse, error)

	// Admin transitions
	ApproveBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	ManualConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	AssignArtists(ctx context.Context, bookingID uuid.UUID, artistIDs []uuid.UUID) (*Booking, error)
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	DisputeBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	ResolveDispute(ctx context.Context, bookingID uuid.UUID, complete bool) (*Booking, error)
	AdminCancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*Booking, error)

	// ArtistCancelBooking cancels a confirmed booking the caller is assigned to.
	ArtistCancelBooking(ctx context.Context, artistUserID, bookingID uuid.UUID, reason string) (*Booking, error)

	// CancelByCustomer applies a customer cancellation with the supplied
	// reason; ownership and transition guards re-validate against the
	// latest row inside the lock.
	CancelByCustomer(ctx context.Context, bookingID, customerID uuid.UUID, reason string) (*Booking, error)

	// DeleteAllBookings purges every booking. Super-admin only; idempotent.
	DeleteAllBookings(ctx context.Context, callerID uuid.UUID) (int64, error)
}

type service struct {
	repo      Repository
	artistDir ArtistDirectory
	adminDir  AdminDirectory
	notifier  Notifier
	purgeSize int
	log       *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, artistDir ArtistDirectory, adminDir AdminDirectory, notifier Notifier, purgeSize int) Service {
	return &service{
		repo:      repo,
		artistDir: artistDir,
		adminDir:  adminDir,
		notifier:  notifier,
		purgeSize: purgeSize,
		log:       logger.GetDefault(),
	}
}

// CreateBooking runs the creation pipeline: trust-check the amount, resolve
// artist assignment (referral > preselect > unassigned), derive the initial
// status, generate a completion code for online payments, snapshot admins,
// persist, and fan out notifications.
func (s *service) CreateBooking(ctx context.Context, callerID uuid.UUID, req CreateBookingRequest) (*CreateBookingResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperrors.InvalidArgument("invalid customer id")
	}
	if customerID != callerID {
		return nil, apperrors.PermissionDenied("caller does not own this booking")
	}

	if len(req.CartItems) == 0 {
		return nil, apperrors.InvalidArgument("at least one cart item is required")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, apperrors.InvalidArgument("payment method must be ONLINE or OFFLINE")
	}
	if req.EventDate.IsZero() {
		return nil, apperrors.InvalidArgument("event date is required")
	}
	if len(req.ServiceDates) == 0 {
		return nil, apperrors.InvalidArgument("at least one service date is required")
	}

	// The amount is the final discount-adjusted payable supplied by the
	// caller; we only verify it matches the item-price sum.
	var itemSum float64
	for _, item := range req.CartItems {
		if item.Price < 0 {
			return nil, apperrors.InvalidArgument("cart item price cannot be negative")
		}
		itemSum += item.Price
	}
	if math.Abs(itemSum-req.Amount) > 0.01 {
		return nil, apperrors.InvalidArgument("amount does not match cart item total")
	}

	// Resolve artist assignment: referral code wins, then preselected cart
	// artists, else the booking stays unassigned.
	assignedArtists, appliedReferral, err := s.resolveAssignment(ctx, req)
	if err != nil {
		return nil, err
	}

	status := deriveInitialStatus(req.PaymentMethod, len(assignedArtists) > 0)

	booking := &Booking{
		CustomerID:          customerID,
		ArtistIDs:           artistIDsOf(assignedArtists),
		Amount:              req.Amount,
		PaymentMethod:       req.PaymentMethod,
		Status:              status,
		EventDate:           req.EventDate,
		ServiceDates:        DateList(req.ServiceDates),
		State:               req.State,
		District:            req.District,
		Locality:            req.Locality,
		CartItems:           CartItemList(req.CartItems),
		AppliedReferralCode: appliedReferral,
	}

	// Completion codes exist only for online payments; collisions are
	// acceptable because the code is scoped to its booking.
	if req.PaymentMethod == PaymentMethodOnline {
		code, err := generateCompletionCode()
		if err != nil {
			return nil, apperrors.Internal("failed to generate completion code", err)
		}
		booking.CompletionCode = &code
	}

	adminIDs, err := s.adminDir.ListAdminIDs(ctx)
	if err != nil {
		return nil, err
	}
	booking.AdminIDs = UUIDList(adminIDs)

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), customerID.String(), string(booking.Status))

	s.notifyAfterCreation(ctx, booking, assignedArtists)

	return &CreateBookingResponse{
		Success:   true,
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	}, nil
}

func (s *service) resolveAssignment(ctx context.Context, req CreateBookingRequest) ([]artists.Artist, string, error) {
	if req.ReferralCode != "" {
		artist, err := s.artistDir.ResolveReferralCode(ctx, req.ReferralCode)
		if err == nil {
			return []artists.Artist{*artist}, artist.ReferralCode, nil
		}
		if !apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, "", err
		}
		// Unknown codes are ignored rather than rejected; the discount was
		// already resolved (or not) by the caller.
	}

	var assigned []artists.Artist
	seen := make(map[uuid.UUID]bool)
	for _, item := range req.CartItems {
		if item.ArtistID == nil || seen[*item.ArtistID] {
			continue
		}
		artist, err := s.artistDir.GetArtist(ctx, *item.ArtistID)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindNotFound) {
				return nil, "", apperrors.InvalidArgument("preselected artist does not exist")
			}
			return nil, "", err
		}
		seen[artist.ID] = true
		assigned = append(assigned, *artist)
	}
	return assigned, "", nil
}

// deriveInitialStatus maps (payment method, assignment outcome) to the
// booking's first status. Online bookings always need admin approval;
// pay-at-venue bookings with an artist attached need phone confirmation,
// unassigned ones open for claims.
func deriveInitialStatus(method PaymentMethod, hasArtists bool) Status {
	if method == PaymentMethodOnline {
		return StatusPendingApproval
	}
	if hasArtists {
		return StatusPendingConfirmation
	}
	return StatusNeedsAssignment
}

func (s *service) notifyAfterCreation(ctx context.Context, booking *Booking, assigned []artists.Artist) {
	serviceTypes := booking.ServiceTypes()

	if len(assigned) > 0 {
		for _, artist := range assigned {
			if err := s.notifier.NotifyArtistAssigned(ctx, artist.UserID, booking.ID, booking.EventDate, serviceTypes); err != nil {
				s.log.ErrorWithContext(ctx, "failed to notify assigned artist", err, map[string]interface{}{
					"booking_id": booking.ID.String(),
					"artist_id":  artist.ID.String(),
				})
			}
		}
	} else if booking.Status == StatusNeedsAssignment {
		matched, err := s.artistDir.MatchArtists(ctx, booking.State, booking.District, serviceTypes)
		if err != nil {
			s.log.ErrorWithContext(ctx, "open job fan-out lookup failed", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
		} else {
			// MatchArtists already deduplicates, so each artist receives at
			// most one notification per booking.
			for _, artist := range matched {
				if err := s.notifier.NotifyOpenJob(ctx, artist.UserID, booking.ID, booking.EventDate, serviceTypes, booking.State, booking.District); err != nil {
					s.log.ErrorWithContext(ctx, "failed to notify matched artist", err, map[string]interface{}{
						"booking_id": booking.ID.String(),
						"artist_id":  artist.ID.String(),
					})
				}
			}
		}
	}

	if err := s.notifier.NotifyAdminBookingCreated(ctx, booking.AdminIDs, booking.ID, string(booking.Status)); err != nil {
		s.log.ErrorWithContext(ctx, "failed to notify admins", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

func (s *service) GetUserBookings(ctx context.Context, customerID uuid.UUID, query BookingListQuery) (*BookingListResponse, error) {
	list, total, err := s.repo.GetUserBookings(ctx, customerID, query)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, query), nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*BookingListResponse, error) {
	list, total, err := s.repo.GetAllBookings(ctx, query)
	if err != nil {
		return nil, err
	}
	return listResponse(list, total, query), nil
}

func (s *service) IsAssignedArtist(ctx context.Context, booking *Booking, userID uuid.UUID) bool {
	artist, err := s.artistDir.GetByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return booking.ArtistIDs.Contains(artist.ID)
}

// ClaimJob validates the caller is a registered artist, then hands the
// single-winner assignment to the repository's locked transaction.
func (s *service) ClaimJob(ctx context.Context, artistUserID, bookingID uuid.UUID) (*ClaimJobResponse, error) {
	artist, err := s.artistDir.GetByUserID(ctx, artistUserID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.PermissionDenied("only registered artists can claim jobs")
		}
		return nil, err
	}

	booking, err := s.repo.Claim(ctx, bookingID, artist.ID)
	if err != nil {
		return nil, err
	}

	s.log.LogJobClaimed(ctx, booking.ID.String(), artist.ID.String())

	if err := s.notifier.NotifyArtistAssigned(ctx, artist.UserID, booking.ID, booking.EventDate, booking.ServiceTypes()); err != nil {
		s.log.ErrorWithContext(ctx, "failed to notify claiming artist", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}

	return &ClaimJobResponse{
		Success: true,
		Message: "job claimed successfully",
	}, nil
}

func (s *service) ApproveBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.applyTransition(ctx, bookingID, TriggerApprove, nil)
}

func (s *service) ManualConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.applyTransition(ctx, bookingID, TriggerManualConfirm, nil)
}

// AssignArtists attaches artists to an open booking. The transition target
// depends on payment method: online bookings confirm directly, pay-at-venue
// assignments still require admin approval.
func (s *service) AssignArtists(ctx context.Context, bookingID uuid.UUID, artistIDs []uuid.UUID) (*Booking, error) {
	if len(artistIDs) == 0 {
		return nil, apperrors.InvalidArgument("at least one artist id is required")
	}

	var assigned []artists.Artist
	seen := make(map[uuid.UUID]bool)
	for _, id := range artistIDs {
		if seen[id] {
			continue
		}
		artist, err := s.artistDir.GetArtist(ctx, id)
		if err != nil {
			return nil, err
		}
		seen[id] = true
		assigned = append(assigned, *artist)
	}

	booking, err := s.repo.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		next, err := NextStatus(b.Status, TriggerAssignArtists, transitionContext{
			HasArtists:    true,
			PaymentOnline: b.IsOnline(),
		})
		if err != nil {
			return err
		}
		b.ArtistIDs = artistIDsOf(assigned)
		b.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, artist := range assigned {
		if err := s.notifier.NotifyArtistAssigned(ctx, artist.UserID, booking.ID, booking.EventDate, booking.ServiceTypes()); err != nil {
			s.log.ErrorWithContext(ctx, "failed to notify assigned artist", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
				"artist_id":  artist.ID.String(),
			})
		}
	}

	return booking, nil
}

func (s *service) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.applyTransition(ctx, bookingID, TriggerComplete, nil)
}

func (s *service) DisputeBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.applyTransition(ctx, bookingID, TriggerDispute, nil)
}

func (s *service) ResolveDispute(ctx context.Context, bookingID uuid.UUID, complete bool) (*Booking, error) {
	trigger := TriggerResolveCancel
	if complete {
		trigger = TriggerResolveComplete
	}
	return s.applyTransition(ctx, bookingID, trigger, nil)
}

func (s *service) AdminCancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*Booking, error) {
	return s.applyTransition(ctx, bookingID, TriggerCancel, func(b *Booking) {
		b.CancellationReason = reason
	})
}

func (s *service) ArtistCancelBooking(ctx context.Context, artistUserID, bookingID uuid.UUID, reason string) (*Booking, error) {
	artist, err := s.artistDir.GetByUserID(ctx, artistUserID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.PermissionDenied("only registered artists can cancel assignments")
		}
		return nil, err
	}

	return s.repo.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		if !b.ArtistIDs.Contains(artist.ID) {
			return apperrors.PermissionDenied("artist is not assigned to this booking")
		}
		next, err := NextStatus(b.Status, TriggerCancel, transitionContext{
			HasArtists:    b.HasArtists(),
			PaymentOnline: b.IsOnline(),
		})
		if err != nil {
			return err
		}
		applyCancellation(b, next, reason)
		return nil
	})
}

func (s *service) CancelByCustomer(ctx context.Context, bookingID, customerID uuid.UUID, reason string) (*Booking, error) {
	booking, err := s.repo.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		if b.CustomerID != customerID {
			return apperrors.PermissionDenied("caller does not own this booking")
		}
		next, err := NextStatus(b.Status, TriggerCustomerCancel, transitionContext{
			HasArtists:    b.HasArtists(),
			PaymentOnline: b.IsOnline(),
		})
		if err != nil {
			return err
		}
		applyCancellation(b, next, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogBookingTransition(ctx, booking.ID.String(), "", string(booking.Status))
	return booking, nil
}

func (s *service) DeleteAllBookings(ctx context.Context, callerID uuid.UUID) (int64, error) {
	isSuper, err := s.adminDir.IsSuperAdmin(ctx, callerID)
	if err != nil {
		return 0, err
	}
	if !isSuper {
		return 0, apperrors.PermissionDenied("super admin access required")
	}
	return s.repo.DeleteAllInBatches(ctx, s.purgeSize)
}

// applyTransition validates and persists a single status transition against
// the freshly locked row.
func (s *service) applyTransition(ctx context.Context, bookingID uuid.UUID, trigger Trigger, mutate func(*Booking)) (*Booking, error) {
	var from Status
	booking, err := s.repo.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		from = b.Status
		next, err := NextStatus(b.Status, trigger, transitionContext{
			HasArtists:    b.HasArtists(),
			PaymentOnline: b.IsOnline(),
		})
		if err != nil {
			return err
		}
		if next == StatusCancelled {
			applyCancellation(b, next, b.CancellationReason)
		} else {
			b.Status = next
		}
		if mutate != nil {
			mutate(b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogBookingTransition(ctx, booking.ID.String(), string(from), string(booking.Status))
	return booking, nil
}

func applyCancellation(b *Booking, next Status, reason string) {
	b.Status = next
	if reason != "" {
		b.CancellationReason = reason
	}
	now := time.Now()
	b.CancelledAt = &now
}

func artistIDsOf(list []artists.Artist) UUIDList {
	ids := make(UUIDList, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

func listResponse(list []Booking, total int64, query BookingListQuery) *BookingListResponse {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	return &BookingListResponse{
		Bookings:   list,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(total, query.Limit),
	}
}

// generateCompletionCode returns 6 random decimal digits.
func generateCompletionCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}
	return string(code), nil
}
