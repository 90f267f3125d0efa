package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistly/internal/artists"
	"artistly/internal/shared/apperrors"
)

// fakeRepo is an in-memory Repository. UpdateWithLock runs the mutation
// against the stored copy the way the real row lock does.
type fakeRepo struct {
	store map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{store: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepo) Create(ctx context.Context, booking *Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	copied := *booking
	f.store[booking.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := f.store[id]
	if !ok {
		return nil, apperrors.NotFound("booking not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) UpdateWithLock(ctx context.Context, id uuid.UUID, fn func(*Booking) error) (*Booking, error) {
	b, ok := f.store[id]
	if !ok {
		return nil, apperrors.NotFound("booking not found")
	}
	copied := *b
	if err := fn(&copied); err != nil {
		return nil, err
	}
	copied.UpdatedAt = time.Now()
	f.store[id] = &copied
	result := copied
	return &result, nil
}

func (f *fakeRepo) Claim(ctx context.Context, bookingID, artistID uuid.UUID) (*Booking, error) {
	return f.UpdateWithLock(ctx, bookingID, func(b *Booking) error {
		if b.Status != StatusNeedsAssignment {
			return apperrors.FailedPrecondition("job already claimed")
		}
		next, err := NextStatus(b.Status, TriggerClaim, transitionContext{HasArtists: true, PaymentOnline: b.IsOnline()})
		if err != nil {
			return err
		}
		b.ArtistIDs = UUIDList{artistID}
		b.Status = next
		return nil
	})
}

func (f *fakeRepo) GetUserBookings(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.store {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.store {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) DeleteAllInBatches(ctx context.Context, batchSize int) (int64, error) {
	deleted := int64(len(f.store))
	f.store = make(map[uuid.UUID]*Booking)
	return deleted, nil
}

type fakeArtistDir struct {
	byID       map[uuid.UUID]*artists.Artist
	byUserID   map[uuid.UUID]*artists.Artist
	byReferral map[string]*artists.Artist
	matched    []artists.Artist
}

func newFakeArtistDir() *fakeArtistDir {
	return &fakeArtistDir{
		byID:       make(map[uuid.UUID]*artists.Artist),
		byUserID:   make(map[uuid.UUID]*artists.Artist),
		byReferral: make(map[string]*artists.Artist),
	}
}

func (f *fakeArtistDir) add(a *artists.Artist) {
	f.byID[a.ID] = a
	f.byUserID[a.UserID] = a
	if a.ReferralCode != "" {
		f.byReferral[a.ReferralCode] = a
	}
}

func (f *fakeArtistDir) GetArtist(ctx context.Context, id uuid.UUID) (*artists.Artist, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("artist not found")
}

func (f *fakeArtistDir) GetByUserID(ctx context.Context, userID uuid.UUID) (*artists.Artist, error) {
	if a, ok := f.byUserID[userID]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("artist not found")
}

func (f *fakeArtistDir) ResolveReferralCode(ctx context.Context, code string) (*artists.Artist, error) {
	if a, ok := f.byReferral[code]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("no artist for referral code")
}

func (f *fakeArtistDir) MatchArtists(ctx context.Context, state, district string, services []string) ([]artists.Artist, error) {
	return f.matched, nil
}

type fakeAdminDir struct {
	adminIDs []uuid.UUID
	supers   map[uuid.UUID]bool
}

func (f *fakeAdminDir) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	return f.adminIDs, nil
}

func (f *fakeAdminDir) IsSuperAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return f.supers[userID], nil
}

type sentNotification struct {
	kind      string
	recipient uuid.UUID
	bookingID uuid.UUID
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) NotifyArtistAssigned(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string) error {
	f.sent = append(f.sent, sentNotification{"assigned", artistUserID, bookingID})
	return nil
}

func (f *fakeNotifier) NotifyOpenJob(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string, state, district string) error {
	f.sent = append(f.sent, sentNotification{"open_job", artistUserID, bookingID})
	return nil
}

func (f *fakeNotifier) NotifyAdminBookingCreated(ctx context.Context, adminIDs []uuid.UUID, bookingID uuid.UUID, status string) error {
	for _, id := range adminIDs {
		f.sent = append(f.sent, sentNotification{"admin", id, bookingID})
	}
	return nil
}

type serviceFixture struct {
	svc      Service
	repo     *fakeRepo
	artists  *fakeArtistDir
	admins   *fakeAdminDir
	notifier *fakeNotifier
}

func newServiceFixture() *serviceFixture {
	repo := newFakeRepo()
	artistDir := newFakeArtistDir()
	adminDir := &fakeAdminDir{supers: make(map[uuid.UUID]bool)}
	notifier := &fakeNotifier{}
	return &serviceFixture{
		svc:      NewService(repo, artistDir, adminDir, notifier, 500),
		repo:     repo,
		artists:  artistDir,
		admins:   adminDir,
		notifier: notifier,
	}
}

func validRequest(customerID uuid.UUID) CreateBookingRequest {
	eventDate := time.Now().Add(30 * 24 * time.Hour)
	return CreateBookingRequest{
		CustomerID: customerID.String(),
		CartItems: []CartItem{
			{ServicePackage: "bridal", ServiceType: "mehndi", Price: 5000},
		},
		Amount:        5000,
		PaymentMethod: PaymentMethodOffline,
		EventDate:     eventDate,
		ServiceDates:  []time.Time{eventDate},
		State:         "Maharashtra",
		District:      "Pune",
	}
}

func TestCreateBooking_CallerMustOwnBooking(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), validRequest(customerID))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))
}

func TestCreateBooking_AmountMustMatchItemSum(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	req := validRequest(customerID)
	req.Amount = 4000

	_, err := f.svc.CreateBooking(context.Background(), customerID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestCreateBooking_StatusDerivation(t *testing.T) {
	artistID := uuid.New()

	tests := []struct {
		name       string
		method     PaymentMethod
		preselect  bool
		referral   string
		wantStatus Status
		wantCode   bool
	}{
		{"online always pending approval", PaymentMethodOnline, false, "", StatusPendingApproval, true},
		{"online with preselect still pending approval", PaymentMethodOnline, true, "", StatusPendingApproval, true},
		{"offline with referral artist", PaymentMethodOffline, false, "PRIYA10", StatusPendingConfirmation, false},
		{"offline with preselected artist", PaymentMethodOffline, true, "", StatusPendingConfirmation, false},
		{"offline unassigned", PaymentMethodOffline, false, "", StatusNeedsAssignment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture()
			f.artists.add(&artists.Artist{ID: artistID, UserID: uuid.New(), ReferralCode: "PRIYA10"})

			customerID := uuid.New()
			req := validRequest(customerID)
			req.PaymentMethod = tt.method
			req.ReferralCode = tt.referral
			if tt.preselect {
				req.CartItems[0].ArtistID = &artistID
			}

			resp, err := f.svc.CreateBooking(context.Background(), customerID, req)
			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), resp.Status)

			bookingID := uuid.MustParse(resp.BookingID)
			booking, err := f.svc.GetBooking(context.Background(), bookingID)
			require.NoError(t, err)

			if tt.wantCode {
				require.NotNil(t, booking.CompletionCode)
				assert.Len(t, *booking.CompletionCode, 6)
				for _, ch := range *booking.CompletionCode {
					assert.True(t, ch >= '0' && ch <= '9')
				}
			} else {
				assert.Nil(t, booking.CompletionCode)
			}

			if tt.referral != "" {
				assert.Equal(t, "PRIYA10", booking.AppliedReferralCode)
				assert.Equal(t, UUIDList{artistID}, booking.ArtistIDs)
			}
		})
	}
}

func TestCreateBooking_UnknownReferralCodeIgnored(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	req := validRequest(customerID)
	req.ReferralCode = "NOSUCHCODE"

	resp, err := f.svc.CreateBooking(context.Background(), customerID, req)
	require.NoError(t, err)
	assert.Equal(t, string(StatusNeedsAssignment), resp.Status)

	booking, err := f.svc.GetBooking(context.Background(), uuid.MustParse(resp.BookingID))
	require.NoError(t, err)
	assert.Empty(t, booking.AppliedReferralCode)
	assert.Empty(t, booking.ArtistIDs)
}

func TestCreateBooking_AdminSnapshotAndNotifications(t *testing.T) {
	f := newServiceFixture()
	admin1, admin2 := uuid.New(), uuid.New()
	f.admins.adminIDs = []uuid.UUID{admin1, admin2}

	matchedUser := uuid.New()
	f.artists.matched = []artists.Artist{{ID: uuid.New(), UserID: matchedUser}}

	customerID := uuid.New()
	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)

	booking, err := f.svc.GetBooking(context.Background(), uuid.MustParse(resp.BookingID))
	require.NoError(t, err)
	assert.ElementsMatch(t, UUIDList{admin1, admin2}, booking.AdminIDs)

	var openJobs, adminNotes int
	for _, n := range f.notifier.sent {
		switch n.kind {
		case "open_job":
			openJobs++
			assert.Equal(t, matchedUser, n.recipient)
		case "admin":
			adminNotes++
		}
	}
	assert.Equal(t, 1, openJobs)
	assert.Equal(t, 2, adminNotes)
}

func TestClaimJob_OnlyOneWinner(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	first := &artists.Artist{ID: uuid.New(), UserID: uuid.New()}
	second := &artists.Artist{ID: uuid.New(), UserID: uuid.New()}
	f.artists.add(first)
	f.artists.add(second)

	claim, err := f.svc.ClaimJob(context.Background(), first.UserID, bookingID)
	require.NoError(t, err)
	assert.True(t, claim.Success)

	_, err = f.svc.ClaimJob(context.Background(), second.UserID, bookingID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFailedPrecondition))

	booking, err := f.svc.GetBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.Equal(t, UUIDList{first.ID}, booking.ArtistIDs)
}

func TestClaimJob_RequiresArtistProfile(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)

	_, err = f.svc.ClaimJob(context.Background(), uuid.New(), uuid.MustParse(resp.BookingID))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))
}

func TestCancelByCustomer_OwnershipAndTerminalGuards(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	_, err = f.svc.CancelByCustomer(context.Background(), bookingID, uuid.New(), "changed plans")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))

	booking, err := f.svc.CancelByCustomer(context.Background(), bookingID, customerID, "changed plans")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)
	assert.Equal(t, "changed plans", booking.CancellationReason)
	require.NotNil(t, booking.CancelledAt)

	// Cancelled is terminal; a second request fails instead of re-running.
	_, err = f.svc.CancelByCustomer(context.Background(), bookingID, customerID, "again")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFailedPrecondition))
}

func TestDeleteAllBookings_SuperAdminOnly(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
		require.NoError(t, err)
	}

	admin := uuid.New()
	_, err := f.svc.DeleteAllBookings(context.Background(), admin)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))

	superAdmin := uuid.New()
	f.admins.supers[superAdmin] = true

	deleted, err := f.svc.DeleteAllBookings(context.Background(), superAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	// Purging an empty table is a no-op, not an error.
	deleted, err = f.svc.DeleteAllBookings(context.Background(), superAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestAdminTransitions_FullLifecycle(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()
	artist := &artists.Artist{ID: uuid.New(), UserID: uuid.New()}
	f.artists.add(artist)

	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	booking, err := f.svc.AssignArtists(context.Background(), bookingID, []uuid.UUID{artist.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, booking.Status)

	booking, err = f.svc.ApproveBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, booking.Status)

	booking, err = f.svc.DisputeBooking(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, StatusDisputed, booking.Status)

	booking, err = f.svc.ResolveDispute(context.Background(), bookingID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, booking.Status)

	// Completed is terminal.
	_, err = f.svc.CompleteBooking(context.Background(), bookingID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindFailedPrecondition))
}

func TestArtistCancelBooking_OnlyAssignedArtist(t *testing.T) {
	f := newServiceFixture()
	customerID := uuid.New()
	assigned := &artists.Artist{ID: uuid.New(), UserID: uuid.New()}
	other := &artists.Artist{ID: uuid.New(), UserID: uuid.New()}
	f.artists.add(assigned)
	f.artists.add(other)

	resp, err := f.svc.CreateBooking(context.Background(), customerID, validRequest(customerID))
	require.NoError(t, err)
	bookingID := uuid.MustParse(resp.BookingID)

	_, err = f.svc.ClaimJob(context.Background(), assigned.UserID, bookingID)
	require.NoError(t, err)

	_, err = f.svc.ArtistCancelBooking(context.Background(), other.UserID, bookingID, "double booked")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))

	booking, err := f.svc.ArtistCancelBooking(context.Background(), assigned.UserID, bookingID, "double booked")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, booking.Status)
}
