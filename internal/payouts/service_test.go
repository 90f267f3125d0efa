package payouts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistly/internal/bookings"
)

// fakePayoutRepo mirrors the transactional settlement semantics in memory:
// one history row per settlement key, paid_out flips only on still-eligible
// bookings.
type fakePayoutRepo struct {
	bookings map[uuid.UUID]*bookings.Booking
	history  map[string]PayoutHistory
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{
		bookings: make(map[uuid.UUID]*bookings.Booking),
		history:  make(map[string]PayoutHistory),
	}
}

func (f *fakePayoutRepo) add(b bookings.Booking) {
	copied := b
	f.bookings[b.ID] = &copied
}

func (f *fakePayoutRepo) GetCompletedUnpaid(ctx context.Context) ([]bookings.Booking, error) {
	var out []bookings.Booking
	for _, b := range f.bookings {
		if b.Status == bookings.StatusCompleted && !b.PaidOut {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakePayoutRepo) SettlePayout(ctx context.Context, artistID uuid.UUID, bookingIDs []uuid.UUID, feePercent float64, paymentDate time.Time) (*SettlementResult, error) {
	key := SettlementKey(bookingIDs)
	if _, ok := f.history[key]; ok {
		return &SettlementResult{AlreadyPaid: true}, nil
	}

	var eligible []bookings.Booking
	var settledIDs bookings.UUIDList
	for _, id := range bookingIDs {
		b, ok := f.bookings[id]
		if !ok || b.Status != bookings.StatusCompleted || b.PaidOut {
			continue
		}
		eligible = append(eligible, *b)
		settledIDs = append(settledIDs, id)
	}

	result := &SettlementResult{SettledIDs: settledIDs}
	for _, id := range bookingIDs {
		if !settledIDs.Contains(id) {
			result.ExcludedIDs = append(result.ExcludedIDs, id)
		}
	}
	if len(eligible) == 0 {
		return result, nil
	}

	for _, id := range settledIDs {
		f.bookings[id].PaidOut = true
	}

	snapshot := settlementSnapshot(artistID, eligible, feePercent)
	f.history[key] = PayoutHistory{
		ID:            uuid.New(),
		ArtistID:      artistID,
		SettlementKey: key,
		BookingIDs:    settledIDs,
		NetPayout:     snapshot.NetPayout,
		PaymentDate:   paymentDate,
	}
	result.Settled = true
	result.NetPayout = snapshot.NetPayout
	return result, nil
}

func (f *fakePayoutRepo) ListHistory(ctx context.Context, query HistoryListQuery) ([]PayoutHistory, int64, error) {
	var out []PayoutHistory
	for _, h := range f.history {
		out = append(out, h)
	}
	return out, int64(len(out)), nil
}

type fakeNames struct{}

func (fakeNames) DisplayNames(ctx context.Context, artistIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, id := range artistIDs {
		names[id] = "Artist " + id.String()[:8]
	}
	return names, nil
}

type fakeFees struct{ percent float64 }

func (f fakeFees) PlatformFeePercent(ctx context.Context) (float64, error) {
	return f.percent, nil
}

func settledBooking(artistID uuid.UUID, amount float64, method bookings.PaymentMethod) bookings.Booking {
	return bookings.Booking{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		ArtistIDs:     bookings.UUIDList{artistID},
		Amount:        amount,
		PaymentMethod: method,
		Status:        bookings.StatusCompleted,
	}
}

func TestCalculatePayouts_OnlyEligibleBookings(t *testing.T) {
	repo := newFakePayoutRepo()
	artistID := uuid.New()

	eligible := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	repo.add(eligible)

	paid := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	paid.PaidOut = true
	repo.add(paid)

	open := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	open.Status = bookings.StatusConfirmed
	repo.add(open)

	svc := NewService(repo, fakeNames{}, fakeFees{percent: 10})
	payouts, err := svc.CalculatePayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, 1, payouts[0].TotalBookings)
	assert.Equal(t, bookings.UUIDList{eligible.ID}, payouts[0].BookingIDs)
}

func TestCalculatePayouts_NoEligibleBookings(t *testing.T) {
	svc := NewService(newFakePayoutRepo(), fakeNames{}, fakeFees{percent: 10})
	payouts, err := svc.CalculatePayouts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, payouts)
}

func TestMarkAsPaid_Idempotent(t *testing.T) {
	repo := newFakePayoutRepo()
	artistID := uuid.New()
	b1 := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	b2 := settledBooking(artistID, 5900, bookings.PaymentMethodOnline)
	repo.add(b1)
	repo.add(b2)

	svc := NewService(repo, fakeNames{}, fakeFees{percent: 10})
	req := MarkAsPaidRequest{
		ArtistID:   artistID.String(),
		BookingIDs: []string{b1.ID.String(), b2.ID.String()},
	}

	first, err := svc.MarkAsPaid(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Settled)
	assert.Len(t, first.SettledIDs, 2)
	assert.True(t, repo.bookings[b1.ID].PaidOut)
	assert.True(t, repo.bookings[b2.ID].PaidOut)
	require.Len(t, repo.history, 1)

	// Same set again, even reordered, is a no-op.
	req.BookingIDs = []string{b2.ID.String(), b1.ID.String()}
	second, err := svc.MarkAsPaid(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.AlreadyPaid)
	assert.False(t, second.Settled)
	assert.Len(t, repo.history, 1)
}

func TestMarkAsPaid_DriftedBookingsExcluded(t *testing.T) {
	repo := newFakePayoutRepo()
	artistID := uuid.New()
	eligible := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	drifted := settledBooking(artistID, 5900, bookings.PaymentMethodOnline)
	drifted.Status = bookings.StatusDisputed
	repo.add(eligible)
	repo.add(drifted)

	svc := NewService(repo, fakeNames{}, fakeFees{percent: 10})
	result, err := svc.MarkAsPaid(context.Background(), MarkAsPaidRequest{
		ArtistID:   artistID.String(),
		BookingIDs: []string{eligible.ID.String(), drifted.ID.String()},
	})
	require.NoError(t, err)
	assert.True(t, result.Settled)
	assert.Equal(t, bookings.UUIDList{eligible.ID}, result.SettledIDs)
	assert.Equal(t, bookings.UUIDList{drifted.ID}, result.ExcludedIDs)
	assert.False(t, repo.bookings[drifted.ID].PaidOut)
}

func TestMarkAsPaid_ZeroEligibleIsNoOp(t *testing.T) {
	repo := newFakePayoutRepo()
	artistID := uuid.New()
	paid := settledBooking(artistID, 11800, bookings.PaymentMethodOnline)
	paid.PaidOut = true
	repo.add(paid)

	svc := NewService(repo, fakeNames{}, fakeFees{percent: 10})
	result, err := svc.MarkAsPaid(context.Background(), MarkAsPaidRequest{
		ArtistID:   artistID.String(),
		BookingIDs: []string{paid.ID.String()},
	})
	require.NoError(t, err)
	assert.False(t, result.Settled)
	assert.False(t, result.AlreadyPaid)
	assert.Empty(t, repo.history)
}

func TestMarkAsPaid_InvalidIDs(t *testing.T) {
	svc := NewService(newFakePayoutRepo(), fakeNames{}, fakeFees{percent: 10})

	_, err := svc.MarkAsPaid(context.Background(), MarkAsPaidRequest{
		ArtistID:   "not-a-uuid",
		BookingIDs: []string{uuid.New().String()},
	})
	require.Error(t, err)

	_, err = svc.MarkAsPaid(context.Background(), MarkAsPaidRequest{
		ArtistID:   uuid.New().String(),
		BookingIDs: []string{"not-a-uuid"},
	})
	require.Error(t, err)
}
