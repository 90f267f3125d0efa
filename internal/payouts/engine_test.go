package payouts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistly/internal/bookings"
)

const delta = 0.0001

func completedBooking(amount float64, method bookings.PaymentMethod, artistIDs ...uuid.UUID) bookings.Booking {
	return bookings.Booking{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		ArtistIDs:     bookings.UUIDList(artistIDs),
		Amount:        amount,
		PaymentMethod: method,
		Status:        bookings.StatusCompleted,
	}
}

func TestAggregate_OnlineBooking(t *testing.T) {
	artistID := uuid.New()
	booking := completedBooking(11800, bookings.PaymentMethodOnline, artistID)

	result := Aggregate([]bookings.Booking{booking}, map[uuid.UUID]string{artistID: "Priya"}, 10)
	require.Len(t, result, 1)

	payout := result[0]
	assert.Equal(t, artistID, payout.ArtistID)
	assert.Equal(t, "Priya", payout.ArtistName)
	assert.Equal(t, 1, payout.TotalBookings)
	assert.InDelta(t, 11800, payout.GrossRevenue, delta)
	assert.InDelta(t, 9000, payout.PayoutDue, delta)   // 10000 taxable - 1000 fee
	assert.InDelta(t, 1000, payout.PlatformFees, delta)
	assert.InDelta(t, 1800, payout.GST, delta)
	assert.InDelta(t, 0, payout.CommissionOwed, delta)
	assert.InDelta(t, 9000, payout.NetPayout, delta)
	assert.Equal(t, bookings.UUIDList{booking.ID}, payout.BookingIDs)
}

func TestAggregate_OfflineBooking(t *testing.T) {
	artistID := uuid.New()
	booking := completedBooking(11800, bookings.PaymentMethodOffline, artistID)

	result := Aggregate([]bookings.Booking{booking}, nil, 10)
	require.Len(t, result, 1)

	payout := result[0]
	assert.InDelta(t, 1000, payout.CommissionOwed, delta) // (11800/1.18)*0.10
	assert.InDelta(t, 0, payout.PayoutDue, delta)
	assert.InDelta(t, 0, payout.GrossRevenue, delta)
	assert.InDelta(t, 0, payout.GST, delta)
	// The artist owes the platform.
	assert.InDelta(t, -1000, payout.NetPayout, delta)
}

func TestAggregate_MultiArtistEvenSplit(t *testing.T) {
	artist1, artist2 := uuid.New(), uuid.New()
	booking := completedBooking(20000, bookings.PaymentMethodOnline, artist1, artist2)

	result := Aggregate([]bookings.Booking{booking}, nil, 10)
	require.Len(t, result, 2)

	for _, payout := range result {
		assert.InDelta(t, 10000, payout.GrossRevenue, delta)
		assert.InDelta(t, 10000/1.18*0.9, payout.PayoutDue, delta)
		assert.Equal(t, 1, payout.TotalBookings)
	}
}

func TestAggregate_MixedMethodsNetOut(t *testing.T) {
	artistID := uuid.New()
	online := completedBooking(11800, bookings.PaymentMethodOnline, artistID)
	offline := completedBooking(11800, bookings.PaymentMethodOffline, artistID)

	result := Aggregate([]bookings.Booking{online, offline}, nil, 10)
	require.Len(t, result, 1)

	payout := result[0]
	assert.Equal(t, 2, payout.TotalBookings)
	assert.InDelta(t, 9000, payout.PayoutDue, delta)
	assert.InDelta(t, 1000, payout.CommissionOwed, delta)
	assert.InDelta(t, 8000, payout.NetPayout, delta)
	assert.Len(t, payout.BookingIDs, 2)
}

func TestAggregate_ZeroBookingArtistsOmitted(t *testing.T) {
	artistID := uuid.New()
	booking := completedBooking(5000, bookings.PaymentMethodOffline, artistID)

	names := map[uuid.UUID]string{
		artistID:   "Active",
		uuid.New(): "Idle",
	}

	result := Aggregate([]bookings.Booking{booking}, names, 10)
	require.Len(t, result, 1)
	assert.Equal(t, artistID, result[0].ArtistID)
}

func TestAggregate_UnassignedBookingsSkipped(t *testing.T) {
	booking := completedBooking(5000, bookings.PaymentMethodOnline)

	result := Aggregate([]bookings.Booking{booking}, nil, 10)
	assert.Empty(t, result)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, nil, 10))
}

func TestSettlementKey_OrderIndependent(t *testing.T) {
	id1, id2, id3 := uuid.New(), uuid.New(), uuid.New()

	key1 := SettlementKey([]uuid.UUID{id1, id2, id3})
	key2 := SettlementKey([]uuid.UUID{id3, id1, id2})
	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 64)

	other := SettlementKey([]uuid.UUID{id1, id2})
	assert.NotEqual(t, key1, other)
}
