package payouts

import (
	"sort"

	"github.com/google/uuid"

	"artistly/internal/bookings"
)

// gstFactor converts a GST-inclusive amount to its taxable base.
const gstFactor = 1.18

// Aggregate folds completed, unpaid bookings into per-artist payouts.
// feePercent is the platform commission as a percentage. Artists without an
// eligible booking do not appear in the result. Pure function.
func Aggregate(eligible []bookings.Booking, artistNames map[uuid.UUID]string, feePercent float64) []Payout {
	rate := feePercent / 100

	byArtist := make(map[uuid.UUID]*Payout)
	for _, booking := range eligible {
		if len(booking.ArtistIDs) == 0 {
			continue
		}
		share := booking.Amount / float64(len(booking.ArtistIDs))

		for _, artistID := range booking.ArtistIDs {
			payout, ok := byArtist[artistID]
			if !ok {
				payout = &Payout{
					ArtistID:   artistID,
					ArtistName: artistNames[artistID],
				}
				byArtist[artistID] = payout
			}

			payout.TotalBookings++
			payout.BookingIDs = append(payout.BookingIDs, booking.ID)

			taxable := share / gstFactor
			if booking.PaymentMethod == bookings.PaymentMethodOffline {
				// Customer paid the artist directly; the platform's cut of
				// the taxable base is owed back.
				payout.CommissionOwed += taxable * rate
			} else {
				fee := taxable * rate
				payout.PayoutDue += taxable - fee
				payout.GrossRevenue += share
			}
		}
	}

	result := make([]Payout, 0, len(byArtist))
	for _, payout := range byArtist {
		payout.PlatformFees = (payout.GrossRevenue / gstFactor) * rate
		payout.GST = payout.GrossRevenue - payout.GrossRevenue/gstFactor
		payout.NetPayout = payout.PayoutDue - payout.CommissionOwed
		result = append(result, *payout)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ArtistID.String() < result[j].ArtistID.String()
	})
	return result
}
