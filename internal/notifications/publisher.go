package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Publisher provides high-level helpers for booking notifications. It
// implements the notifier interface the bookings service depends on.
type Publisher struct {
	producer Producer
}

// NewPublisher creates a new notification publisher
func NewPublisher(producer Producer) *Publisher {
	return &Publisher{producer: producer}
}

// NotifyArtistAssigned tells an artist they have been booked. The message
// carries booking and event metadata only.
func (p *Publisher) NotifyArtistAssigned(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string) error {
	notification := NewNotification(NotificationTypeArtistAssigned, artistUserID)
	notification.BookingID = &bookingID
	notification.EventDate = &eventDate
	notification.ServiceTypes = serviceTypes
	notification.Message = fmt.Sprintf("You have been booked for %s on %s",
		strings.Join(serviceTypes, ", "), eventDate.Format("02 Jan 2006"))
	return p.producer.Publish(ctx, notification)
}

// NotifyOpenJob advertises an unassigned booking to one matched artist.
// Callers fan this out over the match result; the match is already deduped,
// so each artist sees one message per booking.
func (p *Publisher) NotifyOpenJob(ctx context.Context, artistUserID, bookingID uuid.UUID, eventDate time.Time, serviceTypes []string, state, district string) error {
	notification := NewNotification(NotificationTypeOpenJob, artistUserID)
	notification.BookingID = &bookingID
	notification.EventDate = &eventDate
	notification.ServiceTypes = serviceTypes
	notification.State = state
	notification.District = district
	notification.Message = fmt.Sprintf("New job available in %s, %s: %s on %s",
		district, state, strings.Join(serviceTypes, ", "), eventDate.Format("02 Jan 2006"))
	return p.producer.Publish(ctx, notification)
}

// NotifyAdminBookingCreated tells every admin about a new booking.
func (p *Publisher) NotifyAdminBookingCreated(ctx context.Context, adminIDs []uuid.UUID, bookingID uuid.UUID, status string) error {
	batch := make([]*Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		notification := NewNotification(NotificationTypeAdminBookingCreated, adminID)
		notification.BookingID = &bookingID
		notification.Message = fmt.Sprintf("New booking %s created with status %s", bookingID, status)
		batch = append(batch, notification)
	}
	return p.producer.PublishBatch(ctx, batch)
}
