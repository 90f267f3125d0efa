package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeArtistAssigned      NotificationType = "ARTIST_ASSIGNED"
	NotificationTypeOpenJob             NotificationType = "OPEN_JOB"
	NotificationTypeAdminBookingCreated NotificationType = "ADMIN_BOOKING_CREATED"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusQueued  NotificationStatus = "QUEUED"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is the unified message published for every booking event.
// Artist-facing notifications carry booking and event metadata only; customer
// identity never crosses this boundary.
type Notification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientID uuid.UUID `json:"recipient_id"`

	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	EventDate    *time.Time `json:"event_date,omitempty"`
	ServiceTypes []string   `json:"service_types,omitempty"`
	State        string     `json:"state,omitempty"`
	District     string     `json:"district,omitempty"`

	Message string `json:"message"`

	Status    NotificationStatus `json:"status"`
	LastError *string            `json:"last_error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewNotification builds a notification with defaults applied.
func NewNotification(notType NotificationType, recipientID uuid.UUID) *Notification {
	now := time.Now()
	return &Notification{
		ID:          uuid.New(),
		Type:        notType,
		Priority:    defaultPriority(notType),
		RecipientID: recipientID,
		Status:      NotificationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func defaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeArtistAssigned:
		return NotificationPriorityHigh
	case NotificationTypeOpenJob:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityLow
	}
}

// GetPartitionKey routes all of one recipient's notifications to the same
// partition so they arrive in order.
func (n *Notification) GetPartitionKey() string {
	return n.RecipientID.String()
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func (n *Notification) MarkFailed(err error) {
	n.Status = NotificationStatusFailed
	n.UpdatedAt = time.Now()
	errorStr := err.Error()
	n.LastError = &errorStr
}
