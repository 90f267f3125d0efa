package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "ONLINE"
	PaymentMethodOffline PaymentMethod = "OFFLINE" // pay at venue
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodOnline || m == PaymentMethodOffline
}

// UUIDList is a []uuid.UUID stored as a JSONB column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UUIDList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for UUIDList: %T", value)
	}
}

// Contains reports whether id is in the list.
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// CartItem is one service line captured at booking time. Item prices are
// already discount-adjusted by the caller; the pipeline trusts them (an
// explicit trust boundary, not an oversight — recomputing would need the
// pricing catalog, which lives outside this service).
type CartItem struct {
	ServicePackage string     `json:"service_package"`
	ServiceType    string     `json:"service_type"`
	Tier           string     `json:"tier,omitempty"`
	ArtistID       *uuid.UUID `json:"artist_id,omitempty"` // preselected artist
	Price          float64    `json:"price"`
}

// CartItemList is stored as a JSONB snapshot on the booking.
type CartItemList []CartItem

func (l CartItemList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *CartItemList) Scan(value interface{}) error {
	if value == nil {
		*l = CartItemList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for CartItemList: %T", value)
	}
}

// DateList is a []time.Time stored as a JSONB column.
type DateList []time.Time

func (l DateList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *DateList) Scan(value interface{}) error {
	if value == nil {
		*l = DateList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for DateList: %T", value)
	}
}

// Booking is the central marketplace entity. Status is derived at creation
// and only ever mutated through the state machine; artist_ids must stay empty
// while the booking is open for claims, and paid_out flips true exactly once,
// only while the booking is completed.
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;index;not null"`
	ArtistIDs  UUIDList  `json:"artist_ids" gorm:"type:jsonb;not null;default:'[]'"`

	Amount        float64       `json:"amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(10);not null"`
	PaidOut       bool          `json:"paid_out" gorm:"not null;default:false;index"`

	Status Status `json:"status" gorm:"type:varchar(25);not null;index"`

	EventDate    time.Time `json:"event_date" gorm:"not null"`
	ServiceDates DateList  `json:"service_dates" gorm:"type:jsonb;not null;default:'[]'"`
	State        string    `json:"state" gorm:"not null"`
	District     string    `json:"district" gorm:"not null"`
	Locality     string    `json:"locality,omitempty"`

	CartItems           CartItemList `json:"cart_items" gorm:"type:jsonb;not null;default:'[]'"`
	CompletionCode      *string      `json:"completion_code,omitempty"`
	AppliedReferralCode string       `json:"applied_referral_code,omitempty"`
	CancellationReason  string       `json:"cancellation_reason,omitempty"`

	// AdminIDs snapshots the admin set at creation for notification routing.
	AdminIDs UUIDList `json:"admin_ids" gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) HasArtists() bool {
	return len(b.ArtistIDs) > 0
}

func (b *Booking) IsOnline() bool {
	return b.PaymentMethod == PaymentMethodOnline
}

// ServiceTypes returns the distinct service types across the cart items.
func (b *Booking) ServiceTypes() []string {
	var types []string
	seen := make(map[string]bool)
	for _, item := range b.CartItems {
		if item.ServiceType == "" || seen[item.ServiceType] {
			continue
		}
		seen[item.ServiceType] = true
		types = append(types, item.ServiceType)
	}
	return types
}
