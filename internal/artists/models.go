package artists

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceArea is one geographic region an artist serves.
type ServiceArea struct {
	State      string   `json:"state"`
	District   string   `json:"district"`
	Localities []string `json:"localities,omitempty"`
}

// ServiceAreaList is stored as a JSONB column.
type ServiceAreaList []ServiceArea

func (l ServiceAreaList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ServiceAreaList) Scan(value interface{}) error {
	if value == nil {
		*l = ServiceAreaList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for ServiceAreaList: %T", value)
	}
}

// StringList is a []string stored as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

// Artist is the marketplace profile attached to an ARTIST user. The booking
// core treats it as read-only lookup data.
type Artist struct {
	ID               uuid.UUID       `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID           uuid.UUID       `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName      string          `json:"display_name" gorm:"not null"`
	ReferralCode     string          `json:"referral_code" gorm:"uniqueIndex;not null"`
	ReferralDiscount float64         `json:"referral_discount" gorm:"not null;default:0"`
	Services         StringList      `json:"services" gorm:"type:jsonb;not null;default:'[]'"`
	ServiceAreas     ServiceAreaList `json:"service_areas" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Artist) TableName() string {
	return "artists"
}

// ServesArea reports whether the artist has a service area matching the
// given state and district pair.
func (a *Artist) ServesArea(state, district string) bool {
	for _, area := range a.ServiceAreas {
		if area.State == state && area.District == district {
			return true
		}
	}
	return false
}

// OffersAny reports whether the artist offers at least one of the requested
// service types.
func (a *Artist) OffersAny(services []string) bool {
	for _, offered := range a.Services {
		for _, wanted := range services {
			if offered == wanted {
				return true
			}
		}
	}
	return false
}

// CreateArtistRequest represents an artist profile creation payload
type CreateArtistRequest struct {
	DisplayName      string          `json:"display_name" binding:"required,min=2,max=100"`
	ReferralCode     string          `json:"referral_code" binding:"required,min=4,max=20"`
	ReferralDiscount float64         `json:"referral_discount" binding:"min=0,max=100"`
	Services         []string        `json:"services" binding:"required,min=1"`
	ServiceAreas     []ServiceArea   `json:"service_areas" binding:"required,min=1"`
}

// UpdateArtistRequest represents an artist profile update payload
type UpdateArtistRequest struct {
	DisplayName      *string        `json:"display_name,omitempty"`
	ReferralDiscount *float64       `json:"referral_discount,omitempty"`
	Services         []string       `json:"services,omitempty"`
	ServiceAreas     []ServiceArea  `json:"service_areas,omitempty"`
}
