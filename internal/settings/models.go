package settings

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialSettings is the singleton row holding platform-wide financial
// configuration. The fee percentage applies to both payout deductions and
// offline commission.
type FinancialSettings struct {
	ID                    uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	PlatformFeePercentage float64    `json:"platform_fee_percentage" gorm:"not null;default:10"`
	UpdatedBy             *uuid.UUID `json:"updated_by,omitempty" gorm:"type:uuid"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (fs *FinancialSettings) BeforeCreate(tx *gorm.DB) error {
	if fs.ID == uuid.Nil {
		fs.ID = uuid.New()
	}
	return nil
}

// TableName overrides the table name
func (FinancialSettings) TableName() string {
	return "financial_settings"
}

// UpdateSettingsRequest is the admin settings update payload.
type UpdateSettingsRequest struct {
	PlatformFeePercentage float64 `json:"platform_fee_percentage" binding:"required,gte=0,lte=100"`
}
