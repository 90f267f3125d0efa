package database

import (
	"artistly/internal/artists"
	"artistly/internal/bookings"
	"artistly/internal/payouts"
	"artistly/internal/settings"
	"artistly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&artists.Artist{},
		&bookings.Booking{},
		&payouts.PayoutHistory{},
		&settings.FinancialSettings{},
	)
}
