package database

import (
	"musetix/internal/bookings"
	"musetix/internal/staff"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&staff.User{},
		&bookings.Booking{},
		&bookings.TicketLine{},
	)
}
