package database

import (
	"log"

	"ocms/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.OffenceNotice{},
		&model.FurnishApplication{},
		&model.FurnishApplicationDoc{},
		&model.OwnerDriver{},
		&model.OwnerDriverAddr{},
		&model.SuspendedNotice{},
		&model.BlacklistedID{},
		&model.EmailNotificationRecord{},
		&model.SmsNotificationRecord{},
		&model.AuditEvent{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
