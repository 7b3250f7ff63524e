package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository stores email/SMS delivery records.
type NotificationRepository interface {
	CreateEmailRecord(ctx context.Context, record *model.EmailNotificationRecord) error
	CreateSmsRecord(ctx context.Context, record *model.SmsNotificationRecord) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateEmailRecord(ctx context.Context, record *model.EmailNotificationRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}

func (r *notificationRepository) CreateSmsRecord(ctx context.Context, record *model.SmsNotificationRecord) error {
	return GetDB(ctx, r.db).Create(record).Error
}
