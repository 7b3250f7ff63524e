package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// NoticeRepository defines read access to offence notices. Notice creation
// and lifecycle live in the wider case-management system.
type NoticeRepository interface {
	FindByNoticeNo(ctx context.Context, noticeNo string) (*model.OffenceNotice, error)
}

type noticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) FindByNoticeNo(ctx context.Context, noticeNo string) (*model.OffenceNotice, error) {
	var notice model.OffenceNotice
	if err := GetDB(ctx, r.db).First(&notice, "notice_no = ?", noticeNo).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}
