package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// SuspensionRepository defines data access for notice suspensions.
type SuspensionRepository interface {
	FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.SuspendedNotice, error)
	MaxSrNo(ctx context.Context, noticeNo string) (int, error)
	Create(ctx context.Context, suspension *model.SuspendedNotice) error
	Update(ctx context.Context, suspension *model.SuspendedNotice) error
}

type suspensionRepository struct {
	db *gorm.DB
}

func NewSuspensionRepository(db *gorm.DB) SuspensionRepository {
	return &suspensionRepository{db: db}
}

func (r *suspensionRepository) FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.SuspendedNotice, error) {
	var suspensions []model.SuspendedNotice
	if err := GetDB(ctx, r.db).Where("notice_no = ?", noticeNo).Order("sr_no").Find(&suspensions).Error; err != nil {
		return nil, err
	}
	return suspensions, nil
}

func (r *suspensionRepository) MaxSrNo(ctx context.Context, noticeNo string) (int, error) {
	var maxSrNo int
	err := GetDB(ctx, r.db).Model(&model.SuspendedNotice{}).
		Where("notice_no = ?", noticeNo).
		Select("COALESCE(MAX(sr_no), 0)").
		Scan(&maxSrNo).Error
	if err != nil {
		return 0, err
	}
	return maxSrNo, nil
}

func (r *suspensionRepository) Create(ctx context.Context, suspension *model.SuspendedNotice) error {
	return GetDB(ctx, r.db).Create(suspension).Error
}

func (r *suspensionRepository) Update(ctx context.Context, suspension *model.SuspendedNotice) error {
	return GetDB(ctx, r.db).Save(suspension).Error
}
