package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// FurnishApplicationRepository defines data access for furnish applications.
type FurnishApplicationRepository interface {
	Create(ctx context.Context, app *model.FurnishApplication) error
	FindByTxnNo(ctx context.Context, txnNo string) (*model.FurnishApplication, error)
	FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.FurnishApplication, error)
	FindByStatusIn(ctx context.Context, statuses []string) ([]model.FurnishApplication, error)
	FindAll(ctx context.Context) ([]model.FurnishApplication, error)
	Update(ctx context.Context, app *model.FurnishApplication) error
}

type furnishApplicationRepository struct {
	db *gorm.DB
}

// NewFurnishApplicationRepository returns a gorm-backed FurnishApplicationRepository
func NewFurnishApplicationRepository(db *gorm.DB) FurnishApplicationRepository {
	return &furnishApplicationRepository{db: db}
}

func (r *furnishApplicationRepository) Create(ctx context.Context, app *model.FurnishApplication) error {
	return GetDB(ctx, r.db).Create(app).Error
}

func (r *furnishApplicationRepository) FindByTxnNo(ctx context.Context, txnNo string) (*model.FurnishApplication, error) {
	var app model.FurnishApplication
	if err := GetDB(ctx, r.db).First(&app, "txn_no = ?", txnNo).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *furnishApplicationRepository) FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.FurnishApplication, error) {
	var apps []model.FurnishApplication
	if err := GetDB(ctx, r.db).Where("notice_no = ?", noticeNo).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *furnishApplicationRepository) FindByStatusIn(ctx context.Context, statuses []string) ([]model.FurnishApplication, error) {
	var apps []model.FurnishApplication
	if err := GetDB(ctx, r.db).Where("status IN ?", statuses).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *furnishApplicationRepository) FindAll(ctx context.Context) ([]model.FurnishApplication, error) {
	var apps []model.FurnishApplication
	if err := GetDB(ctx, r.db).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *furnishApplicationRepository) Update(ctx context.Context, app *model.FurnishApplication) error {
	return GetDB(ctx, r.db).Save(app).Error
}
