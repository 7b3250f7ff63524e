package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// FurnishDocRepository defines data access for furnish application attachments.
type FurnishDocRepository interface {
	CreateAll(ctx context.Context, docs []model.FurnishApplicationDoc) error
	FindByTxnNo(ctx context.Context, txnNo string) ([]model.FurnishApplicationDoc, error)
}

type furnishDocRepository struct {
	db *gorm.DB
}

func NewFurnishDocRepository(db *gorm.DB) FurnishDocRepository {
	return &furnishDocRepository{db: db}
}

func (r *furnishDocRepository) CreateAll(ctx context.Context, docs []model.FurnishApplicationDoc) error {
	if len(docs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&docs).Error
}

func (r *furnishDocRepository) FindByTxnNo(ctx context.Context, txnNo string) ([]model.FurnishApplicationDoc, error) {
	var docs []model.FurnishApplicationDoc
	if err := GetDB(ctx, r.db).Where("txn_no = ?", txnNo).Order("attachment_id").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
