package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
)

// BlacklistRepository checks furnished IDs against the exclusion list.
type BlacklistRepository interface {
	Exists(ctx context.Context, idNo string) (bool, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (r *blacklistRepository) Exists(ctx context.Context, idNo string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.BlacklistedID{}).Where("id_no = ?", idNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
