package repository

import (
	"context"

	"ocms/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnerDriverRepository defines data access for owner/driver records and
// their per-source addresses.
type OwnerDriverRepository interface {
	FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.OwnerDriver, error)
	Save(ctx context.Context, record *model.OwnerDriver) error
	Upsert(ctx context.Context, record *model.OwnerDriver) error
	UpsertAddr(ctx context.Context, addr *model.OwnerDriverAddr) error
}

type ownerDriverRepository struct {
	db *gorm.DB
}

func NewOwnerDriverRepository(db *gorm.DB) OwnerDriverRepository {
	return &ownerDriverRepository{db: db}
}

func (r *ownerDriverRepository) FindByNoticeNo(ctx context.Context, noticeNo string) ([]model.OwnerDriver, error) {
	var records []model.OwnerDriver
	if err := GetDB(ctx, r.db).Where("notice_no = ?", noticeNo).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ownerDriverRepository) Save(ctx context.Context, record *model.OwnerDriver) error {
	return GetDB(ctx, r.db).Save(record).Error
}

// Upsert writes the record for (notice_no, owner_driver_indicator),
// overwriting an existing row for the same role.
func (r *ownerDriverRepository) Upsert(ctx context.Context, record *model.OwnerDriver) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notice_no"}, {Name: "owner_driver_indicator"}},
		UpdateAll: true,
	}).Create(record).Error
}

func (r *ownerDriverRepository) UpsertAddr(ctx context.Context, addr *model.OwnerDriverAddr) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "notice_no"}, {Name: "owner_driver_indicator"}, {Name: "type_of_address"}},
		UpdateAll: true,
	}).Create(addr).Error
}

