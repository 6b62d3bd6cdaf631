package repository

import (
	"context"
	"errors"
	"time"

	"oeeboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordFilter narrows a production record listing. OwnerID is mandatory;
// everything else is optional.
type RecordFilter struct {
	OwnerID   uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	MachineID *uuid.UUID
	Sector    string
}

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) Create(ctx context.Context, record *model.ProductionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ProductionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductionRecord, error) {
	var record model.ProductionRecord
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Preload("Shift").
		Where("id = ?", id).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ProductionRepository) List(ctx context.Context, filter RecordFilter) ([]model.ProductionRecord, error) {
	var records []model.ProductionRecord

	query := r.db.WithContext(ctx).
		Preload("Machine").
		Preload("Shift").
		Joins("JOIN machines ON machines.id = production_records.machine_id").
		Where("production_records.owner_id = ?", filter.OwnerID)

	if filter.DateFrom != nil {
		query = query.Where("production_records.date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("production_records.date <= ?", filter.DateTo.Format("2006-01-02"))
	}
	if filter.MachineID != nil {
		query = query.Where("production_records.machine_id = ?", *filter.MachineID)
	}
	if filter.Sector != "" {
		query = query.Where("machines.sector = ?", filter.Sector)
	}

	err := query.
		Order("production_records.date DESC").
		Order("production_records.created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *ProductionRepository) Update(ctx context.Context, record *model.ProductionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *ProductionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductionRecord{}).Error
}
