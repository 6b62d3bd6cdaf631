package repository

import (
	"context"
	"errors"

	"oeeboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MachineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) *MachineRepository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) Create(ctx context.Context, machine *model.Machine) error {
	// Machine codes are unique across the system; check before inserting so
	// the caller gets a typed conflict instead of a raw constraint error.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Machine
		err := tx.Where("code = ?", machine.Code).First(&existing).Error
		if err == nil {
			return ErrDuplicateCode
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(machine).Error
	})
}

func (r *MachineRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name").Find(&machines).Error
	return machines, err
}

func (r *MachineRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Machine, error) {
	var machine model.Machine
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&machine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *MachineRepository) Update(ctx context.Context, machine *model.Machine) error {
	return r.db.WithContext(ctx).Save(machine).Error
}

func (r *MachineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Machine{}).Error
}
