package repository

import (
	"context"
	"errors"

	"oeeboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// GetByPair returns the invitation between an admin and an invited user,
// regardless of status. There is at most one row per pair in practice.
func (r *InvitationRepository) GetByPair(ctx context.Context, adminID, invitedID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND invited_id = ?", adminID, invitedID).
		First(&invitation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByAdmin returns invitations sent by the given account.
func (r *InvitationRepository) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Invited").
		Where("admin_id = ?", adminID).
		Order("invited_at DESC").
		Find(&invitations).Error
	return invitations, err
}

// ListByInvited returns invitations received by the given account.
func (r *InvitationRepository) ListByInvited(ctx context.Context, invitedID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Where("invited_id = ?", invitedID).
		Order("invited_at DESC").
		Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepository) Update(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Save(invitation).Error
}

func (r *InvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Invitation{}).Error
}
