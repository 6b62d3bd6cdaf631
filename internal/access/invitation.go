package access

import (
	"context"
	"time"

	"oeeboard/internal/model"

	"github.com/google/uuid"
)

// UserDirectory resolves invitees by email.
type UserDirectory interface {
	UserReader
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// InvitationStore is the slice of the invitation repository the lifecycle
// manager mutates.
type InvitationStore interface {
	InvitationReader
	Create(ctx context.Context, invitation *model.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	GetByPair(ctx context.Context, adminID, invitedID uuid.UUID) (*model.Invitation, error)
	Update(ctx context.Context, invitation *model.Invitation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvitationManager drives the invitation state machine:
// pending -> accepted or pending -> rejected, grantee action only. Role
// amendments are restricted to pending invitations, and removal is a
// grantor-only hard delete at any status. Every mutation refreshes the
// resolver state of both parties.
type InvitationManager struct {
	users       UserDirectory
	invitations InvitationStore
	resolver    *Resolver
	now         func() time.Time
}

func NewInvitationManager(users UserDirectory, invitations InvitationStore, resolver *Resolver) *InvitationManager {
	return &InvitationManager{
		users:       users,
		invitations: invitations,
		resolver:    resolver,
		now:         time.Now,
	}
}

// Send invites the account registered under email to view the admin's
// dashboard with the given role. A pending or accepted invitation for the
// same pair is a conflict; a rejected one may be superseded.
func (m *InvitationManager) Send(ctx context.Context, adminID uuid.UUID, email string, role model.Role) (*model.Invitation, error) {
	if !model.InvitableRole(role) {
		return nil, ErrInvalidRole
	}

	// The invitee must be resolved from the email, never assumed: the pair
	// check below runs against the invitee's id, not the sender's.
	invited, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if invited == nil {
		return nil, ErrUserNotFound
	}
	if invited.ID == adminID {
		return nil, ErrSelfInvite
	}

	existing, err := m.invitations.GetByPair(ctx, adminID, invited.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.StatusPending:
			return nil, ErrInvitePending
		case model.StatusAccepted:
			return nil, ErrAlreadyHasAccess
		}
		// A rejected invitation does not block a new one; drop it so the
		// pair stays unique.
		if err := m.invitations.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	invitation := &model.Invitation{
		AdminID:   adminID,
		InvitedID: invited.ID,
		Role:      role,
		Status:    model.StatusPending,
		InvitedAt: m.now(),
	}
	if err := m.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	m.refreshBoth(ctx, adminID, invited.ID)
	return invitation, nil
}

// Accept transitions a pending invitation to accepted. Only the invited
// account may accept; the row-level policy in the store enforces the same
// rule, but the check here must not rely on it.
func (m *InvitationManager) Accept(ctx context.Context, userID, invitationID uuid.UUID) error {
	invitation, err := m.granteeInvitation(ctx, userID, invitationID)
	if err != nil {
		return err
	}

	now := m.now()
	invitation.Status = model.StatusAccepted
	invitation.AcceptedAt = &now
	if err := m.invitations.Update(ctx, invitation); err != nil {
		return err
	}

	m.refreshBoth(ctx, invitation.AdminID, userID)
	return nil
}

// Reject transitions a pending invitation to rejected.
func (m *InvitationManager) Reject(ctx context.Context, userID, invitationID uuid.UUID) error {
	invitation, err := m.granteeInvitation(ctx, userID, invitationID)
	if err != nil {
		return err
	}

	invitation.Status = model.StatusRejected
	if err := m.invitations.Update(ctx, invitation); err != nil {
		return err
	}

	m.refreshBoth(ctx, invitation.AdminID, userID)
	return nil
}

// UpdateRole amends the role on an invitation the admin sent. Allowed only
// while pending; once accepted the grant is fixed until removed.
func (m *InvitationManager) UpdateRole(ctx context.Context, adminID, invitationID uuid.UUID, role model.Role) error {
	if !model.InvitableRole(role) {
		return ErrInvalidRole
	}

	invitation, err := m.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}
	if invitation.AdminID != adminID {
		return ErrNotGrantor
	}
	if invitation.Status != model.StatusPending {
		return ErrNotPending
	}

	invitation.Role = role
	if err := m.invitations.Update(ctx, invitation); err != nil {
		return err
	}

	m.refreshBoth(ctx, adminID, invitation.InvitedID)
	return nil
}

// Remove hard-deletes an invitation the admin sent, at any status.
func (m *InvitationManager) Remove(ctx context.Context, adminID, invitationID uuid.UUID) error {
	invitation, err := m.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrInvitationNotFound
	}
	if invitation.AdminID != adminID {
		return ErrNotGrantor
	}

	if err := m.invitations.Delete(ctx, invitationID); err != nil {
		return err
	}

	m.refreshBoth(ctx, adminID, invitation.InvitedID)
	return nil
}

func (m *InvitationManager) granteeInvitation(ctx context.Context, userID, invitationID uuid.UUID) (*model.Invitation, error) {
	invitation, err := m.invitations.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}
	if invitation.InvitedID != userID {
		return nil, ErrNotGrantee
	}
	if invitation.Status != model.StatusPending {
		return nil, ErrNotPending
	}
	return invitation, nil
}

// refreshBoth recomputes access state for both parties. A refresh failure is
// not an operation failure: the mutation already committed and the snapshot
// will be rebuilt on next read.
func (m *InvitationManager) refreshBoth(ctx context.Context, adminID, invitedID uuid.UUID) {
	m.resolver.Invalidate(adminID)
	m.resolver.Invalidate(invitedID)
	m.resolver.Refresh(ctx, adminID)
	m.resolver.Refresh(ctx, invitedID)
}
