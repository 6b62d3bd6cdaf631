package access

import (
	"context"
	"sync"

	"oeeboard/internal/model"

	"github.com/google/uuid"
)

// UserReader is the slice of the user repository the resolver needs.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

// InvitationReader lists invitations from either side of the grant.
type InvitationReader interface {
	ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Invitation, error)
	ListByInvited(ctx context.Context, invitedID uuid.UUID) ([]model.Invitation, error)
}

// ContextReader reads the persisted viewing context.
type ContextReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.ViewingContext, error)
}

// Capabilities are the derived permission flags for the current viewing
// context. All three are true exactly when the account views its own
// dashboard; role strings never escalate them.
type Capabilities struct {
	CanEditData      bool `json:"can_edit_data"`
	CanDeleteAccount bool `json:"can_delete_account"`
	CanManageUsers   bool `json:"can_manage_users"`
}

// Snapshot is the resolved access state for one account: both invitation
// directions with counterpart profiles attached, the dashboards the account
// may view, and the dashboard it is currently viewing.
type Snapshot struct {
	UserID     uuid.UUID
	ViewingAs  uuid.UUID
	Received   []model.Invitation
	Sent       []model.Invitation
	Dashboards []model.User
}

// EffectiveRole resolves the role the account holds on a target dashboard.
// Own dashboard is always admin; otherwise the role from the accepted
// invitation sent by that admin, defaulting to viewer when none matches.
func (s *Snapshot) EffectiveRole(target uuid.UUID) model.Role {
	if target == s.UserID {
		return model.RoleAdmin
	}
	for _, inv := range s.Received {
		if inv.AdminID == target && inv.Status == model.StatusAccepted {
			return inv.Role
		}
	}
	return model.RoleViewer
}

// Capabilities derives the permission flags from the viewing context alone.
func (s *Snapshot) Capabilities() Capabilities {
	self := s.ViewingAs == s.UserID
	return Capabilities{
		CanEditData:      self,
		CanDeleteAccount: self,
		CanManageUsers:   self,
	}
}

// CanView reports whether the account may view the target dashboard.
func (s *Snapshot) CanView(target uuid.UUID) bool {
	for _, d := range s.Dashboards {
		if d.ID == target {
			return true
		}
	}
	return false
}

// Resolver computes and caches access snapshots per account. Refreshes for
// the same account are serialized so a superseding refresh cannot be
// overwritten by a stale one; different accounts never contend.
type Resolver struct {
	users       UserReader
	invitations InvitationReader
	contexts    ContextReader

	mu       sync.Mutex
	cache    map[uuid.UUID]*Snapshot
	inflight map[uuid.UUID]*sync.Mutex
}

func NewResolver(users UserReader, invitations InvitationReader, contexts ContextReader) *Resolver {
	return &Resolver{
		users:       users,
		invitations: invitations,
		contexts:    contexts,
		cache:       make(map[uuid.UUID]*Snapshot),
		inflight:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// Snapshot returns the cached access state for a user, computing it first
// if no valid snapshot exists.
func (r *Resolver) Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	r.mu.Lock()
	snap, ok := r.cache[userID]
	r.mu.Unlock()
	if ok {
		return snap, nil
	}
	return r.Refresh(ctx, userID)
}

// Refresh recomputes the snapshot for a user from the store and replaces the
// cached one.
func (r *Resolver) Refresh(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	snap, err := r.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[userID] = snap
	r.mu.Unlock()
	return snap, nil
}

// Invalidate drops the cached snapshot for a user. The next Snapshot call
// recomputes everything; no derived state survives a dashboard switch.
func (r *Resolver) Invalidate(userID uuid.UUID) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

func (r *Resolver) userLock(userID uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.inflight[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.inflight[userID] = lock
	}
	return lock
}

func (r *Resolver) resolve(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	received, err := r.invitations.ListByInvited(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := r.invitations.ListByAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		UserID:    userID,
		ViewingAs: userID,
		Received:  received,
		Sent:      sent,
	}

	// Self profile always heads the dashboard list. If the lookup misses the
	// list degrades to the admins alone rather than erroring.
	if self, err := r.users.GetByID(ctx, userID); err != nil {
		return nil, err
	} else if self != nil {
		snap.Dashboards = append(snap.Dashboards, *self)
	}

	var adminIDs []uuid.UUID
	for _, inv := range received {
		if inv.Status == model.StatusAccepted {
			adminIDs = append(adminIDs, inv.AdminID)
		}
	}
	if len(adminIDs) > 0 {
		admins, err := r.users.GetByIDs(ctx, adminIDs)
		if err != nil {
			return nil, err
		}
		// Profiles missing from the store are silently omitted.
		snap.Dashboards = append(snap.Dashboards, admins...)
	}

	vc, err := r.contexts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vc != nil && snap.CanView(vc.ViewingAsID) {
		snap.ViewingAs = vc.ViewingAsID
	}

	return snap, nil
}
