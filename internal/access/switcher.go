package access

import (
	"context"

	"github.com/google/uuid"
)

// ContextStore persists the viewing context.
type ContextStore interface {
	ContextReader
	Upsert(ctx context.Context, userID, viewingAsID uuid.UUID) error
}

// Switcher changes which dashboard an account is viewing. A switch is a
// full invalidation: every cached snapshot and any metrics derived from the
// previous target must be recomputed on next read.
type Switcher struct {
	contexts ContextStore
	resolver *Resolver
}

func NewSwitcher(contexts ContextStore, resolver *Resolver) *Switcher {
	return &Switcher{contexts: contexts, resolver: resolver}
}

// Current returns the identity whose dashboard the user is viewing,
// defaulting to the user itself. A persisted target the user can no longer
// view (e.g. the grant was removed) also falls back to self.
func (s *Switcher) Current(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	snap, err := s.resolver.Snapshot(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	return snap.ViewingAs, nil
}

// Switch points the user's viewing context at target and drops all derived
// state. Target must be self or a dashboard from an accepted invitation.
func (s *Switcher) Switch(ctx context.Context, userID, target uuid.UUID) error {
	snap, err := s.resolver.Snapshot(ctx, userID)
	if err != nil {
		return err
	}
	if !snap.CanView(target) {
		return ErrDashboardUnavailable
	}

	if err := s.contexts.Upsert(ctx, userID, target); err != nil {
		return err
	}

	s.resolver.Invalidate(userID)
	_, err = s.resolver.Refresh(ctx, userID)
	return err
}
