package access

import "errors"

// Errors returned by the invitation lifecycle and dashboard switching.
var (
	// ErrUserNotFound is returned when an email lookup matches no account
	ErrUserNotFound = errors.New("user not found")

	// ErrSelfInvite is returned when an admin invites their own account
	ErrSelfInvite = errors.New("cannot invite yourself")

	// ErrInvitePending is returned when a pending invitation already exists
	ErrInvitePending = errors.New("invitation already pending for this user")

	// ErrAlreadyHasAccess is returned when an accepted invitation already exists
	ErrAlreadyHasAccess = errors.New("user already has access to this dashboard")

	// ErrInvitationNotFound is returned when an invitation id matches no row
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrNotGrantee is returned when someone other than the invited user
	// tries to accept or reject
	ErrNotGrantee = errors.New("only the invited user can act on this invitation")

	// ErrNotGrantor is returned when someone other than the inviting admin
	// tries to amend or remove
	ErrNotGrantor = errors.New("only the inviting admin can modify this invitation")

	// ErrNotPending is returned on a transition or role change targeting an
	// invitation that already left the pending state
	ErrNotPending = errors.New("invitation is no longer pending")

	// ErrInvalidRole is returned for roles outside viewer/operator/supervisor
	ErrInvalidRole = errors.New("role must be viewer, operator or supervisor")

	// ErrDashboardUnavailable is returned when switching to a dashboard the
	// user has no accepted invitation for
	ErrDashboardUnavailable = errors.New("no access to this dashboard")
)
