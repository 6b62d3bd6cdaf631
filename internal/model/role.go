package model

// Role is the single closed set of roles shared by invitations and
// profile settings. Invitations may only carry viewer, operator or
// supervisor; admin is reserved for an account viewing its own dashboard.
type Role string

const (
	RoleViewer     Role = "viewer"     // read-only access
	RoleOperator   Role = "operator"   // may register production data
	RoleSupervisor Role = "supervisor" // operator plus machine management
	RoleAdmin      Role = "admin"      // account owner
)

// InvitableRole reports whether a role may be granted through an invitation.
func InvitableRole(r Role) bool {
	switch r {
	case RoleViewer, RoleOperator, RoleSupervisor:
		return true
	}
	return false
}

// InvitationStatus tracks the lifecycle of a dashboard access invitation.
type InvitationStatus string

const (
	StatusPending  InvitationStatus = "pending"
	StatusAccepted InvitationStatus = "accepted"
	StatusRejected InvitationStatus = "rejected"
)
