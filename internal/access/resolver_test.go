package access_test

import (
	"context"
	"testing"

	"oeeboard/internal/access"
	"oeeboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newResolver() (*access.Resolver, *MockUsers, *MockInvitations, *MockContexts) {
	users := new(MockUsers)
	invitations := new(MockInvitations)
	contexts := new(MockContexts)
	return access.NewResolver(users, invitations, contexts), users, invitations, contexts
}

func TestResolver_NoInvitations_SelfOnly(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, snap.Dashboards, 1)
	assert.Equal(t, self.ID, snap.Dashboards[0].ID)
	assert.Equal(t, self.ID, snap.ViewingAs)
	assert.Equal(t, model.RoleAdmin, snap.EffectiveRole(self.ID))
}

func TestResolver_AcceptedInvitation_AddsDashboardAndRole(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New(), Name: "Bob"}
	admin := model.User{ID: uuid.New(), Name: "Alice"}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{
		{AdminID: admin.ID, InvitedID: self.ID, Role: model.RoleSupervisor, Status: model.StatusAccepted},
	}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	users.On("GetByIDs", mock.Anything, []uuid.UUID{admin.ID}).Return([]model.User{admin}, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, snap.Dashboards, 2)
	assert.Equal(t, model.RoleSupervisor, snap.EffectiveRole(admin.ID))
	assert.Equal(t, model.RoleAdmin, snap.EffectiveRole(self.ID))
}

func TestResolver_PendingInvitation_NoDashboard(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New()}
	admin := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{
		{AdminID: admin.ID, InvitedID: self.ID, Role: model.RoleOperator, Status: model.StatusPending},
	}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, snap.Dashboards, 1)
	// Fail-safe default for a dashboard without an accepted invitation
	assert.Equal(t, model.RoleViewer, snap.EffectiveRole(admin.ID))
}

func TestResolver_MissingAdminProfile_SilentlyOmitted(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New()}
	adminID := uuid.New()

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{
		{AdminID: adminID, InvitedID: self.ID, Role: model.RoleViewer, Status: model.StatusAccepted},
	}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	// Profile lookup returns nothing for the admin
	users.On("GetByIDs", mock.Anything, []uuid.UUID{adminID}).Return([]model.User{}, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, snap.Dashboards, 1)
	assert.False(t, snap.CanView(adminID))
}

func TestResolver_CapabilitiesFollowViewingContext(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New()}
	admin := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{
		{AdminID: admin.ID, InvitedID: self.ID, Role: model.RoleSupervisor, Status: model.StatusAccepted},
	}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	users.On("GetByIDs", mock.Anything, []uuid.UUID{admin.ID}).Return([]model.User{admin}, nil)
	// Persisted context points at the admin's dashboard
	contexts.On("Get", mock.Anything, self.ID).Return(&model.ViewingContext{
		UserID:      self.ID,
		ViewingAsID: admin.ID,
	}, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert: role is supervisor but no capability escalates with it
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, snap.ViewingAs)
	assert.Equal(t, model.RoleSupervisor, snap.EffectiveRole(admin.ID))
	caps := snap.Capabilities()
	assert.False(t, caps.CanEditData)
	assert.False(t, caps.CanDeleteAccount)
	assert.False(t, caps.CanManageUsers)
}

func TestResolver_StaleContextFallsBackToSelf(t *testing.T) {
	// Arrange: persisted context points at a dashboard the user lost access to
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New()}
	formerAdminID := uuid.New()

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(&model.ViewingContext{
		UserID:      self.ID,
		ViewingAsID: formerAdminID,
	}, nil)

	// Act
	snap, err := resolver.Snapshot(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, self.ID, snap.ViewingAs)
	assert.True(t, snap.Capabilities().CanEditData)
}

func TestResolver_SnapshotIsCachedUntilInvalidated(t *testing.T) {
	// Arrange
	resolver, users, invitations, contexts := newResolver()
	self := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil).Twice()
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil).Twice()
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil).Twice()
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil).Twice()

	// Act: two reads hit the cache, invalidation forces a recompute
	_, err := resolver.Snapshot(context.Background(), self.ID)
	assert.NoError(t, err)
	_, err = resolver.Snapshot(context.Background(), self.ID)
	assert.NoError(t, err)

	resolver.Invalidate(self.ID)
	_, err = resolver.Snapshot(context.Background(), self.ID)
	assert.NoError(t, err)

	// Assert: the store was read exactly twice
	invitations.AssertExpectations(t)
	users.AssertExpectations(t)
	contexts.AssertExpectations(t)
}
