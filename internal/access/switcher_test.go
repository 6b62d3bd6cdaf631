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

func newSwitcher() (*access.Switcher, *access.Resolver, *MockUsers, *MockInvitations, *MockContexts) {
	users := new(MockUsers)
	invitations := new(MockInvitations)
	contexts := new(MockContexts)
	resolver := access.NewResolver(users, invitations, contexts)
	return access.NewSwitcher(contexts, resolver), resolver, users, invitations, contexts
}

func TestSwitcher_CurrentDefaultsToSelf(t *testing.T) {
	// Arrange
	switcher, _, users, invitations, contexts := newSwitcher()
	self := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	target, err := switcher.Current(context.Background(), self.ID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, self.ID, target)
}

func TestSwitcher_SwitchPersistsAndInvalidates(t *testing.T) {
	// Arrange: user has an accepted invitation from admin
	switcher, resolver, users, invitations, contexts := newSwitcher()
	self := model.User{ID: uuid.New()}
	admin := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{
		{AdminID: admin.ID, InvitedID: self.ID, Role: model.RoleOperator, Status: model.StatusAccepted},
	}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	users.On("GetByIDs", mock.Anything, []uuid.UUID{admin.ID}).Return([]model.User{admin}, nil)

	// Context reads: self before the switch, admin afterwards
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil).Once()
	contexts.On("Upsert", mock.Anything, self.ID, admin.ID).Return(nil)
	contexts.On("Get", mock.Anything, self.ID).Return(&model.ViewingContext{
		UserID:      self.ID,
		ViewingAsID: admin.ID,
	}, nil)

	// Act
	before, err := resolver.Snapshot(context.Background(), self.ID)
	assert.NoError(t, err)
	assert.True(t, before.Capabilities().CanEditData)

	err = switcher.Switch(context.Background(), self.ID, admin.ID)
	assert.NoError(t, err)

	// Assert: the snapshot was rebuilt from scratch for the new target
	after, err := resolver.Snapshot(context.Background(), self.ID)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, after.ViewingAs)
	assert.False(t, after.Capabilities().CanEditData)
	contexts.AssertExpectations(t)
}

func TestSwitcher_SwitchToUnavailableDashboard(t *testing.T) {
	// Arrange: no accepted invitations at all
	switcher, _, users, invitations, contexts := newSwitcher()
	self := model.User{ID: uuid.New()}
	stranger := uuid.New()

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)

	// Act
	err := switcher.Switch(context.Background(), self.ID, stranger)

	// Assert
	assert.ErrorIs(t, err, access.ErrDashboardUnavailable)
	contexts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSwitcher_SwitchBackToSelf(t *testing.T) {
	switcher, _, users, invitations, contexts := newSwitcher()
	self := model.User{ID: uuid.New()}

	invitations.On("ListByInvited", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	invitations.On("ListByAdmin", mock.Anything, self.ID).Return([]model.Invitation{}, nil)
	users.On("GetByID", mock.Anything, self.ID).Return(&self, nil)
	contexts.On("Get", mock.Anything, self.ID).Return(nil, nil)
	contexts.On("Upsert", mock.Anything, self.ID, self.ID).Return(nil)

	err := switcher.Switch(context.Background(), self.ID, self.ID)

	assert.NoError(t, err)
	contexts.AssertExpectations(t)
}
