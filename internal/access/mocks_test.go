package access_test

import (
	"context"

	"oeeboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock user directory
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUsers) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

func (m *MockUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

// Mock invitation store
type MockInvitations struct {
	mock.Mock
}

func (m *MockInvitations) ListByAdmin(ctx context.Context, adminID uuid.UUID) ([]model.Invitation, error) {
	args := m.Called(ctx, adminID)
	invs := args.Get(0)
	if invs == nil {
		return nil, args.Error(1)
	}
	return invs.([]model.Invitation), args.Error(1)
}

func (m *MockInvitations) ListByInvited(ctx context.Context, invitedID uuid.UUID) ([]model.Invitation, error) {
	args := m.Called(ctx, invitedID)
	invs := args.Get(0)
	if invs == nil {
		return nil, args.Error(1)
	}
	return invs.([]model.Invitation), args.Error(1)
}

func (m *MockInvitations) Create(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitations) GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	args := m.Called(ctx, id)
	inv := args.Get(0)
	if inv == nil {
		return nil, args.Error(1)
	}
	return inv.(*model.Invitation), args.Error(1)
}

func (m *MockInvitations) GetByPair(ctx context.Context, adminID, invitedID uuid.UUID) (*model.Invitation, error) {
	args := m.Called(ctx, adminID, invitedID)
	inv := args.Get(0)
	if inv == nil {
		return nil, args.Error(1)
	}
	return inv.(*model.Invitation), args.Error(1)
}

func (m *MockInvitations) Update(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitations) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock viewing context store
type MockContexts struct {
	mock.Mock
}

func (m *MockContexts) Get(ctx context.Context, userID uuid.UUID) (*model.ViewingContext, error) {
	args := m.Called(ctx, userID)
	vc := args.Get(0)
	if vc == nil {
		return nil, args.Error(1)
	}
	return vc.(*model.ViewingContext), args.Error(1)
}

func (m *MockContexts) Upsert(ctx context.Context, userID, viewingAsID uuid.UUID) error {
	args := m.Called(ctx, userID, viewingAsID)
	return args.Error(0)
}
