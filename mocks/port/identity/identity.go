package identity

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudai/owner-console/internal/domain/entity"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
)

// MockTokenVerifier is a testify mock for the TokenVerifier port
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (*identityport.Identity, error) {
	args := m.Called(ctx, token)
	if id, ok := args.Get(0).(*identityport.Identity); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDirectory is a testify mock for the Directory port
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) CreateAccount(ctx context.Context, email, password string, disabled bool) (*entity.Account, error) {
	args := m.Called(ctx, email, password, disabled)
	if acc, ok := args.Get(0).(*entity.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDirectory) GetAccount(ctx context.Context, uid string) (*entity.Account, error) {
	args := m.Called(ctx, uid)
	if acc, ok := args.Get(0).(*entity.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDirectory) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if acc, ok := args.Get(0).(*entity.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDirectory) SetEmailVerified(ctx context.Context, uid string, verified bool) error {
	args := m.Called(ctx, uid, verified)
	return args.Error(0)
}

func (m *MockDirectory) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	args := m.Called(ctx, uid, disabled)
	return args.Error(0)
}

func (m *MockDirectory) DeleteAccount(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockDirectory) VerificationLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
