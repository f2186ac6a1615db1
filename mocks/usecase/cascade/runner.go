package cascade

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// MockRunner is a testify mock for the cascade Runner
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Demote(ctx context.Context, scope string) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockRunner) Reapprove(ctx context.Context, scope, actorUID string) (int, error) {
	args := m.Called(ctx, scope, actorUID)
	return args.Int(0), args.Error(1)
}

func (m *MockRunner) Apply(ctx context.Context, edge cascade.Edge, scope, actorUID string) (int, error) {
	args := m.Called(ctx, edge, scope, actorUID)
	return args.Int(0), args.Error(1)
}
