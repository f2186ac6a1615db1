package storage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a testify mock for the ObjectStore port
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
