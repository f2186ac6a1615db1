package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudai/owner-console/internal/domain/entity"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// MockAdRepository is a testify mock for the AdRepository port
type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) List(ctx context.Context, limit int) ([]*entity.Ad, error) {
	args := m.Called(ctx, limit)
	if rows, ok := args.Get(0).([]*entity.Ad); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	args := m.Called(ctx, ad)
	return args.Error(0)
}

func (m *MockAdRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockAdRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResourceRepository is a testify mock for the ResourceRepository port
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id string) (*entity.StudentResource, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*entity.StudentResource); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) List(ctx context.Context, f persistence.ResourceFilter) ([]*entity.StudentResource, error) {
	args := m.Called(ctx, f)
	if rows, ok := args.Get(0).([]*entity.StudentResource); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSlotRequestRepository is a testify mock for the SlotRequestRepository port
type MockSlotRequestRepository struct {
	mock.Mock
}

func (m *MockSlotRequestRepository) List(ctx context.Context, f persistence.SlotRequestFilter) ([]*entity.SlotRequest, error) {
	args := m.Called(ctx, f)
	if rows, ok := args.Get(0).([]*entity.SlotRequest); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSlotRequestRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

// MockDeletionRequestRepository is a testify mock for the DeletionRequestRepository port
type MockDeletionRequestRepository struct {
	mock.Mock
}

func (m *MockDeletionRequestRepository) GetByID(ctx context.Context, id string) (*entity.DeletionRequest, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*entity.DeletionRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeletionRequestRepository) List(ctx context.Context, f persistence.DeletionRequestFilter) ([]*entity.DeletionRequest, error) {
	args := m.Called(ctx, f)
	if rows, ok := args.Get(0).([]*entity.DeletionRequest); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeletionRequestRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}
