package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudai/owner-console/internal/domain/entity"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// MockServiceRepository is a testify mock for the ServiceRepository port
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	args := m.Called(ctx, id)
	if svc, ok := args.Get(0).(*entity.Service); ok {
		return svc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, svc *entity.Service) error {
	args := m.Called(ctx, svc)
	return args.Error(0)
}

func (m *MockServiceRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) List(ctx context.Context, f persistence.ServiceFilter) ([]*entity.Service, error) {
	args := m.Called(ctx, f)
	if rows, ok := args.Get(0).([]*entity.Service); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceRepository) ListCascadeCandidates(ctx context.Context, providerID string, status entity.ServiceStatus, demotedOnly bool, limit int) ([]*entity.Service, error) {
	args := m.Called(ctx, providerID, status, demotedOnly, limit)
	if rows, ok := args.Get(0).([]*entity.Service); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository is a testify mock for the UserRepository port
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	args := m.Called(ctx, uid)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*entity.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Merge(ctx context.Context, uid string, fields map[string]any) error {
	args := m.Called(ctx, uid, fields)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, p persistence.UserListParams) ([]*entity.User, error) {
	args := m.Called(ctx, p)
	if rows, ok := args.Get(0).([]*entity.User); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) NamesByUID(ctx context.Context, uids []string) (map[string]string, error) {
	args := m.Called(ctx, uids)
	if names, ok := args.Get(0).(map[string]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransactionRepository is a testify mock for the TransactionRepository port
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*entity.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, status entity.TransactionStatus, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, status, limit)
	if rows, ok := args.Get(0).([]*entity.Transaction); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

// MockChunkCommitter is a testify mock for the ChunkCommitter port
type MockChunkCommitter struct {
	mock.Mock
}

func (m *MockChunkCommitter) CommitChunk(ctx context.Context, muts []persistence.Mutation) error {
	args := m.Called(ctx, muts)
	return args.Error(0)
}

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.TransactionRepository)
}

// MockSettingsRepository is a testify mock for the SettingsRepository port
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetFeatures(ctx context.Context) (*entity.FeatureSettings, error) {
	args := m.Called(ctx)
	if f, ok := args.Get(0).(*entity.FeatureSettings); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) SaveFeatures(ctx context.Context, f *entity.FeatureSettings) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetHome(ctx context.Context) (*entity.HomeSettings, error) {
	args := m.Called(ctx)
	if h, ok := args.Get(0).(*entity.HomeSettings); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) MergeHome(ctx context.Context, fields map[string]any) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetStudentBank(ctx context.Context) (*entity.StudentBankSettings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*entity.StudentBankSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsRepository) MergeStudentBank(ctx context.Context, fields map[string]any) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

// MockServiceEventRepository is a testify mock for the ServiceEventRepository port
type MockServiceEventRepository struct {
	mock.Mock
}

func (m *MockServiceEventRepository) HasReassignEvent(ctx context.Context, serviceID, toOwnerID, idempotencyKey string) (bool, error) {
	args := m.Called(ctx, serviceID, toOwnerID, idempotencyKey)
	return args.Bool(0), args.Error(1)
}

// MockSaleItemRepository is a testify mock for the SaleItemRepository port
type MockSaleItemRepository struct {
	mock.Mock
}

func (m *MockSaleItemRepository) GetByID(ctx context.Context, id string) (*entity.SaleItem, error) {
	args := m.Called(ctx, id)
	if it, ok := args.Get(0).(*entity.SaleItem); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleItemRepository) List(ctx context.Context, status entity.SaleItemStatus, limit int) ([]*entity.SaleItem, error) {
	args := m.Called(ctx, status, limit)
	if rows, ok := args.Get(0).([]*entity.SaleItem); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleItemRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockSaleItemRepository) DistinctProviderIDs(ctx context.Context, status entity.SaleItemStatus, limit int) ([]string, error) {
	args := m.Called(ctx, status, limit)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleItemRepository) GetMany(ctx context.Context, ids []string) (map[string]*entity.SaleItem, error) {
	args := m.Called(ctx, ids)
	if items, ok := args.Get(0).(map[string]*entity.SaleItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}
