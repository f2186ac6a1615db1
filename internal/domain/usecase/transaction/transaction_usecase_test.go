package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	coremocks "github.com/cloudai/owner-console/mocks/port/core"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
	cascademocks "github.com/cloudai/owner-console/mocks/usecase/cascade"
)

type txFixture struct {
	transactions *persistencemocks.MockTransactionRepository
	users        *persistencemocks.MockUserRepository
	uow          *persistencemocks.MockUnitOfWork
	txRepo       *persistencemocks.MockTransactionRepository
	userRepo     *persistencemocks.MockUserRepository
	runner       *cascademocks.MockRunner
	uc           *TransactionUseCase
}

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newTxFixture() *txFixture {
	f := &txFixture{
		transactions: new(persistencemocks.MockTransactionRepository),
		users:        new(persistencemocks.MockUserRepository),
		uow:          new(persistencemocks.MockUnitOfWork),
		txRepo:       new(persistencemocks.MockTransactionRepository),
		userRepo:     new(persistencemocks.MockUserRepository),
		runner:       new(cascademocks.MockRunner),
	}
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedNow).Maybe()
	f.uc = NewTransactionUseCase(f.transactions, f.users, f.uow, f.runner, tp, logger.NewNoopLogger())
	return f
}

func TestTransactionList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending and resolves payer names", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("List", ctx, entity.TransactionStatusPending, ListLimit).
			Return([]*entity.Transaction{{ID: "t1", UID: "u1"}}, nil)
		f.users.On("NamesByUID", ctx, []string{"u1"}).Return(map[string]string{"u1": "Sara"}, nil)

		rows, err := f.uc.List(ctx, "", 0)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Sara", rows[0].UserName)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newTxFixture()
		_, err := f.uc.List(ctx, "refunded", 0)
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestTransactionConfirm(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(context.Background(), struct{ k string }{"tx"}, true)
	pending := &entity.Transaction{ID: "t1", UID: "u1", PlanID: "pro", Status: entity.TransactionStatusPending}

	t.Run("commits payment and profile together then releases services", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(&entity.User{UID: "u1"}, nil)

		var txFields, userFields map[string]any
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Run(func(args mock.Arguments) {
			txFields = args.Get(2).(map[string]any)
		}).Return(nil)
		f.userRepo.On("Merge", txCtx, "u1", mock.Anything).Run(func(args mock.Arguments) {
			userFields = args.Get(2).(map[string]any)
		}).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.runner.On("Reapprove", ctx, "u1", "admin-1").Return(2, nil)

		res, err := f.uc.Confirm(ctx, "admin-1", "t1")

		require.NoError(t, err)
		assert.False(t, res.Already)
		assert.Equal(t, 2, res.UpdatedServices)
		assert.Equal(t, "success", txFields["status"])
		assert.Equal(t, fixedNow, txFields["paid_at"])
		assert.Equal(t, "admin-1", txFields["approved_by"])
		assert.Equal(t, "pro", userFields["plan"])
		gate := userFields["pricing_gate"].(*entity.PricingGate)
		assert.Nil(t, gate.Mode)
	})

	t.Run("clears the gate mode but keeps showAt and enforceAfterMonths", func(t *testing.T) {
		f := newTxFixture()
		mode := "force_hide"
		showAt := fixedNow.Add(72 * time.Hour)
		months := 6
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(&entity.User{
			UID: "u1",
			PricingGate: &entity.PricingGate{
				Mode:               &mode,
				ShowAt:             &showAt,
				EnforceAfterMonths: &months,
			},
		}, nil)

		var userFields map[string]any
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Return(nil)
		f.userRepo.On("Merge", txCtx, "u1", mock.Anything).Run(func(args mock.Arguments) {
			userFields = args.Get(2).(map[string]any)
		}).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.runner.On("Reapprove", ctx, "u1", "admin-1").Return(0, nil)

		_, err := f.uc.Confirm(ctx, "admin-1", "t1")

		require.NoError(t, err)
		gate := userFields["pricing_gate"].(*entity.PricingGate)
		assert.Nil(t, gate.Mode)
		require.NotNil(t, gate.ShowAt)
		assert.Equal(t, showAt, *gate.ShowAt)
		require.NotNil(t, gate.EnforceAfterMonths)
		assert.Equal(t, 6, *gate.EnforceAfterMonths)
	})

	t.Run("missing profile still activates the plan", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(nil, errs.ErrUserNotFound)

		var userFields map[string]any
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Return(nil)
		f.userRepo.On("Merge", txCtx, "u1", mock.Anything).Run(func(args mock.Arguments) {
			userFields = args.Get(2).(map[string]any)
		}).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.runner.On("Reapprove", ctx, "u1", "admin-1").Return(0, nil)

		_, err := f.uc.Confirm(ctx, "admin-1", "t1")

		require.NoError(t, err)
		assert.Equal(t, "pro", userFields["plan"])
		gate := userFields["pricing_gate"].(*entity.PricingGate)
		assert.Nil(t, gate.Mode)
	})

	t.Run("gate read failure rolls back the payment", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Return(nil)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(nil, errs.ErrDatabaseConnection)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.uc.Confirm(ctx, "admin-1", "t1")

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.uow.AssertCalled(t, "Rollback", txCtx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("already confirmed is a no-op", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "t1").
			Return(&entity.Transaction{ID: "t1", Status: entity.TransactionStatusSuccess}, nil)

		res, err := f.uc.Confirm(ctx, "admin-1", "t1")

		require.NoError(t, err)
		assert.True(t, res.Already)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("profile failure rolls back the payment", func(t *testing.T) {
		f := newTxFixture()
		boom := errors.New("write conflict")
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Return(nil)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(&entity.User{UID: "u1"}, nil)
		f.userRepo.On("Merge", txCtx, "u1", mock.Anything).Return(boom)
		f.uow.On("Rollback", txCtx).Return(nil)

		_, err := f.uc.Confirm(ctx, "admin-1", "t1")

		assert.ErrorIs(t, err, boom)
		f.uow.AssertCalled(t, "Rollback", txCtx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("cascade failure does not unconfirm the payment", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "t1").Return(pending, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetTransactionRepository", txCtx).Return(f.txRepo)
		f.uow.On("GetUserRepository", txCtx).Return(f.userRepo)
		f.txRepo.On("Merge", txCtx, "t1", mock.Anything).Return(nil)
		f.userRepo.On("GetByUID", txCtx, "u1").Return(&entity.User{UID: "u1"}, nil)
		f.userRepo.On("Merge", txCtx, "u1", mock.Anything).Return(nil)
		f.uow.On("Commit", txCtx).Return(nil)
		f.runner.On("Reapprove", ctx, "u1", "admin-1").Return(0, errors.New("sweep failed"))

		res, err := f.uc.Confirm(ctx, "admin-1", "t1")

		require.NoError(t, err)
		assert.Equal(t, 0, res.UpdatedServices)
	})

	t.Run("unknown transaction propagates not found", func(t *testing.T) {
		f := newTxFixture()
		f.transactions.On("GetByID", ctx, "ghost").Return(nil, errs.ErrNotFound)

		_, err := f.uc.Confirm(ctx, "admin-1", "ghost")

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
