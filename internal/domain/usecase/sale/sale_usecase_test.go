package sale

import (
	"context"
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
)

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

type saleFixture struct {
	items *persistencemocks.MockSaleItemRepository
	users *persistencemocks.MockUserRepository
	uc    *SaleUseCase
}

func newSaleFixture() *saleFixture {
	f := &saleFixture{
		items: new(persistencemocks.MockSaleItemRepository),
		users: new(persistencemocks.MockUserRepository),
	}
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedNow).Maybe()
	f.uc = NewSaleUseCase(f.items, f.users, tp, logger.NewNoopLogger())
	return f
}

func TestSaleList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending with provider names", func(t *testing.T) {
		f := newSaleFixture()
		f.items.On("List", ctx, entity.SaleItemStatusPending, ListLimit).
			Return([]*entity.SaleItem{{ID: "i1", ProviderID: "p1"}}, nil)
		f.users.On("NamesByUID", ctx, []string{"p1"}).Return(map[string]string{"p1": "Omar"}, nil)

		rows, err := f.uc.List(ctx, "")

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Omar", rows[0].ProviderName)
	})

	t.Run("accepts the sold status", func(t *testing.T) {
		f := newSaleFixture()
		f.items.On("List", ctx, entity.SaleItemStatusSold, ListLimit).Return([]*entity.SaleItem{}, nil)

		_, err := f.uc.List(ctx, "sold")

		require.NoError(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newSaleFixture()
		_, err := f.uc.List(ctx, "expired")
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestSaleUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("approval stamps audit fields", func(t *testing.T) {
		f := newSaleFixture()
		var fields map[string]any
		f.items.On("Merge", ctx, "i1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Update(ctx, "mod-1", "i1", "approved")

		require.NoError(t, err)
		assert.Equal(t, fixedNow, fields["approved_at"])
		assert.Equal(t, "mod-1", fields["approved_by"])
	})

	t.Run("hiding clears audit fields", func(t *testing.T) {
		f := newSaleFixture()
		var fields map[string]any
		f.items.On("Merge", ctx, "i1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Update(ctx, "mod-1", "i1", "hidden")

		require.NoError(t, err)
		assert.Nil(t, fields["approved_at"])
	})
}

func TestProviderIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("distinct providers for a status", func(t *testing.T) {
		f := newSaleFixture()
		f.items.On("DistinctProviderIDs", ctx, entity.SaleItemStatusApproved, ListLimit).
			Return([]string{"p1", "p2"}, nil)

		refs, err := f.uc.ProviderIDs(ctx, "", nil, false)

		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Empty(t, refs[0].Name)
	})

	t.Run("owners of explicit items with names", func(t *testing.T) {
		f := newSaleFixture()
		f.items.On("GetMany", ctx, []string{"i1", "i2", "i3"}).Return(map[string]*entity.SaleItem{
			"i1": {ID: "i1", ProviderID: "p1"},
			"i2": {ID: "i2", ProviderID: "p1"},
		}, nil)
		f.users.On("NamesByUID", ctx, []string{"p1"}).Return(map[string]string{"p1": "Omar"}, nil)

		refs, err := f.uc.ProviderIDs(ctx, "", []string{"i1", "i2", "i3"}, true)

		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "p1", refs[0].UID)
		assert.Equal(t, "Omar", refs[0].Name)
	})
}
