package slot

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	coremocks "github.com/cloudai/owner-console/mocks/port/core"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
)

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newSlotUseCase(repo *persistencemocks.MockSlotRequestRepository) *SlotUseCase {
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedNow).Maybe()
	return NewSlotUseCase(repo, tp, logger.NewNoopLogger())
}

func TestSlotList(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filters through with a sane limit", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		paid := true
		var got persistence.SlotRequestFilter
		repo.On("List", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(persistence.SlotRequestFilter)
		}).Return([]*entity.SlotRequest{}, nil)

		_, err := newSlotUseCase(repo).List(ctx, persistence.SlotRequestFilter{UID: "u1", Paid: &paid})

		require.NoError(t, err)
		assert.Equal(t, "u1", got.UID)
		assert.Equal(t, ListLimit, got.Limit)
		require.NotNil(t, got.Paid)
		assert.True(t, *got.Paid)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		_, err := newSlotUseCase(repo).List(ctx, persistence.SlotRequestFilter{Status: "waiting"})
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestSlotUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("approval stamps audit fields", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		var fields map[string]any
		repo.On("Merge", ctx, "r1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		status := "approved"
		paid := true
		err := newSlotUseCase(repo).Update(ctx, "admin-1", UpdateInput{ID: "r1", Status: &status, Paid: &paid})

		require.NoError(t, err)
		assert.Equal(t, "approved", fields["status"])
		assert.Equal(t, fixedNow, fields["approved_at"])
		assert.Equal(t, "admin-1", fields["approved_by"])
		assert.Equal(t, true, fields["paid"])
	})

	t.Run("rejection clears audit fields", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		var fields map[string]any
		repo.On("Merge", ctx, "r1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		status := "rejected"
		err := newSlotUseCase(repo).Update(ctx, "admin-1", UpdateInput{ID: "r1", Status: &status})

		require.NoError(t, err)
		assert.Nil(t, fields["approved_at"])
		assert.Nil(t, fields["approved_by"])
	})

	t.Run("admin notes are capped", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		var fields map[string]any
		repo.On("Merge", ctx, "r1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		long := strings.Repeat("x", MaxAdminNotes+500)
		err := newSlotUseCase(repo).Update(ctx, "admin-1", UpdateInput{ID: "r1", AdminNotes: &long})

		require.NoError(t, err)
		assert.Len(t, fields["admin_notes"], MaxAdminNotes)
	})

	t.Run("an empty patch is rejected", func(t *testing.T) {
		repo := new(persistencemocks.MockSlotRequestRepository)
		err := newSlotUseCase(repo).Update(ctx, "admin-1", UpdateInput{ID: "r1"})
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})
}
