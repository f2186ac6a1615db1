package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

func TestReassignOwner(t *testing.T) {
	ctx := context.Background()
	target := &entity.Account{UID: "new-owner", Email: "new@x.com"}

	t.Run("pairs each owner update with its audit record", func(t *testing.T) {
		f := newServiceFixture()
		f.directory.On("GetAccountByEmail", ctx, "new@x.com").Return(target, nil)
		f.services.On("GetByID", ctx, "s1").
			Return(&entity.Service{ID: "s1", ProviderID: "old", OwnerEmail: "old@x.com"}, nil)

		var staged []persistence.Mutation
		f.committer.On("CommitChunk", ctx, mock.Anything).Run(func(args mock.Arguments) {
			staged = append(staged, args.Get(1).([]persistence.Mutation)...)
		}).Return(nil)

		res, err := f.uc.ReassignOwner(ctx, "admin-1", "admin@x.com", ReassignInput{
			IDs:         []string{"s1"},
			TargetEmail: " New@x.com ",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, "new-owner", res.TargetUID)
		require.Len(t, staged, 2)

		update := staged[0]
		assert.Equal(t, persistence.CollectionServices, update.Collection)
		assert.Equal(t, "new-owner", update.Fields["provider_id"])
		assert.Equal(t, "new@x.com", update.Fields["owner_email"])

		event := staged[1]
		assert.Equal(t, persistence.CollectionServiceEvents, event.Collection)
		assert.Equal(t, persistence.OpInsert, event.Op)
		assert.Equal(t, entity.EventReassignOwner, event.Fields["type"])
		assert.Equal(t, "s1", event.Fields["service_id"])
		assert.Equal(t, "old", event.Fields["from_owner_id"])
		assert.Equal(t, "new-owner", event.Fields["to_owner_id"])
	})

	t.Run("classifies missing, owned and duplicate services", func(t *testing.T) {
		f := newServiceFixture()
		f.directory.On("GetAccountByEmail", ctx, "new@x.com").Return(target, nil)
		f.services.On("GetByID", ctx, "gone").Return(nil, errs.ErrNotFound)
		f.services.On("GetByID", ctx, "mine").Return(&entity.Service{ID: "mine", ProviderID: "new-owner"}, nil)
		f.services.On("GetByID", ctx, "done").Return(&entity.Service{ID: "done", ProviderID: "old"}, nil)
		f.services.On("GetByID", ctx, "fresh").Return(&entity.Service{ID: "fresh", ProviderID: "old"}, nil)
		f.events.On("HasReassignEvent", ctx, "done", "new-owner", "key-1").Return(true, nil)
		f.events.On("HasReassignEvent", ctx, "fresh", "new-owner", "key-1").Return(false, nil)
		f.committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		res, err := f.uc.ReassignOwner(ctx, "admin-1", "", ReassignInput{
			IDs:            []string{"gone", "mine", "done", "fresh"},
			TargetEmail:    "new@x.com",
			IdempotencyKey: "key-1",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 1, res.NotFound)
		assert.Equal(t, 2, res.Skipped)
		require.Len(t, res.Results, 4)
		assert.Equal(t, "not_found", res.Results[0].Result)
		assert.Equal(t, "already_owner", res.Results[1].Result)
		assert.Equal(t, "duplicate", res.Results[2].Result)
		assert.Equal(t, "updated", res.Results[3].Result)
	})

	t.Run("assign to self uses the caller's email", func(t *testing.T) {
		f := newServiceFixture()
		me := &entity.Account{UID: "admin-1", Email: "admin@x.com"}
		f.directory.On("GetAccountByEmail", ctx, "admin@x.com").Return(me, nil)
		f.services.On("GetByID", ctx, "s1").Return(&entity.Service{ID: "s1", ProviderID: "old"}, nil)
		f.committer.On("CommitChunk", ctx, mock.Anything).Return(nil)

		res, err := f.uc.ReassignOwner(ctx, "admin-1", "Admin@x.com", ReassignInput{
			IDs:          []string{"s1"},
			AssignToSelf: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "admin-1", res.TargetUID)
	})

	t.Run("disabled target is rejected", func(t *testing.T) {
		f := newServiceFixture()
		f.directory.On("GetAccountByEmail", ctx, "off@x.com").
			Return(&entity.Account{UID: "off", Email: "off@x.com", Disabled: true}, nil)

		_, err := f.uc.ReassignOwner(ctx, "admin-1", "", ReassignInput{
			IDs:         []string{"s1"},
			TargetEmail: "off@x.com",
		})

		assert.ErrorIs(t, err, errs.ErrAccountDisabled)
	})

	t.Run("requires ids and a target", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.uc.ReassignOwner(ctx, "admin-1", "", ReassignInput{TargetEmail: "x@x.com"})
		assert.ErrorIs(t, err, errs.ErrMissingID)

		_, err = f.uc.ReassignOwner(ctx, "admin-1", "", ReassignInput{IDs: []string{"s1"}})
		assert.ErrorIs(t, err, errs.ErrMissingField)
	})
}
