package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	coremocks "github.com/cloudai/owner-console/mocks/port/core"
	identitymocks "github.com/cloudai/owner-console/mocks/port/identity"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
)

type serviceFixture struct {
	services  *persistencemocks.MockServiceRepository
	users     *persistencemocks.MockUserRepository
	events    *persistencemocks.MockServiceEventRepository
	directory *identitymocks.MockDirectory
	committer *persistencemocks.MockChunkCommitter
	uc        *ServiceUseCase
}

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		services:  new(persistencemocks.MockServiceRepository),
		users:     new(persistencemocks.MockUserRepository),
		events:    new(persistencemocks.MockServiceEventRepository),
		directory: new(identitymocks.MockDirectory),
		committer: new(persistencemocks.MockChunkCommitter),
	}
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedNow).Maybe()
	writer := cascade.NewBatchWriter(f.committer, cascade.DefaultBatchLimit, logger.NewNoopLogger())
	f.uc = NewServiceUseCase(f.services, f.users, f.events, f.directory, writer, tp, logger.NewNoopLogger())
	return f
}

func TestServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending and resolves names", func(t *testing.T) {
		f := newServiceFixture()
		f.services.On("List", ctx, persistence.ServiceFilter{Status: "pending", Limit: ModerationListLimit}).
			Return([]*entity.Service{
				{ID: "s1", ProviderID: "p1"},
				{ID: "s2", ProviderID: "p1"},
			}, nil)
		f.users.On("NamesByUID", ctx, []string{"p1"}).Return(map[string]string{"p1": "Ali"}, nil)

		rows, err := f.uc.List(ctx, "")

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Ali", rows[0].ProviderName)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.uc.List(ctx, "archived")
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("approve stamps audit fields", func(t *testing.T) {
		f := newServiceFixture()
		var fields map[string]any
		f.services.On("Merge", ctx, "s1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Update(ctx, "mod-1", "s1", "approved")

		require.NoError(t, err)
		assert.Equal(t, "approved", fields["status"])
		assert.Equal(t, fixedNow, fields["approved_at"])
		assert.Equal(t, "mod-1", fields["approved_by"])
		// the lock marker is not part of manual moderation
		_, touched := fields["demoted_for_lock"]
		assert.False(t, touched)
	})

	t.Run("reject clears audit fields", func(t *testing.T) {
		f := newServiceFixture()
		var fields map[string]any
		f.services.On("Merge", ctx, "s1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Update(ctx, "mod-1", "s1", "rejected")

		require.NoError(t, err)
		assert.Nil(t, fields["approved_at"])
		assert.Nil(t, fields["approved_by"])
	})

	t.Run("requires id and valid status", func(t *testing.T) {
		f := newServiceFixture()
		assert.ErrorIs(t, f.uc.Update(ctx, "mod-1", "", "approved"), errs.ErrMissingID)
		assert.ErrorIs(t, f.uc.Update(ctx, "mod-1", "s1", "bogus"), errs.ErrInvalidStatus)
	})
}

func TestAdminList(t *testing.T) {
	ctx := context.Background()

	t.Run("email filter resolves the provider first", func(t *testing.T) {
		f := newServiceFixture()
		f.users.On("GetByEmail", ctx, "p@x.com").Return(&entity.User{UID: "p1"}, nil)
		f.services.On("List", ctx, persistence.ServiceFilter{ProviderID: "p1", Limit: AdminListLimit}).
			Return([]*entity.Service{{ID: "s1", ProviderID: "p1"}}, nil)
		f.users.On("NamesByUID", ctx, []string{"p1"}).Return(map[string]string{}, nil)

		rows, err := f.uc.AdminList(ctx, AdminListParams{Email: " P@x.com "})

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("unknown email yields an empty page", func(t *testing.T) {
		f := newServiceFixture()
		f.users.On("GetByEmail", ctx, "ghost@x.com").Return(nil, errs.ErrUserNotFound)

		rows, err := f.uc.AdminList(ctx, AdminListParams{Email: "ghost@x.com"})

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("query filter matches title and owner email", func(t *testing.T) {
		f := newServiceFixture()
		f.services.On("List", ctx, mock.Anything).Return([]*entity.Service{
			{ID: "s1", Title: "Math Tutoring", OwnerEmail: "a@x.com"},
			{ID: "s2", Title: "Plumbing", OwnerEmail: "tutor@x.com"},
			{ID: "s3", Title: "Gardening", OwnerEmail: "b@x.com"},
		}, nil)
		f.users.On("NamesByUID", ctx, mock.Anything).Return(map[string]string{}, nil).Maybe()

		rows, err := f.uc.AdminList(ctx, AdminListParams{Query: "TUTOR"})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "s1", rows[0].Service.ID)
		assert.Equal(t, "s2", rows[1].Service.ID)
	})
}

func TestAdminCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates for a provider resolved by email", func(t *testing.T) {
		f := newServiceFixture()
		f.users.On("GetByEmail", ctx, "p@x.com").Return(&entity.User{UID: "p1", Email: "p@x.com"}, nil)
		var created *entity.Service
		f.services.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Service)
		}).Return(nil)

		got, err := f.uc.AdminCreate(ctx, "admin-1", AdminCreateInput{
			ProviderEmail: "p@x.com",
			Title:         "  Deep cleaning ",
			ImageURL:      "https://cdn.x.com/i.jpg",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "p1", created.ProviderID)
		assert.Equal(t, "Deep cleaning", created.Title)
		assert.Equal(t, entity.ServiceStatusPending, created.Status)
		require.Len(t, created.Images, 1)
	})

	t.Run("approved status stamps audit fields", func(t *testing.T) {
		f := newServiceFixture()
		f.users.On("GetByUID", ctx, "p1").Return(&entity.User{UID: "p1"}, nil)
		f.services.On("Create", ctx, mock.Anything).Return(nil)

		got, err := f.uc.AdminCreate(ctx, "admin-1", AdminCreateInput{
			ProviderUID: "p1",
			Title:       "T",
			Status:      "approved",
		})

		require.NoError(t, err)
		require.NotNil(t, got.ApprovedAt)
		assert.Equal(t, "admin-1", *got.ApprovedBy)
	})

	t.Run("title is required", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.uc.AdminCreate(ctx, "admin-1", AdminCreateInput{ProviderUID: "p1", Title: "  "})
		assert.ErrorIs(t, err, errs.ErrMissingField)
	})
}

func TestAdminUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("drops unknown fields and keeps allow-listed ones", func(t *testing.T) {
		f := newServiceFixture()
		var fields map[string]any
		f.services.On("Merge", ctx, "s1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.AdminUpdate(ctx, "admin-1", AdminUpdateInput{
			ID: "s1",
			Fields: map[string]any{
				"title":            "New title",
				"price":            99.5,
				"demoted_for_lock": false,
				"provider_id":      "evil",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "New title", fields["title"])
		assert.Equal(t, 99.5, fields["price"])
		assert.NotContains(t, fields, "demoted_for_lock")
		assert.NotContains(t, fields, "provider_id")
		assert.Equal(t, "admin-1", fields["updated_by"])
	})

	t.Run("an empty effective patch is rejected", func(t *testing.T) {
		f := newServiceFixture()
		err := f.uc.AdminUpdate(ctx, "admin-1", AdminUpdateInput{
			ID:     "s1",
			Fields: map[string]any{"provider_id": "x"},
		})
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})

	t.Run("wrong value type is a client error", func(t *testing.T) {
		f := newServiceFixture()
		err := f.uc.AdminUpdate(ctx, "admin-1", AdminUpdateInput{
			ID:     "s1",
			Fields: map[string]any{"price": "cheap"},
		})
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})
}

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("stages deduplicated deletes through the batch writer", func(t *testing.T) {
		f := newServiceFixture()
		var staged []persistence.Mutation
		f.committer.On("CommitChunk", ctx, mock.Anything).Run(func(args mock.Arguments) {
			staged = append(staged, args.Get(1).([]persistence.Mutation)...)
		}).Return(nil)

		count, err := f.uc.BulkDelete(ctx, []string{"a", "b", "a", ""})

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, staged, 2)
		assert.Equal(t, persistence.OpDelete, staged[0].Op)
	})

	t.Run("no usable ids is a client error", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.uc.BulkDelete(ctx, []string{"", ""})
		assert.ErrorIs(t, err, errs.ErrMissingID)
	})
}
