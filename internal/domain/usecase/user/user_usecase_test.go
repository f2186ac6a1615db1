package user

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
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	coremocks "github.com/cloudai/owner-console/mocks/port/core"
	identitymocks "github.com/cloudai/owner-console/mocks/port/identity"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
	cascademocks "github.com/cloudai/owner-console/mocks/usecase/cascade"
)

type userFixture struct {
	users     *persistencemocks.MockUserRepository
	directory *identitymocks.MockDirectory
	runner    *cascademocks.MockRunner
	uc        *UserUseCase
}

func newUserFixture(now time.Time) *userFixture {
	f := &userFixture{
		users:     new(persistencemocks.MockUserRepository),
		directory: new(identitymocks.MockDirectory),
		runner:    new(cascademocks.MockRunner),
	}
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(now).Maybe()
	f.uc = NewUserUseCase(f.users, f.directory, f.runner, tp, logger.NewNoopLogger())
	return f
}

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func TestUserList(t *testing.T) {
	ctx := context.Background()

	t.Run("joins directory verification flag", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("List", ctx, mock.Anything).Return([]*entity.User{
			{UID: "u1", Email: "a@x.com"},
			{UID: "u2", Email: "b@x.com"},
		}, nil)
		f.directory.On("GetAccount", ctx, "u1").Return(&entity.Account{UID: "u1", EmailVerified: true}, nil)
		f.directory.On("GetAccount", ctx, "u2").Return(nil, errs.ErrAccountNotFound)

		rows, err := f.uc.List(ctx, persistence.UserListParams{Limit: 10})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].EmailVerified)
		assert.False(t, rows[1].EmailVerified)
	})

	t.Run("caps the page size", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		var got persistence.UserListParams
		f.users.On("List", ctx, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(persistence.UserListParams)
		}).Return([]*entity.User{}, nil)

		_, err := f.uc.List(ctx, persistence.UserListParams{Limit: 10000})

		require.NoError(t, err)
		assert.Equal(t, MaxListLimit, got.Limit)
	})

	t.Run("rejects unknown role filter", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		_, err := f.uc.List(ctx, persistence.UserListParams{Role: "superuser"})
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})
}

func TestUserGet(t *testing.T) {
	ctx := context.Background()

	t.Run("by uid", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "u1").Return(&entity.User{UID: "u1"}, nil)
		f.directory.On("GetAccount", ctx, "u1").Return(&entity.Account{UID: "u1", EmailVerified: true}, nil)

		got, err := f.uc.Get(ctx, "u1", "")

		require.NoError(t, err)
		assert.Equal(t, "u1", got.User.UID)
		assert.True(t, got.EmailVerified)
	})

	t.Run("by email is lowercased", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByEmail", ctx, "a@x.com").Return(&entity.User{UID: "u1", Email: "a@x.com"}, nil)
		f.directory.On("GetAccount", ctx, "u1").Return(nil, errs.ErrAccountNotFound)

		got, err := f.uc.Get(ctx, "", "  A@X.COM ")

		require.NoError(t, err)
		assert.Equal(t, "u1", got.User.UID)
	})

	t.Run("requires an identifier", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		_, err := f.uc.Get(ctx, "", "")
		assert.ErrorIs(t, err, errs.ErrMissingID)
	})
}

func TestUserCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account then profile with defaults", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("CreateAccount", ctx, "new@x.com", "secret123", false).
			Return(&entity.Account{UID: "fresh-uid", Email: "new@x.com"}, nil)
		var created *entity.User
		f.users.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.User)
		}).Return(nil)

		got, err := f.uc.Create(ctx, CreateUserInput{Email: " New@X.com ", Password: "secret123"})

		require.NoError(t, err)
		assert.Equal(t, "fresh-uid", got.UID)
		assert.Equal(t, entity.RoleSeeker, created.Role)
		assert.Equal(t, entity.UserStatusActive, created.Status)
		assert.Equal(t, "free", created.Plan)
		assert.Equal(t, fixedNow, created.CreatedAt)
	})

	t.Run("disabled status blocks sign-in from the start", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("CreateAccount", ctx, "new@x.com", "secret123", true).
			Return(&entity.Account{UID: "fresh-uid"}, nil)
		f.users.On("Create", ctx, mock.Anything).Return(nil)

		_, err := f.uc.Create(ctx, CreateUserInput{
			Email:    "new@x.com",
			Password: "secret123",
			Role:     "provider",
			Status:   "disabled",
		})

		require.NoError(t, err)
		f.directory.AssertExpectations(t)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		_, err := f.uc.Create(ctx, CreateUserInput{Email: "a@x.com", Password: "secret123", Role: "root"})
		assert.ErrorIs(t, err, errs.ErrInvalidRole)
	})

	t.Run("propagates duplicate account", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("CreateAccount", ctx, "a@x.com", "secret123", false).
			Return(nil, errs.ErrDuplicateAccount)

		_, err := f.uc.Create(ctx, CreateUserInput{Email: "a@x.com", Password: "secret123"})

		assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes the profile even when the directory fails", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("DeleteAccount", ctx, "u1").Return(errors.New("directory down"))
		var fields map[string]any
		f.users.On("Merge", ctx, "u1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Delete(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "disabled", fields["status"])
		assert.Equal(t, fixedNow, fields["deleted_at"])
	})

	t.Run("requires a uid", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		assert.ErrorIs(t, f.uc.Delete(ctx, ""), errs.ErrMissingID)
	})
}

func TestGenerateVerificationLink(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit email wins", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("VerificationLink", ctx, "a@x.com").Return("https://console.example/verify?t=x", nil)

		link, err := f.uc.GenerateVerificationLink(ctx, "u1", "A@x.com")

		require.NoError(t, err)
		assert.Contains(t, link, "verify")
		f.directory.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})

	t.Run("falls back to directory then profile", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.directory.On("GetAccount", ctx, "u1").Return(nil, errs.ErrAccountNotFound)
		f.users.On("GetByUID", ctx, "u1").Return(&entity.User{UID: "u1", Email: "profile@x.com"}, nil)
		f.directory.On("VerificationLink", ctx, "profile@x.com").Return("link", nil)

		link, err := f.uc.GenerateVerificationLink(ctx, "u1", "")

		require.NoError(t, err)
		assert.Equal(t, "link", link)
	})

	t.Run("no email anywhere is a client error", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		_, err := f.uc.GenerateVerificationLink(ctx, "", "")
		assert.ErrorIs(t, err, errs.ErrMissingField)
	})
}
