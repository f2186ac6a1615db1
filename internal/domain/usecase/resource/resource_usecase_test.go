package resource

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
	storagemocks "github.com/cloudai/owner-console/mocks/port/storage"
)

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

type resourceFixture struct {
	resources *persistencemocks.MockResourceRepository
	settings  *persistencemocks.MockSettingsRepository
	store     *storagemocks.MockObjectStore
	uc        *ResourceUseCase
}

func newResourceFixture() *resourceFixture {
	f := &resourceFixture{
		resources: new(persistencemocks.MockResourceRepository),
		settings:  new(persistencemocks.MockSettingsRepository),
		store:     new(storagemocks.MockObjectStore),
	}
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedNow).Maybe()
	f.uc = NewResourceUseCase(f.resources, f.settings, f.store, tp, logger.NewNoopLogger())
	return f
}

func TestResourceList(t *testing.T) {
	ctx := context.Background()

	t.Run("free text matches title, university and course", func(t *testing.T) {
		f := newResourceFixture()
		f.resources.On("List", ctx, mock.Anything).Return([]*entity.StudentResource{
			{ID: "r1", Title: "Calculus II final"},
			{ID: "r2", University: "Cairo University"},
			{ID: "r3", Course: "Linear Algebra"},
		}, nil)

		rows, err := f.uc.List(ctx, "CALCULUS", "", "", 0)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "r1", rows[0].ID)
	})

	t.Run("rejects unknown type and language", func(t *testing.T) {
		f := newResourceFixture()
		_, err := f.uc.List(ctx, "", "thesis", "", 0)
		assert.ErrorIs(t, err, errs.ErrBadRequest)

		_, err = f.uc.List(ctx, "", "", "fr", 0)
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})
}

func TestResourceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("validates enum fields", func(t *testing.T) {
		f := newResourceFixture()
		var fields map[string]any
		f.resources.On("Merge", ctx, "r1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)

		err := f.uc.Update(ctx, "r1", map[string]any{
			"type":     "exam",
			"language": "both",
			"status":   "approved",
			"pdf_key":  "hack",
		})

		require.NoError(t, err)
		assert.Equal(t, "exam", fields["type"])
		assert.Equal(t, "both", fields["language"])
		assert.NotContains(t, fields, "pdf_key")
	})

	t.Run("rejects bad enum values", func(t *testing.T) {
		f := newResourceFixture()
		assert.ErrorIs(t, f.uc.Update(ctx, "r1", map[string]any{"type": "thesis"}), errs.ErrBadRequest)
		assert.ErrorIs(t, f.uc.Update(ctx, "r1", map[string]any{"status": "live"}), errs.ErrInvalidStatus)
	})
}

func TestSignedURL(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns stored pdf keys", func(t *testing.T) {
		f := newResourceFixture()
		f.resources.On("GetByID", ctx, "r1").
			Return(&entity.StudentResource{ID: "r1", PdfKey: "student-resources/r1.pdf"}, nil)
		f.store.On("PresignGet", ctx, "student-resources/r1.pdf", SignedURLTTL).
			Return("https://s3.example/signed", nil)

		link, err := f.uc.SignedURL(ctx, "r1")

		require.NoError(t, err)
		assert.Equal(t, "s3", link.Source)
		assert.Equal(t, "https://s3.example/signed", link.URL)
	})

	t.Run("refuses keys outside the student bank prefix", func(t *testing.T) {
		f := newResourceFixture()
		f.resources.On("GetByID", ctx, "r1").
			Return(&entity.StudentResource{ID: "r1", PdfKey: "secrets/backup.pdf"}, nil)

		_, err := f.uc.SignedURL(ctx, "r1")

		assert.ErrorIs(t, err, errs.ErrInvalidObjectKey)
		f.store.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to drive links", func(t *testing.T) {
		f := newResourceFixture()
		f.resources.On("GetByID", ctx, "r1").
			Return(&entity.StudentResource{ID: "r1", DriveFileID: "abc"}, nil)

		link, err := f.uc.SignedURL(ctx, "r1")

		require.NoError(t, err)
		assert.Equal(t, "drive", link.Source)
		assert.Contains(t, link.URL, "abc")
	})

	t.Run("no file at all is not found", func(t *testing.T) {
		f := newResourceFixture()
		f.resources.On("GetByID", ctx, "r1").Return(&entity.StudentResource{ID: "r1"}, nil)

		_, err := f.uc.SignedURL(ctx, "r1")

		assert.ErrorIs(t, err, errs.ErrNoFile)
	})
}

func TestStudentBankSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to uploads enabled", func(t *testing.T) {
		f := newResourceFixture()
		f.settings.On("GetStudentBank", ctx).Return(nil, nil)

		s, err := f.uc.GetSettings(ctx)

		require.NoError(t, err)
		assert.True(t, s.UploadsEnabled)
	})

	t.Run("save records the actor", func(t *testing.T) {
		f := newResourceFixture()
		var fields map[string]any
		f.settings.On("MergeStudentBank", ctx, mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(1).(map[string]any)
		}).Return(nil)

		s, err := f.uc.SaveSettings(ctx, "owner-1", false)

		require.NoError(t, err)
		assert.False(t, s.UploadsEnabled)
		assert.Equal(t, "owner-1", fields["updated_by"])
		assert.Equal(t, fixedNow, fields["updated_at"])
	})
}
