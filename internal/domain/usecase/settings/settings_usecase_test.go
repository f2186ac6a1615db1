package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/logger"
	persistencemocks "github.com/cloudai/owner-console/mocks/port/persistence"
	cascademocks "github.com/cloudai/owner-console/mocks/usecase/cascade"
)

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func newSettingsUseCase(repo *persistencemocks.MockSettingsRepository, services *persistencemocks.MockServiceRepository, runner *cascademocks.MockRunner) *SettingsUseCase {
	return NewSettingsUseCase(repo, services, runner, logger.NewNoopLogger())
}

func TestGetFeatures(t *testing.T) {
	ctx := context.Background()

	t.Run("returns defaults when the document is absent", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		repo.On("GetFeatures", ctx).Return(nil, nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		f, err := uc.GetFeatures(ctx)

		require.NoError(t, err)
		assert.True(t, f.PricingEnabled)
		assert.Equal(t, 3, f.EnforceAfterMonths)
		assert.True(t, f.ShowCityViews)
		assert.False(t, f.LockAllToPricing)
	})

	t.Run("returns the stored document", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		stored := &entity.FeatureSettings{LockAllToPricing: true, EnforceAfterMonths: 6}
		repo.On("GetFeatures", ctx).Return(stored, nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		f, err := uc.GetFeatures(ctx)

		require.NoError(t, err)
		assert.Equal(t, stored, f)
	})
}

func TestSaveFeatures(t *testing.T) {
	ctx := context.Background()
	actor := "owner-1"

	t.Run("rising lock edge demotes globally", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		runner := new(cascademocks.MockRunner)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{}, nil)
		repo.On("SaveFeatures", ctx, mock.Anything).Return(nil)
		runner.On("Apply", ctx, cascade.EdgeRising, "", actor).Return(7, nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), runner)
		res, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{LockAllToPricing: boolPtr(true)})

		require.NoError(t, err)
		assert.Equal(t, 7, res.UpdatedDemoted)
		assert.Equal(t, 0, res.UpdatedReapproved)
		assert.True(t, res.Features.LockAllToPricing)
		runner.AssertExpectations(t)
	})

	t.Run("falling lock edge reapproves globally", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		runner := new(cascademocks.MockRunner)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{LockProvidersToPricing: true}, nil)
		repo.On("SaveFeatures", ctx, mock.Anything).Return(nil)
		runner.On("Apply", ctx, cascade.EdgeFalling, "", actor).Return(4, nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), runner)
		res, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{})

		require.NoError(t, err)
		assert.Equal(t, 4, res.UpdatedReapproved)
		assert.Equal(t, 0, res.UpdatedDemoted)
	})

	t.Run("no edge means no cascade", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		runner := new(cascademocks.MockRunner)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{LockAllToPricing: true}, nil)
		repo.On("SaveFeatures", ctx, mock.Anything).Return(nil)

		// still locked, only an unrelated flag changed
		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), runner)
		res, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{LockAllToPricing: boolPtr(true), ShowCityViews: boolPtr(true)})

		require.NoError(t, err)
		assert.Equal(t, 0, res.UpdatedDemoted)
		assert.Equal(t, 0, res.UpdatedReapproved)
		runner.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("swap between lock flags stays locked", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		runner := new(cascademocks.MockRunner)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{LockAllToPricing: true}, nil)
		repo.On("SaveFeatures", ctx, mock.Anything).Return(nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), runner)
		_, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{LockProvidersToPricing: boolPtr(true)})

		require.NoError(t, err)
		runner.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("omitted fields keep their defaults", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{}, nil)
		var saved *entity.FeatureSettings
		repo.On("SaveFeatures", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.FeatureSettings)
		}).Return(nil)

		// only one flag in the body, everything else absent
		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		_, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{ShowForProviders: boolPtr(true)})

		require.NoError(t, err)
		assert.True(t, saved.ShowForProviders)
		assert.True(t, saved.PricingEnabled)
		assert.Equal(t, 3, saved.EnforceAfterMonths)
		assert.True(t, saved.ShowCityViews)
	})

	t.Run("negative enforceAfterMonths clamps to zero", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{}, nil)
		var saved *entity.FeatureSettings
		repo.On("SaveFeatures", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.FeatureSettings)
		}).Return(nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		_, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{EnforceAfterMonths: intPtr(-2)})

		require.NoError(t, err)
		assert.Equal(t, 0, saved.EnforceAfterMonths)
	})

	t.Run("cascade failure surfaces after the save", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		runner := new(cascademocks.MockRunner)
		boom := errors.New("store unavailable")
		repo.On("GetFeatures", ctx).Return(&entity.FeatureSettings{}, nil)
		repo.On("SaveFeatures", ctx, mock.Anything).Return(nil)
		runner.On("Apply", ctx, cascade.EdgeRising, "", actor).Return(0, boom)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), runner)
		_, err := uc.SaveFeatures(ctx, actor, FeaturesPatch{LockAllToPricing: boolPtr(true)})

		assert.ErrorIs(t, err, boom)
		repo.AssertCalled(t, "SaveFeatures", ctx, mock.Anything)
	})
}

func TestFeaturedVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves service info and flags missing ids", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		services := new(persistencemocks.MockServiceRepository)
		repo.On("GetHome", ctx).Return(&entity.HomeSettings{FeaturedVideoIDs: []string{"a", "gone"}}, nil)
		services.On("GetByID", ctx, "a").Return(&entity.Service{ID: "a", Title: "Math tutoring", Status: entity.ServiceStatusApproved, VideoURL: "https://youtu.be/x"}, nil)
		services.On("GetByID", ctx, "gone").Return(nil, errors.New("not found"))

		uc := newSettingsUseCase(repo, services, new(cascademocks.MockRunner))
		got, err := uc.GetFeaturedVideos(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Math tutoring", got[0].Title)
		assert.True(t, got[0].HasVideo)
		assert.False(t, got[0].Missing)
		assert.True(t, got[1].Missing)
	})

	t.Run("save deduplicates and caps the list", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		ids := make([]string, 0, entity.MaxFeaturedVideos+10)
		for i := 0; i < entity.MaxFeaturedVideos+10; i++ {
			ids = append(ids, string(rune('a'+i%26))+string(rune('a'+i/26)))
		}
		ids = append([]string{"dup", "dup", ""}, ids...)

		var savedFields map[string]any
		repo.On("MergeHome", ctx, mock.Anything).Run(func(args mock.Arguments) {
			savedFields = args.Get(1).(map[string]any)
		}).Return(nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		clean, err := uc.SaveFeaturedVideos(ctx, ids)

		require.NoError(t, err)
		assert.Len(t, clean, entity.MaxFeaturedVideos)
		assert.Equal(t, "dup", clean[0])
		assert.Equal(t, clean, savedFields["featured_video_ids"])
	})
}

func TestLandingVideos(t *testing.T) {
	ctx := context.Background()

	t.Run("save normalizes urls and drops empties", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		repo.On("MergeHome", ctx, mock.Anything).Return(nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		urls, err := uc.SaveLandingVideos(ctx, []string{
			"https://www.youtube.com/watch?v=abc123",
			"  ",
			"https://youtu.be/xYz-9",
			"https://example.com/clip.mp4",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://www.youtube.com/embed/abc123",
			"https://www.youtube.com/embed/xYz-9",
			"https://example.com/clip.mp4",
		}, urls)
	})

	t.Run("get returns empty slice when unset", func(t *testing.T) {
		repo := new(persistencemocks.MockSettingsRepository)
		repo.On("GetHome", ctx).Return(nil, nil)

		uc := newSettingsUseCase(repo, new(persistencemocks.MockServiceRepository), new(cascademocks.MockRunner))
		urls, err := uc.GetLandingVideos(ctx)

		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.NotNil(t, urls)
	})
}

func TestNormalizeYouTubeURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":         "https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=x&v=abc_123": "https://www.youtube.com/embed/abc_123",
		"https://vimeo.com/12345":                           "https://vimeo.com/12345",
		"   ":                                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeYouTubeURL(in), in)
	}
}
