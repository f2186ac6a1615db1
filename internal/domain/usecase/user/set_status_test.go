package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	actor := "admin-1"

	t.Run("disabling a provider demotes their services", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider, Status: entity.UserStatusActive}, nil)
		f.users.On("Merge", ctx, "prov-1", map[string]any{"status": "disabled"}).Return(nil)
		f.directory.On("SetDisabled", ctx, "prov-1", true).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeRising, "prov-1", actor).Return(3, nil)

		res, err := f.uc.SetStatus(ctx, actor, "prov-1", "disabled")

		require.NoError(t, err)
		assert.Equal(t, entity.UserStatusDisabled, res.Status)
		assert.Equal(t, 3, res.UpdatedServices)
	})

	t.Run("re-enabling a provider restores the demoted set", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider, Status: entity.UserStatusDisabled}, nil)
		f.users.On("Merge", ctx, "prov-1", map[string]any{"status": "active"}).Return(nil)
		f.directory.On("SetDisabled", ctx, "prov-1", false).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeFalling, "prov-1", actor).Return(3, nil)

		res, err := f.uc.SetStatus(ctx, actor, "prov-1", "active")

		require.NoError(t, err)
		assert.Equal(t, 3, res.UpdatedServices)
	})

	t.Run("same status is still persisted but cascades nothing", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider, Status: entity.UserStatusActive}, nil)
		f.users.On("Merge", ctx, "prov-1", map[string]any{"status": "active"}).Return(nil)
		f.directory.On("SetDisabled", ctx, "prov-1", false).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeNone, "prov-1", actor).Return(0, nil)

		res, err := f.uc.SetStatus(ctx, actor, "prov-1", "active")

		require.NoError(t, err)
		assert.Equal(t, 0, res.UpdatedServices)
	})

	t.Run("non-providers never cascade", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "seeker-1").
			Return(&entity.User{UID: "seeker-1", Role: entity.RoleSeeker, Status: entity.UserStatusActive}, nil)
		f.users.On("Merge", ctx, "seeker-1", mock.Anything).Return(nil)
		f.directory.On("SetDisabled", ctx, "seeker-1", true).Return(nil)

		res, err := f.uc.SetStatus(ctx, actor, "seeker-1", "disabled")

		require.NoError(t, err)
		assert.Equal(t, 0, res.UpdatedServices)
		f.runner.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		_, err := f.uc.SetStatus(ctx, actor, "u1", "archived")
		assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	})
}

func TestSetPricingGate(t *testing.T) {
	ctx := context.Background()
	actor := "admin-1"
	forceShow := entity.GateModeForceShow
	forceHide := entity.GateModeForceHide

	t.Run("force_show on a provider demotes", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider}, nil)
		var fields map[string]any
		f.users.On("Merge", ctx, "prov-1", mock.Anything).Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]any)
		}).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeRising, "prov-1", actor).Return(5, nil)

		res, err := f.uc.SetPricingGate(ctx, actor, "prov-1", PricingGatePatch{Mode: &forceShow})

		require.NoError(t, err)
		assert.Equal(t, 5, res.UpdatedServices)
		gate := fields["pricing_gate"].(*entity.PricingGate)
		assert.Equal(t, entity.GateModeForceShow, *gate.Mode)
	})

	t.Run("clearing the mode releases the lock", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider, PricingGate: &entity.PricingGate{Mode: &forceShow}}, nil)
		f.users.On("Merge", ctx, "prov-1", mock.Anything).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeFalling, "prov-1", actor).Return(5, nil)

		res, err := f.uc.SetPricingGate(ctx, actor, "prov-1", PricingGatePatch{ClearMode: true})

		require.NoError(t, err)
		assert.Equal(t, 5, res.UpdatedServices)
		assert.Nil(t, res.PricingGate.Mode)
	})

	t.Run("force_hide is not a lock", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider}, nil)
		f.users.On("Merge", ctx, "prov-1", mock.Anything).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeNone, "prov-1", actor).Return(0, nil)

		res, err := f.uc.SetPricingGate(ctx, actor, "prov-1", PricingGatePatch{Mode: &forceHide})

		require.NoError(t, err)
		assert.Equal(t, 0, res.UpdatedServices)
	})

	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		months := 6
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider, PricingGate: &entity.PricingGate{Mode: &forceShow, EnforceAfterMonths: &months}}, nil)
		f.users.On("Merge", ctx, "prov-1", mock.Anything).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeNone, "prov-1", actor).Return(0, nil)

		newMonths := 12
		res, err := f.uc.SetPricingGate(ctx, actor, "prov-1", PricingGatePatch{EnforceAfterMonths: &newMonths})

		require.NoError(t, err)
		assert.Equal(t, entity.GateModeForceShow, *res.PricingGate.Mode)
		assert.Equal(t, 12, *res.PricingGate.EnforceAfterMonths)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		bad := "force_everything"
		_, err := f.uc.SetPricingGate(ctx, actor, "u1", PricingGatePatch{Mode: &bad})
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})

	t.Run("rejects negative enforceAfterMonths", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		neg := -1
		_, err := f.uc.SetPricingGate(ctx, actor, "u1", PricingGatePatch{EnforceAfterMonths: &neg})
		assert.ErrorIs(t, err, errs.ErrBadRequest)
	})

	t.Run("parses RFC3339 showAt", func(t *testing.T) {
		f := newUserFixture(fixedNow)
		f.users.On("GetByUID", ctx, "prov-1").
			Return(&entity.User{UID: "prov-1", Role: entity.RoleProvider}, nil)
		f.users.On("Merge", ctx, "prov-1", mock.Anything).Return(nil)
		f.runner.On("Apply", ctx, cascade.EdgeNone, "prov-1", actor).Return(0, nil)

		at := "2024-07-01T00:00:00Z"
		res, err := f.uc.SetPricingGate(ctx, actor, "prov-1", PricingGatePatch{ShowAt: &at})

		require.NoError(t, err)
		require.NotNil(t, res.PricingGate.ShowAt)
		assert.Equal(t, 2024, res.PricingGate.ShowAt.Year())
	})
}
