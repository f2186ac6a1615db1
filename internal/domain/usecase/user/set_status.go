package user

import (
	"context"
	"time"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// SetStatusResult reports the persisted status and any cascade fallout
type SetStatusResult struct {
	Status          entity.UserStatus
	UpdatedServices int
}

// SetStatus persists the account status and mirrors it on the directory sign-in
// flag. For providers the disabled state acts as a per-account pricing lock:
// disabling demotes the provider's approved services, re-enabling restores the
// demoted set.
func (u *UserUseCase) SetStatus(ctx context.Context, actorUID, uid, status string) (*SetStatusResult, error) {
	if uid == "" {
		return nil, errs.ErrMissingID
	}
	if !entity.ValidUserStatus(status) {
		return nil, errs.ErrInvalidStatus
	}

	profile, err := u.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	prevLocked := cascade.AccountLocked(profile.Status)
	nextLocked := cascade.AccountLocked(entity.UserStatus(status))

	if err := u.users.Merge(ctx, uid, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	if err := u.directory.SetDisabled(ctx, uid, nextLocked); err != nil {
		u.logger.Warn("Directory disable flag not updated", map[string]any{
			"uid":   uid,
			"error": err.Error(),
		})
	}

	result := &SetStatusResult{Status: entity.UserStatus(status)}
	if !profile.IsProvider() {
		return result, nil
	}

	count, err := u.cascade.Apply(ctx, cascade.Detect(prevLocked, nextLocked), uid, actorUID)
	if err != nil {
		return nil, err
	}
	result.UpdatedServices = count
	return result, nil
}

// PricingGatePatch is a partial pricing gate update; nil pointers leave the
// current value alone, Clear* fields null it out.
type PricingGatePatch struct {
	Mode                    *string
	ClearMode               bool
	ShowAt                  *string
	ClearShowAt             bool
	EnforceAfterMonths      *int
	ClearEnforceAfterMonths bool
}

// SetPricingGateResult reports the persisted gate and any cascade fallout
type SetPricingGateResult struct {
	PricingGate     *entity.PricingGate
	UpdatedServices int
}

// SetPricingGate applies a partial pricing gate override. Setting mode to
// force_show locks the provider's listings behind the pricing wall; clearing
// it (or switching to force_hide) releases them.
func (u *UserUseCase) SetPricingGate(ctx context.Context, actorUID, uid string, patch PricingGatePatch) (*SetPricingGateResult, error) {
	if uid == "" {
		return nil, errs.ErrMissingID
	}
	if patch.Mode != nil && *patch.Mode != entity.GateModeForceShow && *patch.Mode != entity.GateModeForceHide {
		return nil, errs.ErrBadRequest
	}
	if patch.EnforceAfterMonths != nil && *patch.EnforceAfterMonths < 0 {
		return nil, errs.ErrBadRequest
	}

	profile, err := u.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	gate := entity.PricingGate{}
	if profile.PricingGate != nil {
		gate = *profile.PricingGate
	}
	prevLocked := cascade.GateLocked(profile.PricingGate)

	if patch.ClearMode {
		gate.Mode = nil
	} else if patch.Mode != nil {
		gate.Mode = patch.Mode
	}
	if patch.ClearShowAt {
		gate.ShowAt = nil
	} else if patch.ShowAt != nil {
		parsed, err := parseGateTime(*patch.ShowAt)
		if err != nil {
			return nil, errs.ErrBadRequest
		}
		gate.ShowAt = &parsed
	}
	if patch.ClearEnforceAfterMonths {
		gate.EnforceAfterMonths = nil
	} else if patch.EnforceAfterMonths != nil {
		gate.EnforceAfterMonths = patch.EnforceAfterMonths
	}

	if err := u.users.Merge(ctx, uid, map[string]any{"pricing_gate": &gate}); err != nil {
		return nil, err
	}

	result := &SetPricingGateResult{PricingGate: &gate}
	if !profile.IsProvider() {
		return result, nil
	}

	nextLocked := cascade.GateLocked(&gate)
	count, err := u.cascade.Apply(ctx, cascade.Detect(prevLocked, nextLocked), uid, actorUID)
	if err != nil {
		return nil, err
	}
	result.UpdatedServices = count
	return result, nil
}

func parseGateTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339, v)
}
