package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		prev bool
		next bool
		want Edge
	}{
		{"off to on is rising", false, true, EdgeRising},
		{"on to off is falling", true, false, EdgeFalling},
		{"off to off is none", false, false, EdgeNone},
		{"on to on is none", true, true, EdgeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.prev, tt.next))
		})
	}
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "rising", EdgeRising.String())
	assert.Equal(t, "falling", EdgeFalling.String())
	assert.Equal(t, "none", EdgeNone.String())
}

func TestProvidersLocked(t *testing.T) {
	t.Run("unlocked by default", func(t *testing.T) {
		assert.False(t, ProvidersLocked(entity.DefaultFeatureSettings()))
	})

	t.Run("locked by the global flag", func(t *testing.T) {
		f := entity.DefaultFeatureSettings()
		f.LockAllToPricing = true
		assert.True(t, ProvidersLocked(f))
	})

	t.Run("locked by the provider flag", func(t *testing.T) {
		f := entity.DefaultFeatureSettings()
		f.LockProvidersToPricing = true
		assert.True(t, ProvidersLocked(f))
	})

	t.Run("seeker lock does not affect providers", func(t *testing.T) {
		f := entity.DefaultFeatureSettings()
		f.LockSeekersToPricing = true
		assert.False(t, ProvidersLocked(f))
	})
}

func TestGateLocked(t *testing.T) {
	forceShow := entity.GateModeForceShow
	forceHide := entity.GateModeForceHide

	assert.False(t, GateLocked(nil))
	assert.False(t, GateLocked(&entity.PricingGate{}))
	assert.True(t, GateLocked(&entity.PricingGate{Mode: &forceShow}))
	assert.False(t, GateLocked(&entity.PricingGate{Mode: &forceHide}))
}

func TestAccountLocked(t *testing.T) {
	assert.False(t, AccountLocked(entity.UserStatusActive))
	assert.True(t, AccountLocked(entity.UserStatusDisabled))
}
