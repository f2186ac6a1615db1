package cascade

import (
	"github.com/cloudai/owner-console/internal/domain/entity"
)

// ProvidersLocked computes the effective global pricing lock for providers
func ProvidersLocked(f entity.FeatureSettings) bool {
	return f.LockAllToPricing || f.LockProvidersToPricing
}

// GateLocked computes the per-user override lock from a pricing gate mode
func GateLocked(gate *entity.PricingGate) bool {
	return gate != nil && gate.Mode != nil && *gate.Mode == entity.GateModeForceShow
}

// AccountLocked computes the lock contribution of the account state
func AccountLocked(status entity.UserStatus) bool {
	return status == entity.UserStatusDisabled
}
