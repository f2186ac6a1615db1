package cascade

import "context"

// Runner is the cascade surface consumed by the settings, user and
// transaction workflows. Engine is the production implementation.
type Runner interface {
	// Demote flips the scope's approved services to pending with the lock marker
	Demote(ctx context.Context, scope string) (int, error)

	// Reapprove restores the scope's marker-bearing pending services to approved
	Reapprove(ctx context.Context, scope, actorUID string) (int, error)

	// Apply runs the cascade matching the edge; EdgeNone is a no-op
	Apply(ctx context.Context, edge Edge, scope, actorUID string) (int, error)
}
