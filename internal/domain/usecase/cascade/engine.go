package cascade

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// DefaultQueryLimit bounds one page of a cascade sweep. A global sweep pages
// by re-querying, since transitioned records no longer match the query; a
// provider-scoped sweep stops after one page, re-running the same edge picks
// up the remainder.
const DefaultQueryLimit = 1000

// Engine performs the demote-on-lock / reapprove-on-unlock cascade over a
// provider scope's service listings. An empty scope means every provider.
//
// Both directions are naturally idempotent: demote only touches approved
// records, reapprove only touches pending records it previously marked, so
// replaying an edge finds nothing left to flip.
type Engine struct {
	services     persistence.ServiceRepository
	writer       *BatchWriter
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	queryLimit   int
}

// NewEngine creates a cascade engine. A non-positive queryLimit falls back to
// DefaultQueryLimit.
func NewEngine(
	services persistence.ServiceRepository,
	writer *BatchWriter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	queryLimit int,
) *Engine {
	if queryLimit <= 0 {
		queryLimit = DefaultQueryLimit
	}
	return &Engine{
		services:     services,
		writer:       writer,
		timeProvider: timeProvider,
		logger:       logger,
		queryLimit:   queryLimit,
	}
}

// Demote flips the scope's approved services to pending, marking each with
// demotedForLock so a later release can undo exactly this set. A global
// scope pages through every approved service; a provider scope stops at one
// page. Returns the number of services staged.
func (e *Engine) Demote(ctx context.Context, scope string) (int, error) {
	total := 0
	for {
		candidates, err := e.services.ListCascadeCandidates(ctx, scope, entity.ServiceStatusApproved, false, e.queryLimit)
		if err != nil {
			return total, &errs.CascadeError{Scope: scope, Direction: "demote", Err: err}
		}

		muts := make([]persistence.Mutation, 0, len(candidates))
		for _, svc := range candidates {
			if svc.Status != entity.ServiceStatusApproved {
				continue
			}
			muts = append(muts, persistence.Update(persistence.CollectionServices, svc.ID, map[string]any{
				"status":           string(entity.ServiceStatusPending),
				"approved_at":      nil,
				"approved_by":      nil,
				"demoted_for_lock": true,
			}))
		}

		if len(muts) > 0 {
			committed, err := e.writer.Commit(ctx, muts)
			if err != nil {
				return total, &errs.CascadeError{Scope: scope, Direction: "demote", Committed: committed, Err: err}
			}
			total += len(muts)
		}

		if scope != "" || len(muts) == 0 || len(candidates) < e.queryLimit {
			break
		}
	}

	if total > 0 {
		e.logger.Info("Lock cascade demoted services", map[string]any{
			"scope":   scope,
			"demoted": total,
		})
	}
	return total, nil
}

// Reapprove restores the scope's cascade-demoted services to approved,
// clearing the marker and stamping fresh approval audit fields with the
// releasing actor. Services pending for any other reason are never queried.
// A global scope pages through every marked service; a provider scope stops
// at one page.
func (e *Engine) Reapprove(ctx context.Context, scope, actorUID string) (int, error) {
	total := 0
	for {
		candidates, err := e.services.ListCascadeCandidates(ctx, scope, entity.ServiceStatusPending, true, e.queryLimit)
		if err != nil {
			return total, &errs.CascadeError{Scope: scope, Direction: "reapprove", Err: err}
		}

		now := e.timeProvider.Now()
		muts := make([]persistence.Mutation, 0, len(candidates))
		for _, svc := range candidates {
			if !svc.DemotedForLock {
				continue
			}
			muts = append(muts, persistence.Update(persistence.CollectionServices, svc.ID, map[string]any{
				"status":           string(entity.ServiceStatusApproved),
				"demoted_for_lock": false,
				"approved_at":      now,
				"approved_by":      actorUID,
			}))
		}

		if len(muts) > 0 {
			committed, err := e.writer.Commit(ctx, muts)
			if err != nil {
				return total, &errs.CascadeError{Scope: scope, Direction: "reapprove", Committed: committed, Err: err}
			}
			total += len(muts)
		}

		if scope != "" || len(muts) == 0 || len(candidates) < e.queryLimit {
			break
		}
	}

	if total > 0 {
		e.logger.Info("Lock cascade reapproved services", map[string]any{
			"scope":      scope,
			"reapproved": total,
		})
	}
	return total, nil
}

// Apply runs the cascade matching the detected edge and returns the count of
// services touched. EdgeNone issues no query and no mutation.
func (e *Engine) Apply(ctx context.Context, edge Edge, scope, actorUID string) (int, error) {
	switch edge {
	case EdgeRising:
		return e.Demote(ctx, scope)
	case EdgeFalling:
		return e.Reapprove(ctx, scope, actorUID)
	default:
		return 0, nil
	}
}
