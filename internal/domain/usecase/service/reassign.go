package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// ReassignInput carries an owner reassignment request
type ReassignInput struct {
	IDs            []string
	TargetEmail    string
	AssignToSelf   bool
	IdempotencyKey string
}

// ReassignOutcome is the per-service result of a reassignment
type ReassignOutcome struct {
	ID     string
	Result string // "updated", "not_found", "already_owner", "duplicate"
}

// ReassignResult summarizes an owner reassignment
type ReassignResult struct {
	Updated     int
	NotFound    int
	Skipped     int
	Results     []ReassignOutcome
	TargetUID   string
	TargetEmail string
}

// ReassignOwner moves listings to a new owner. The target is resolved from
// the identity directory and must not be disabled. Each service's owner
// change and its audit record are staged in the same batch so neither lands
// without the other. A repeated call with the same idempotency key skips
// services already reassigned under that key.
func (s *ServiceUseCase) ReassignOwner(ctx context.Context, actorUID, actorEmail string, in ReassignInput) (*ReassignResult, error) {
	if len(in.IDs) == 0 {
		return nil, errs.ErrMissingID
	}

	targetEmail := strings.ToLower(strings.TrimSpace(in.TargetEmail))
	if in.AssignToSelf {
		targetEmail = strings.ToLower(strings.TrimSpace(actorEmail))
	}
	if targetEmail == "" {
		return nil, errs.ErrMissingField
	}

	acct, err := s.directory.GetAccountByEmail(ctx, targetEmail)
	if err != nil {
		return nil, err
	}
	if acct.Disabled {
		return nil, errs.ErrAccountDisabled
	}

	now := s.timeProvider.Now()
	result := &ReassignResult{TargetUID: acct.UID, TargetEmail: acct.Email}
	var muts []persistence.Mutation

	for _, id := range in.IDs {
		if id == "" {
			continue
		}

		svc, err := s.services.GetByID(ctx, id)
		if err != nil {
			if errs.IsNotFoundError(err) {
				result.NotFound++
				result.Results = append(result.Results, ReassignOutcome{ID: id, Result: "not_found"})
				continue
			}
			return nil, err
		}
		if svc.ProviderID == acct.UID {
			result.Skipped++
			result.Results = append(result.Results, ReassignOutcome{ID: id, Result: "already_owner"})
			continue
		}
		if in.IdempotencyKey != "" {
			done, err := s.events.HasReassignEvent(ctx, id, acct.UID, in.IdempotencyKey)
			if err != nil {
				return nil, err
			}
			if done {
				result.Skipped++
				result.Results = append(result.Results, ReassignOutcome{ID: id, Result: "duplicate"})
				continue
			}
		}

		muts = append(muts, persistence.Update(persistence.CollectionServices, id, map[string]any{
			"provider_id": acct.UID,
			"owner_email": acct.Email,
			"updated_at":  now,
			"updated_by":  actorUID,
		}))
		eventFields := map[string]any{
			"type":           entity.EventReassignOwner,
			"service_id":     id,
			"to_owner_id":    acct.UID,
			"to_owner_email": acct.Email,
			"actor_uid":      actorUID,
			"at":             now,
		}
		if svc.ProviderID != "" {
			eventFields["from_owner_id"] = svc.ProviderID
		}
		if svc.OwnerEmail != "" {
			eventFields["from_owner_email"] = svc.OwnerEmail
		}
		if in.IdempotencyKey != "" {
			eventFields["idempotency_key"] = in.IdempotencyKey
		}
		muts = append(muts, persistence.Insert(persistence.CollectionServiceEvents, uuid.NewString(), eventFields))

		result.Updated++
		result.Results = append(result.Results, ReassignOutcome{ID: id, Result: "updated"})
	}

	if len(muts) > 0 {
		if _, err := s.writer.Commit(ctx, muts); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Services reassigned", map[string]any{
		"target":   acct.UID,
		"updated":  result.Updated,
		"skipped":  result.Skipped,
		"notFound": result.NotFound,
		"actor":    actorUID,
	})
	return result, nil
}
