package deletion

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// ListLimit caps one page of the deletion request queue
const ListLimit = 1000

// Decision actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// DeletionUseCase handles provider requests to remove their own listings
type DeletionUseCase struct {
	requests     persistence.DeletionRequestRepository
	services     persistence.ServiceRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewDeletionUseCase creates a new DeletionUseCase
func NewDeletionUseCase(
	requests persistence.DeletionRequestRepository,
	services persistence.ServiceRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *DeletionUseCase {
	return &DeletionUseCase{
		requests:     requests,
		services:     services,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns deletion requests matching the filter.
func (d *DeletionUseCase) List(ctx context.Context, f persistence.DeletionRequestFilter) ([]*entity.DeletionRequest, error) {
	if f.Limit <= 0 || f.Limit > ListLimit {
		f.Limit = ListLimit
	}
	if f.Status != "" && !entity.ValidServiceStatus(f.Status) {
		return nil, errs.ErrInvalidStatus
	}
	return d.requests.List(ctx, f)
}

// Decide resolves one request. Approval deletes the listing; rejection puts
// the listing back in the status it held before the request was filed.
func (d *DeletionUseCase) Decide(ctx context.Context, actorUID, id, action string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	if action != ActionApprove && action != ActionReject {
		return errs.ErrBadRequest
	}

	req, err := d.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := d.timeProvider.Now()

	if action == ActionApprove {
		if err := d.services.Delete(ctx, req.ServiceID); err != nil && !errs.IsNotFoundError(err) {
			return err
		}
		if err := d.requests.Merge(ctx, id, map[string]any{
			"status":      string(entity.ServiceStatusApproved),
			"approved_at": now,
			"approved_by": actorUID,
		}); err != nil {
			return err
		}
		d.logger.Info("Deletion request approved", map[string]any{
			"requestId": id,
			"serviceId": req.ServiceID,
			"actor":     actorUID,
		})
		return nil
	}

	restore := string(entity.ServiceStatusPending)
	if req.PriorStatus != nil && entity.ValidServiceStatus(*req.PriorStatus) {
		restore = *req.PriorStatus
	}
	if err := d.services.Merge(ctx, req.ServiceID, map[string]any{"status": restore}); err != nil && !errs.IsNotFoundError(err) {
		return err
	}
	if err := d.requests.Merge(ctx, id, map[string]any{
		"status":      string(entity.ServiceStatusRejected),
		"approved_at": nil,
		"approved_by": nil,
	}); err != nil {
		return err
	}
	d.logger.Info("Deletion request rejected", map[string]any{
		"requestId":      id,
		"serviceId":      req.ServiceID,
		"restoredStatus": restore,
		"actor":          actorUID,
	})
	return nil
}
