package slot

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

const (
	// ListLimit caps one page of the slot request queue
	ListLimit = 1000

	// MaxAdminNotes bounds the stored admin notes
	MaxAdminNotes = 1000
)

// SlotUseCase handles provider requests for additional paid service slots
type SlotUseCase struct {
	requests     persistence.SlotRequestRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSlotUseCase creates a new SlotUseCase
func NewSlotUseCase(requests persistence.SlotRequestRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *SlotUseCase {
	return &SlotUseCase{requests: requests, timeProvider: timeProvider, logger: logger}
}

// List returns slot requests matching the filter.
func (s *SlotUseCase) List(ctx context.Context, f persistence.SlotRequestFilter) ([]*entity.SlotRequest, error) {
	if f.Limit <= 0 || f.Limit > ListLimit {
		f.Limit = ListLimit
	}
	if f.Status != "" && !entity.ValidServiceStatus(f.Status) {
		return nil, errs.ErrInvalidStatus
	}
	return s.requests.List(ctx, f)
}

// UpdateInput is a partial slot request update; nil pointers leave the
// current value alone.
type UpdateInput struct {
	ID         string
	Status     *string
	Paid       *bool
	AdminNotes *string
}

// Update patches one slot request. A status change to approved stamps the
// audit fields; any other status clears them.
func (s *SlotUseCase) Update(ctx context.Context, actorUID string, in UpdateInput) error {
	if in.ID == "" {
		return errs.ErrMissingID
	}

	fields := make(map[string]any, 5)
	if in.Status != nil {
		if !entity.ValidServiceStatus(*in.Status) {
			return errs.ErrInvalidStatus
		}
		fields["status"] = *in.Status
		if entity.ServiceStatus(*in.Status) == entity.ServiceStatusApproved {
			fields["approved_at"] = s.timeProvider.Now()
			fields["approved_by"] = actorUID
		} else {
			fields["approved_at"] = nil
			fields["approved_by"] = nil
		}
	}
	if in.Paid != nil {
		fields["paid"] = *in.Paid
	}
	if in.AdminNotes != nil {
		notes := *in.AdminNotes
		if len(notes) > MaxAdminNotes {
			notes = notes[:MaxAdminNotes]
		}
		fields["admin_notes"] = notes
	}
	if len(fields) == 0 {
		return errs.ErrBadRequest
	}

	if err := s.requests.Merge(ctx, in.ID, fields); err != nil {
		return err
	}
	s.logger.Info("Slot request updated", map[string]any{
		"requestId": in.ID,
		"actor":     actorUID,
	})
	return nil
}
