package service

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// List limits for the two service listing surfaces
const (
	ModerationListLimit = 100
	AdminListLimit      = 1000
)

// ServiceUseCase handles service listing moderation and administration
type ServiceUseCase struct {
	services     persistence.ServiceRepository
	users        persistence.UserRepository
	events       persistence.ServiceEventRepository
	directory    identityport.Directory
	writer       *cascade.BatchWriter
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewServiceUseCase creates a new ServiceUseCase
func NewServiceUseCase(
	services persistence.ServiceRepository,
	users persistence.UserRepository,
	events persistence.ServiceEventRepository,
	directory identityport.Directory,
	writer *cascade.BatchWriter,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ServiceUseCase {
	return &ServiceUseCase{
		services:     services,
		users:        users,
		events:       events,
		directory:    directory,
		writer:       writer,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListedService is one row of the moderation queue with the provider's
// display name resolved.
type ListedService struct {
	Service      *entity.Service
	ProviderName string
}

// List returns the moderation queue for one status, newest first, with
// provider display names resolved in one lookup.
func (s *ServiceUseCase) List(ctx context.Context, status string) ([]ListedService, error) {
	if status == "" {
		status = string(entity.ServiceStatusPending)
	}
	if !entity.ValidServiceStatus(status) {
		return nil, errs.ErrInvalidStatus
	}

	rows, err := s.services.List(ctx, persistence.ServiceFilter{Status: status, Limit: ModerationListLimit})
	if err != nil {
		return nil, err
	}

	names := s.resolveNames(ctx, rows)
	out := make([]ListedService, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListedService{Service: row, ProviderName: names[row.ProviderID]})
	}
	return out, nil
}

// Update sets the moderation status of one listing. Approving stamps the
// audit fields; any other status clears them. The lock marker is left alone
// so a manual decision during a lock sticks.
func (s *ServiceUseCase) Update(ctx context.Context, actorUID, id, status string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	if !entity.ValidServiceStatus(status) {
		return errs.ErrInvalidStatus
	}

	fields := map[string]any{
		"status":     status,
		"updated_at": s.timeProvider.Now(),
		"updated_by": actorUID,
	}
	if entity.ServiceStatus(status) == entity.ServiceStatusApproved {
		fields["approved_at"] = s.timeProvider.Now()
		fields["approved_by"] = actorUID
	} else {
		fields["approved_at"] = nil
		fields["approved_by"] = nil
	}

	if err := s.services.Merge(ctx, id, fields); err != nil {
		return err
	}
	s.logger.Info("Service moderated", map[string]any{
		"serviceId": id,
		"status":    status,
		"actor":     actorUID,
	})
	return nil
}

func (s *ServiceUseCase) resolveNames(ctx context.Context, rows []*entity.Service) map[string]string {
	seen := make(map[string]struct{}, len(rows))
	uids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ProviderID == "" {
			continue
		}
		if _, dup := seen[row.ProviderID]; dup {
			continue
		}
		seen[row.ProviderID] = struct{}{}
		uids = append(uids, row.ProviderID)
	}
	if len(uids) == 0 {
		return map[string]string{}
	}
	names, err := s.users.NamesByUID(ctx, uids)
	if err != nil {
		s.logger.Warn("Provider name lookup failed", map[string]any{"error": err.Error()})
		return map[string]string{}
	}
	return names
}
