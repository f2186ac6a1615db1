package sale

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// ListLimit caps one page of the sale item moderation queue
const ListLimit = 200

// SaleUseCase handles second-hand sale item moderation
type SaleUseCase struct {
	items        persistence.SaleItemRepository
	users        persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSaleUseCase creates a new SaleUseCase
func NewSaleUseCase(
	items persistence.SaleItemRepository,
	users persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		items:        items,
		users:        users,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListedItem is one row of the sale moderation queue
type ListedItem struct {
	Item         *entity.SaleItem
	ProviderName string
}

// List returns sale items in one status, newest first, with provider names.
func (s *SaleUseCase) List(ctx context.Context, status string) ([]ListedItem, error) {
	if status == "" {
		status = string(entity.SaleItemStatusPending)
	}
	if !entity.ValidSaleItemStatus(status) {
		return nil, errs.ErrInvalidStatus
	}

	rows, err := s.items.List(ctx, entity.SaleItemStatus(status), ListLimit)
	if err != nil {
		return nil, err
	}

	uids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
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
	names := map[string]string{}
	if len(uids) > 0 {
		if resolved, err := s.users.NamesByUID(ctx, uids); err == nil {
			names = resolved
		}
	}

	out := make([]ListedItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListedItem{Item: row, ProviderName: names[row.ProviderID]})
	}
	return out, nil
}

// Update sets the lifecycle status of one item, stamping or clearing the
// approval audit fields like the service moderation path does.
func (s *SaleUseCase) Update(ctx context.Context, actorUID, id, status string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	if !entity.ValidSaleItemStatus(status) {
		return errs.ErrInvalidStatus
	}

	fields := map[string]any{
		"status":     status,
		"updated_at": s.timeProvider.Now(),
	}
	if entity.SaleItemStatus(status) == entity.SaleItemStatusApproved {
		fields["approved_at"] = s.timeProvider.Now()
		fields["approved_by"] = actorUID
	} else {
		fields["approved_at"] = nil
		fields["approved_by"] = nil
	}

	if err := s.items.Merge(ctx, id, fields); err != nil {
		return err
	}
	s.logger.Info("Sale item moderated", map[string]any{
		"itemId": id,
		"status": status,
		"actor":  actorUID,
	})
	return nil
}

// ProviderRef is one provider owning sale items
type ProviderRef struct {
	UID  string
	Name string
}

// ProviderIDs returns the owners behind sale items, either the distinct
// providers across one status or the owners of the given item ids. Names are
// resolved when withNames is set.
func (s *SaleUseCase) ProviderIDs(ctx context.Context, status string, saleIDs []string, withNames bool) ([]ProviderRef, error) {
	var uids []string

	if len(saleIDs) > 0 {
		items, err := s.items.GetMany(ctx, saleIDs)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(items))
		for _, id := range saleIDs {
			item, ok := items[id]
			if !ok || item.ProviderID == "" {
				continue
			}
			if _, dup := seen[item.ProviderID]; dup {
				continue
			}
			seen[item.ProviderID] = struct{}{}
			uids = append(uids, item.ProviderID)
		}
	} else {
		if status == "" {
			status = string(entity.SaleItemStatusApproved)
		}
		if !entity.ValidSaleItemStatus(status) {
			return nil, errs.ErrInvalidStatus
		}
		var err error
		uids, err = s.items.DistinctProviderIDs(ctx, entity.SaleItemStatus(status), ListLimit)
		if err != nil {
			return nil, err
		}
	}

	names := map[string]string{}
	if withNames && len(uids) > 0 {
		if resolved, err := s.users.NamesByUID(ctx, uids); err == nil {
			names = resolved
		}
	}

	out := make([]ProviderRef, 0, len(uids))
	for _, uid := range uids {
		out = append(out, ProviderRef{UID: uid, Name: names[uid]})
	}
	return out, nil
}
