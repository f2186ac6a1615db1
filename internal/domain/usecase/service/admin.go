package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// AdminListParams narrows the admin service listing
type AdminListParams struct {
	ProviderUID string
	Email       string
	Status      string
	Query       string
	Limit       int
}

// AdminList returns services for the admin table. An email filter resolves to
// the provider's uid first; a query filter matches title or owner email
// substrings case-insensitively.
func (s *ServiceUseCase) AdminList(ctx context.Context, p AdminListParams) ([]ListedService, error) {
	if p.Limit <= 0 || p.Limit > AdminListLimit {
		p.Limit = AdminListLimit
	}
	if p.Status != "" && !entity.ValidServiceStatus(p.Status) {
		return nil, errs.ErrInvalidStatus
	}

	providerUID := p.ProviderUID
	if providerUID == "" && p.Email != "" {
		owner, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(p.Email)))
		if err != nil {
			if errs.IsNotFoundError(err) {
				return []ListedService{}, nil
			}
			return nil, err
		}
		providerUID = owner.UID
	}

	rows, err := s.services.List(ctx, persistence.ServiceFilter{
		ProviderID: providerUID,
		Status:     p.Status,
		Limit:      p.Limit,
	})
	if err != nil {
		return nil, err
	}

	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Title), q) ||
				strings.Contains(strings.ToLower(row.OwnerEmail), q) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	names := s.resolveNames(ctx, rows)
	out := make([]ListedService, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListedService{Service: row, ProviderName: names[row.ProviderID]})
	}
	return out, nil
}

// AdminCreateInput carries the fields of an admin-created listing
type AdminCreateInput struct {
	ProviderUID     string
	ProviderEmail   string
	Title           string
	Description     string
	Status          string
	Price           *float64
	Category        string
	City            string
	Area            string
	ContactPhone    string
	ContactWhatsapp string
	ImageURL        string
	VideoURL        string
}

// AdminCreate creates a listing on behalf of a provider, resolved by uid or
// email.
func (s *ServiceUseCase) AdminCreate(ctx context.Context, actorUID string, in AdminCreateInput) (*entity.Service, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.ErrMissingField
	}
	if in.Status == "" {
		in.Status = string(entity.ServiceStatusPending)
	}
	if !entity.ValidServiceStatus(in.Status) {
		return nil, errs.ErrInvalidStatus
	}

	var owner *entity.User
	var err error
	switch {
	case in.ProviderUID != "":
		owner, err = s.users.GetByUID(ctx, in.ProviderUID)
	case in.ProviderEmail != "":
		owner, err = s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.ProviderEmail)))
	default:
		return nil, errs.ErrMissingField
	}
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	svc := &entity.Service{
		ID:              uuid.NewString(),
		ProviderID:      owner.UID,
		OwnerEmail:      owner.Email,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Status:          entity.ServiceStatus(in.Status),
		Price:           in.Price,
		Category:        in.Category,
		City:            in.City,
		Area:            in.Area,
		ContactPhone:    in.ContactPhone,
		ContactWhatsapp: in.ContactWhatsapp,
		VideoURL:        in.VideoURL,
		CreatedAt:       now,
		UpdatedAt:       now,
		UpdatedBy:       actorUID,
	}
	if in.ImageURL != "" {
		svc.Images = []entity.Image{{URL: in.ImageURL}}
	}
	if svc.Status == entity.ServiceStatusApproved {
		svc.Approve(actorUID, now)
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info("Service created by admin", map[string]any{
		"serviceId": svc.ID,
		"provider":  owner.UID,
		"actor":     actorUID,
	})
	return svc, nil
}

// adminPatchFields is the allow-list of admin-editable columns and whether
// the value is numeric.
var adminPatchFields = map[string]bool{
	"title":            false,
	"description":      false,
	"category":         false,
	"city":             false,
	"area":             false,
	"contact_phone":    false,
	"contact_whatsapp": false,
	"video_url":        false,
	"price":            true,
	"priority":         true,
	"lat":              true,
	"lng":              true,
}

// AdminUpdateInput is a partial patch of a listing
type AdminUpdateInput struct {
	ID       string
	Fields   map[string]any
	Status   string
	Featured *bool
}

// AdminUpdate applies an allow-listed patch. Unknown fields are dropped, not
// rejected, matching how the console sends whole form state.
func (s *ServiceUseCase) AdminUpdate(ctx context.Context, actorUID string, in AdminUpdateInput) error {
	if in.ID == "" {
		return errs.ErrMissingID
	}

	patch := make(map[string]any, len(in.Fields)+4)
	for k, v := range in.Fields {
		numeric, allowed := adminPatchFields[k]
		if !allowed {
			continue
		}
		if numeric {
			n, ok := toFloat(v)
			if !ok {
				return errs.ErrBadRequest
			}
			patch[k] = n
		} else {
			sv, ok := v.(string)
			if !ok {
				return errs.ErrBadRequest
			}
			patch[k] = sv
		}
	}
	if in.Featured != nil {
		patch["featured"] = *in.Featured
	}
	if in.Status != "" {
		if !entity.ValidServiceStatus(in.Status) {
			return errs.ErrInvalidStatus
		}
		patch["status"] = in.Status
		if entity.ServiceStatus(in.Status) == entity.ServiceStatusApproved {
			patch["approved_at"] = s.timeProvider.Now()
			patch["approved_by"] = actorUID
		} else {
			patch["approved_at"] = nil
			patch["approved_by"] = nil
		}
	}
	if len(patch) == 0 {
		return errs.ErrBadRequest
	}
	patch["updated_at"] = s.timeProvider.Now()
	patch["updated_by"] = actorUID

	return s.services.Merge(ctx, in.ID, patch)
}

// AdminDelete removes one listing.
func (s *ServiceUseCase) AdminDelete(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	return s.services.Delete(ctx, id)
}

// BulkDelete removes many listings through the chunked batch writer and
// returns how many deletes were staged.
func (s *ServiceUseCase) BulkDelete(ctx context.Context, ids []string) (int, error) {
	muts := make([]persistence.Mutation, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		muts = append(muts, persistence.Delete(persistence.CollectionServices, id))
	}
	if len(muts) == 0 {
		return 0, errs.ErrMissingID
	}

	if _, err := s.writer.Commit(ctx, muts); err != nil {
		return 0, err
	}
	s.logger.Info("Services bulk deleted", map[string]any{"count": len(muts)})
	return len(muts), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
