package resource

import (
	"context"
	"strings"
	"time"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/port/storage"
)

const (
	// ListLimit caps one page of the student bank admin list
	ListLimit = 500

	// KeyPrefix is the only object store prefix signed links are issued for
	KeyPrefix = "student-resources/"

	// SignedURLTTL bounds how long a download link stays valid
	SignedURLTTL = 15 * time.Minute
)

// ResourceUseCase manages the student bank: uploaded study documents, their
// moderation and time-limited download links.
type ResourceUseCase struct {
	resources    persistence.ResourceRepository
	settings     persistence.SettingsRepository
	store        storage.ObjectStore
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewResourceUseCase creates a new ResourceUseCase
func NewResourceUseCase(
	resources persistence.ResourceRepository,
	settings persistence.SettingsRepository,
	store storage.ObjectStore,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *ResourceUseCase {
	return &ResourceUseCase{
		resources:    resources,
		settings:     settings,
		store:        store,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns resources matching the filter. The free-text query matches
// title, university and course substrings case-insensitively.
func (r *ResourceUseCase) List(ctx context.Context, query, typ, language string, limit int) ([]*entity.StudentResource, error) {
	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}
	if typ != "" && !entity.ValidResourceType(typ) {
		return nil, errs.ErrBadRequest
	}
	if language != "" && !entity.ValidResourceLanguage(language) {
		return nil, errs.ErrBadRequest
	}

	rows, err := r.resources.List(ctx, persistence.ResourceFilter{Type: typ, Language: language, Limit: limit})
	if err != nil {
		return nil, err
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Title), q) ||
				strings.Contains(strings.ToLower(row.University), q) ||
				strings.Contains(strings.ToLower(row.Course), q) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return rows, nil
}

// resourcePatch validates one editable column
func resourcePatch(k string, v any) (any, error) {
	switch k {
	case "title", "description", "university", "course", "year":
		s, ok := v.(string)
		if !ok {
			return nil, errs.ErrBadRequest
		}
		return s, nil
	case "type":
		s, ok := v.(string)
		if !ok || !entity.ValidResourceType(s) {
			return nil, errs.ErrBadRequest
		}
		return s, nil
	case "language":
		s, ok := v.(string)
		if !ok || !entity.ValidResourceLanguage(s) {
			return nil, errs.ErrBadRequest
		}
		return s, nil
	case "status":
		s, ok := v.(string)
		if !ok || !entity.ValidServiceStatus(s) {
			return nil, errs.ErrInvalidStatus
		}
		return s, nil
	}
	return nil, nil
}

// Update applies an allow-listed patch to one resource.
func (r *ResourceUseCase) Update(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return errs.ErrMissingID
	}

	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		clean, err := resourcePatch(k, v)
		if err != nil {
			return err
		}
		if clean == nil {
			continue
		}
		patch[k] = clean
	}
	if len(patch) == 0 {
		return errs.ErrBadRequest
	}
	patch["updated_at"] = r.timeProvider.Now()

	return r.resources.Merge(ctx, id, patch)
}

// Delete removes a resource document. The stored file is left for the
// retention job.
func (r *ResourceUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	return r.resources.Delete(ctx, id)
}

// DownloadLink is the result of a signed url request
type DownloadLink struct {
	URL    string
	Source string // "s3", "drive"
}

// SignedURL returns a download link for the resource's file: a presigned
// object store GET when a pdf key is stored, otherwise the external drive
// link. Keys outside the student bank prefix are refused.
func (r *ResourceUseCase) SignedURL(ctx context.Context, id string) (*DownloadLink, error) {
	if id == "" {
		return nil, errs.ErrMissingID
	}

	res, err := r.resources.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if res.PdfKey != "" {
		if !strings.HasPrefix(res.PdfKey, KeyPrefix) {
			return nil, errs.ErrInvalidObjectKey
		}
		url, err := r.store.PresignGet(ctx, res.PdfKey, SignedURLTTL)
		if err != nil {
			return nil, err
		}
		return &DownloadLink{URL: url, Source: "s3"}, nil
	}

	if res.DriveLink != "" {
		return &DownloadLink{URL: res.DriveLink, Source: "drive"}, nil
	}
	if res.DriveFileID != "" {
		return &DownloadLink{URL: "https://drive.google.com/file/d/" + res.DriveFileID + "/view", Source: "drive"}, nil
	}
	return nil, errs.ErrNoFile
}

// GetSettings returns the student bank settings, defaulting to uploads
// enabled when the document is absent.
func (r *ResourceUseCase) GetSettings(ctx context.Context) (*entity.StudentBankSettings, error) {
	s, err := r.settings.GetStudentBank(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &entity.StudentBankSettings{UploadsEnabled: true}, nil
	}
	return s, nil
}

// SaveSettings persists the uploads toggle with audit fields.
func (r *ResourceUseCase) SaveSettings(ctx context.Context, actorUID string, uploadsEnabled bool) (*entity.StudentBankSettings, error) {
	now := r.timeProvider.Now()
	if err := r.settings.MergeStudentBank(ctx, map[string]any{
		"uploads_enabled": uploadsEnabled,
		"updated_at":      now,
		"updated_by":      actorUID,
	}); err != nil {
		return nil, err
	}
	return &entity.StudentBankSettings{UploadsEnabled: uploadsEnabled, UpdatedAt: &now, UpdatedBy: actorUID}, nil
}
