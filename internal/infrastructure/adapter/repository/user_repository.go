package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) (*entity.User, error) {
	u := &entity.User{
		UID:         m.UID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        entity.Role(m.Role),
		Plan:        m.Plan,
		Status:      entity.UserStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		DeletedAt:   m.DeletedAt,
	}
	if len(m.PricingGate) > 0 && string(m.PricingGate) != "null" {
		var gate entity.PricingGate
		if err := json.Unmarshal(m.PricingGate, &gate); err != nil {
			return nil, fmt.Errorf("%w: decoding pricing gate: %s", errs.ErrInternalServer, err.Error())
		}
		u.PricingGate = &gate
	}
	return u, nil
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, uid string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"uid":   uid,
		"error": err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User profile not found", map[string]any{
			"uid": uid,
		})
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateAccount
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUID retrieves a profile by uid
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	var m model.User
	result := r.db.WithContext(ctx).First(&m, "uid = ?", uid)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, uid)
	}
	return userModelToEntity(&m)
}

// GetByEmail retrieves a profile by exact email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m model.User
	result := r.db.WithContext(ctx).First(&m, "LOWER(email) = ?", strings.ToLower(email))
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, email)
	}
	return userModelToEntity(&m)
}

// Create stores a new profile document
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	m := model.User{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Plan:        u.Plan,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		DeletedAt:   u.DeletedAt,
	}
	if u.PricingGate != nil {
		b, err := json.Marshal(u.PricingGate)
		if err != nil {
			return fmt.Errorf("%w: encoding pricing gate: %s", errs.ErrInternalServer, err.Error())
		}
		m.PricingGate = b
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, u.UID)
	}

	r.logger.Info("User profile created", map[string]any{
		"uid":  u.UID,
		"role": string(u.Role),
	})
	return nil
}

// Merge applies a partial field update, creating the profile when absent
func (r *UserRepository) Merge(ctx context.Context, uid string, fields map[string]any) error {
	normalized, err := normalizeWriteFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(normalized)
	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, uid)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No row to merge into, create a sparse profile instead
	create := make(map[string]any, len(normalized)+2)
	for k, v := range normalized {
		create[k] = v
	}
	create["uid"] = uid
	if _, ok := create["created_at"]; !ok {
		create["created_at"] = r.timeProvider.Now()
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).Create(create).Error; err != nil {
		return r.handleDatabaseError("creating user during merge", err, uid)
	}
	return nil
}

// List returns profiles matching the params
func (r *UserRepository) List(ctx context.Context, p persistence.UserListParams) ([]*entity.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if p.Role != "" {
		q = q.Where("role = ?", p.Role)
	}
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}
	if p.EmailPrefix != "" {
		q = q.Where("LOWER(email) LIKE ?", strings.ToLower(p.EmailPrefix)+"%")
	}

	if p.OrderByEmail {
		q = q.Order("email ASC")
		if p.Cursor != nil && p.Cursor.Email != "" {
			q = q.Where("email > ?", p.Cursor.Email)
		}
	} else {
		q = q.Order("created_at DESC")
		if p.Cursor != nil && p.Cursor.CreatedAt != nil {
			q = q.Where("created_at < ?", *p.Cursor.CreatedAt)
		}
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}

	var rows []model.User
	if err := q.Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing users", err, "")
	}

	out := make([]*entity.User, 0, len(rows))
	for i := range rows {
		u, err := userModelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// NamesByUID resolves display names for a set of uids
func (r *UserRepository) NamesByUID(ctx context.Context, uids []string) (map[string]string, error) {
	if len(uids) == 0 {
		return map[string]string{}, nil
	}

	var rows []model.User
	err := r.db.WithContext(ctx).
		Select("uid", "display_name", "email").
		Where("uid IN ?", uids).
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("resolving user names", err, "")
	}

	names := make(map[string]string, len(rows))
	for i := range rows {
		u := entity.User{
			UID:         rows[i].UID,
			DisplayName: rows[i].DisplayName,
			Email:       rows[i].Email,
		}
		names[u.UID] = u.Name()
	}
	return names, nil
}
