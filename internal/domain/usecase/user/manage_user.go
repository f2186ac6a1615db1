package user

import (
	"context"
	"strings"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
)

// CreateUserInput carries the fields of an admin user creation
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Status      string
	Plan        string
}

// Create registers a directory account and its profile document. The account
// is created disabled when the requested status is disabled, so sign-in is
// blocked from the first moment.
func (u *UserUseCase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, errs.ErrMissingField
	}
	if in.Role == "" {
		in.Role = string(entity.RoleSeeker)
	}
	if !entity.ValidRole(in.Role) {
		return nil, errs.ErrInvalidRole
	}
	if in.Status == "" {
		in.Status = string(entity.UserStatusActive)
	}
	if !entity.ValidUserStatus(in.Status) {
		return nil, errs.ErrInvalidStatus
	}
	if in.Plan == "" {
		in.Plan = "free"
	}

	disabled := entity.UserStatus(in.Status) == entity.UserStatusDisabled
	acct, err := u.directory.CreateAccount(ctx, email, in.Password, disabled)
	if err != nil {
		return nil, err
	}

	profile := &entity.User{
		UID:         acct.UID,
		Email:       email,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Role:        entity.Role(in.Role),
		Plan:        in.Plan,
		Status:      entity.UserStatus(in.Status),
		CreatedAt:   u.timeProvider.Now(),
	}
	if err := u.users.Create(ctx, profile); err != nil {
		u.logger.Error("Account created but profile write failed", map[string]any{
			"uid":   acct.UID,
			"email": email,
			"error": err.Error(),
		})
		return nil, err
	}

	u.logger.Info("User created", map[string]any{
		"uid":  acct.UID,
		"role": in.Role,
	})
	return profile, nil
}

// Delete removes the directory account and soft-deletes the profile. The
// directory delete is best effort so a half-removed account can be retried.
func (u *UserUseCase) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return errs.ErrMissingID
	}

	if err := u.directory.DeleteAccount(ctx, uid); err != nil {
		u.logger.Warn("Directory delete failed, continuing with profile", map[string]any{
			"uid":   uid,
			"error": err.Error(),
		})
	}

	now := u.timeProvider.Now()
	if err := u.users.Merge(ctx, uid, map[string]any{
		"status":     string(entity.UserStatusDisabled),
		"deleted_at": now,
	}); err != nil {
		return err
	}

	u.logger.Info("User deleted", map[string]any{"uid": uid})
	return nil
}

// SetEmailVerified flips the directory verification flag.
func (u *UserUseCase) SetEmailVerified(ctx context.Context, uid string, verified bool) error {
	if uid == "" {
		return errs.ErrMissingID
	}
	return u.directory.SetEmailVerified(ctx, uid, verified)
}

// GenerateVerificationLink resolves the target email (explicit input first,
// then directory, then profile document) and returns a signed verification
// link for it.
func (u *UserUseCase) GenerateVerificationLink(ctx context.Context, uid, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" && uid != "" {
		if acct, err := u.directory.GetAccount(ctx, uid); err == nil && acct != nil {
			email = acct.Email
		}
	}
	if email == "" && uid != "" {
		profile, err := u.users.GetByUID(ctx, uid)
		if err != nil {
			return "", err
		}
		email = profile.Email
	}
	if email == "" {
		return "", errs.ErrMissingField
	}
	return u.directory.VerificationLink(ctx, email)
}
