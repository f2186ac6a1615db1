package identity

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the floor for new account passwords
const MinPasswordLength = 6

// VerificationTokenTTL bounds how long an emailed verification link stays valid
const VerificationTokenTTL = 24 * time.Hour

// AccountDirectory implements identity.Directory over the auth_accounts table.
// Password hashes use bcrypt; verification links carry a short-lived signed token.
type AccountDirectory struct {
	db           *gorm.DB
	secret       []byte
	linkBaseURL  string
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAccountDirectory creates a new AccountDirectory instance
func NewAccountDirectory(db *gorm.DB, secret, linkBaseURL string, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountDirectory {
	return &AccountDirectory{
		db:           db,
		secret:       []byte(secret),
		linkBaseURL:  strings.TrimRight(linkBaseURL, "/"),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func accountModelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		UID:           m.UID,
		Email:         m.Email,
		Disabled:      m.Disabled,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
	}
}

// CreateAccount registers a new account and returns it
func (d *AccountDirectory) CreateAccount(ctx context.Context, email, password string, disabled bool) (*entity.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errs.ErrMissingField
	}
	if len(password) < MinPasswordLength {
		return nil, errs.ErrPasswordTooWeak
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %s", errs.ErrInternalServer, err.Error())
	}

	now := d.timeProvider.Now()
	m := model.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Disabled:     disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := d.db.WithContext(ctx).Create(&m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, errs.ErrDuplicateAccount
		}
		d.logger.Error("Failed to create account", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	d.logger.Info("Account created", map[string]any{
		"uid":      m.UID,
		"disabled": disabled,
	})
	return accountModelToEntity(&m), nil
}

// GetAccount retrieves an account by uid
func (d *AccountDirectory) GetAccount(ctx context.Context, uid string) (*entity.Account, error) {
	var m model.Account
	result := d.db.WithContext(ctx).First(&m, "uid = ?", uid)
	if result.Error != nil {
		return nil, d.lookupError(result.Error, uid)
	}
	return accountModelToEntity(&m), nil
}

// GetAccountByEmail retrieves an account by email
func (d *AccountDirectory) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var m model.Account
	result := d.db.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if result.Error != nil {
		return nil, d.lookupError(result.Error, email)
	}
	return accountModelToEntity(&m), nil
}

// SetEmailVerified flips the verification flag
func (d *AccountDirectory) SetEmailVerified(ctx context.Context, uid string, verified bool) error {
	return d.mergeAccount(ctx, uid, map[string]any{"email_verified": verified})
}

// SetDisabled enables or disables sign-in for the account
func (d *AccountDirectory) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	return d.mergeAccount(ctx, uid, map[string]any{"disabled": disabled})
}

// DeleteAccount removes the account; deleting a missing account is not an error
func (d *AccountDirectory) DeleteAccount(ctx context.Context, uid string) error {
	result := d.db.WithContext(ctx).Delete(&model.Account{}, "uid = ?", uid)
	if result.Error != nil {
		d.logger.Error("Failed to delete account", map[string]any{
			"uid":   uid,
			"error": result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return nil
}

// VerificationLink builds a signed email-verification link for the address
func (d *AccountDirectory) VerificationLink(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errs.ErrMissingField
	}
	if d.linkBaseURL == "" {
		return "", fmt.Errorf("%w: verification link base URL is not configured", errs.ErrInternalServer)
	}

	acct, err := d.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	now := d.timeProvider.Now()
	claims := jwt.RegisteredClaims{
		Subject:   acct.UID,
		Audience:  jwt.ClaimStrings{"email-verification"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(VerificationTokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
	if err != nil {
		return "", fmt.Errorf("%w: signing verification token: %s", errs.ErrInternalServer, err.Error())
	}

	return fmt.Sprintf("%s/verify-email?token=%s&email=%s",
		d.linkBaseURL, token, url.QueryEscape(email)), nil
}

// VerifyPassword checks a password against the stored hash, for login tooling
func (d *AccountDirectory) VerifyPassword(ctx context.Context, email, password string) (*entity.Account, error) {
	var m model.Account
	result := d.db.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if result.Error != nil {
		return nil, d.lookupError(result.Error, email)
	}
	if m.Disabled {
		return nil, errs.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrUnauthenticated
	}
	return accountModelToEntity(&m), nil
}

func (d *AccountDirectory) mergeAccount(ctx context.Context, uid string, fields map[string]any) error {
	fields["updated_at"] = d.timeProvider.Now()
	result := d.db.WithContext(ctx).Model(&model.Account{}).
		Where("uid = ?", uid).
		Updates(fields)
	if result.Error != nil {
		d.logger.Error("Failed to update account", map[string]any{
			"uid":   uid,
			"error": result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

func (d *AccountDirectory) lookupError(err error, key string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}
	d.logger.Error("Database error when looking up account", map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}
