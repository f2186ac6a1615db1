package entity

import "time"

// Role is the marketplace role recorded on a user profile
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleProvider Role = "provider"
	RoleSeeker   Role = "seeker"
)

// ValidRole reports whether r is one of the assignable roles
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleOwner, RoleAdmin, RoleProvider, RoleSeeker:
		return true
	}
	return false
}

// IsModerator reports whether the role may use the console
func (r Role) IsModerator() bool {
	return r == RoleOwner || r == RoleAdmin
}

// UserStatus is the account activity state
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// ValidUserStatus reports whether s is an allowed account state
func ValidUserStatus(s string) bool {
	return UserStatus(s) == UserStatusActive || UserStatus(s) == UserStatusDisabled
}

// Pricing gate override modes
const (
	GateModeForceShow = "force_show"
	GateModeForceHide = "force_hide"
)

// PricingGate is a per-user override of the global pricing lock.
// A nil Mode means no override; force_show locks the user's listings behind
// the pricing wall, force_hide exempts them.
type PricingGate struct {
	Mode               *string    `json:"mode"`
	ShowAt             *time.Time `json:"showAt"`
	EnforceAfterMonths *int       `json:"enforceAfterMonths"`
}

// User represents a marketplace user profile document
type User struct {
	UID         string
	Email       string
	DisplayName string
	Role        Role
	Plan        string
	Status      UserStatus
	PricingGate *PricingGate
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// IsProvider reports whether the profile belongs to a service provider
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// Name returns the best available display name for lists
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		for i := 0; i < len(u.Email); i++ {
			if u.Email[i] == '@' {
				return u.Email[:i]
			}
		}
		return u.Email
	}
	return ""
}
