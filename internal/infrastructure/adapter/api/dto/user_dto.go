package dto

import (
	"encoding/json"
	"time"
)

// UserListCursor is the opaque paging position returned by a previous page
type UserListCursor struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Email     string     `json:"email,omitempty"`
}

// UserListRequest narrows and pages the user listing
type UserListRequest struct {
	Role        string          `json:"role"`
	Status      string          `json:"status"`
	EmailPrefix string          `json:"emailPrefix"`
	OrderBy     string          `json:"orderBy"`
	Limit       int             `json:"limit"`
	Cursor      *UserListCursor `json:"cursor"`
}

// PricingGateView is the per-user pricing override on the wire
type PricingGateView struct {
	Mode               *string    `json:"mode"`
	ShowAt             *time.Time `json:"showAt"`
	EnforceAfterMonths *int       `json:"enforceAfterMonths"`
}

// UserResponse represents one user profile row in the console
type UserResponse struct {
	UID           string           `json:"uid"`
	Email         string           `json:"email"`
	DisplayName   string           `json:"displayName"`
	Role          string           `json:"role"`
	Plan          string           `json:"plan"`
	Status        string           `json:"status"`
	EmailVerified bool             `json:"emailVerified"`
	PricingGate   *PricingGateView `json:"pricingGate,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// UserListResponse is a page of users plus the cursor for the next page
type UserListResponse struct {
	Users      []UserResponse  `json:"users"`
	NextCursor *UserListCursor `json:"nextCursor,omitempty"`
}

// UserGetRequest looks a user up by uid or email
type UserGetRequest struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// CreateUserRequest registers a directory account plus a profile document
type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Plan        string `json:"plan"`
}

// UIDRequest addresses a user by uid only
type UIDRequest struct {
	UID string `json:"uid"`
}

// SetUserStatusRequest flips a user's account state
type SetUserStatusRequest struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

// SetUserStatusResponse reports the new state and any cascade fallout
type SetUserStatusResponse struct {
	OK              bool   `json:"ok"`
	Status          string `json:"status"`
	UpdatedServices int    `json:"updatedServices"`
}

// SetPricingGateRequest patches the per-user pricing override.
// The tri-state fields distinguish absent (leave as is), null (clear)
// and a concrete value, so they arrive as raw JSON.
type SetPricingGateRequest struct {
	UID                string          `json:"uid"`
	Mode               json.RawMessage `json:"mode"`
	ShowAt             json.RawMessage `json:"showAt"`
	EnforceAfterMonths json.RawMessage `json:"enforceAfterMonths"`
}

// SetPricingGateResponse reports the stored gate and any cascade fallout
type SetPricingGateResponse struct {
	OK              bool             `json:"ok"`
	PricingGate     *PricingGateView `json:"pricingGate"`
	UpdatedServices int              `json:"updatedServices"`
}

// SetEmailVerifiedRequest flips the directory verification flag
type SetEmailVerifiedRequest struct {
	UID      string `json:"uid"`
	Verified bool   `json:"verified"`
}

// VerificationLinkRequest resolves the target address by uid or email
type VerificationLinkRequest struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// VerificationLinkResponse carries the signed verification link
type VerificationLinkResponse struct {
	OK   bool   `json:"ok"`
	Link string `json:"link"`
}
