package entity

import "time"

// Account is an identity-directory record, distinct from the User profile
// document: the directory owns credentials and email verification, the profile
// owns marketplace role and status.
type Account struct {
	UID           string
	Email         string
	Disabled      bool
	EmailVerified bool
	CreatedAt     time.Time
}
