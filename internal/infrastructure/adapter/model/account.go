package model

import (
	"time"
)

// Account represents the database model for identity accounts.
// Credentials live here, never on the user profile row.
type Account struct {
	UID           string    `gorm:"primaryKey;size:128"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash  string    `gorm:"not null;size:255"`
	Disabled      bool      `gorm:"not null;default:false"`
	EmailVerified bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "auth_accounts"
}
