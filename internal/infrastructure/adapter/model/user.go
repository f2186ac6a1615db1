package model

import (
	"time"

	"gorm.io/datatypes"
)

// User represents the database model for user profiles
type User struct {
	UID         string `gorm:"primaryKey;size:128"`
	Email       string `gorm:"index;size:255"`
	DisplayName string `gorm:"size:255"`
	Role        string `gorm:"not null;size:20;index"`
	Plan        string `gorm:"size:50"`
	Status      string `gorm:"not null;size:20;index"`
	PricingGate datatypes.JSON
	CreatedAt   time.Time `gorm:"not null;index"`
	DeletedAt   *time.Time
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
