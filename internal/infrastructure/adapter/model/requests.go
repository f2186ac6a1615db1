package model

import (
	"time"
)

// SlotRequest represents the database model for paid slot requests
type SlotRequest struct {
	ID                string    `gorm:"primaryKey;size:64"`
	UID               string    `gorm:"not null;size:128;index"`
	Email             string    `gorm:"size:255"`
	DisplayName       string    `gorm:"size:255"`
	Role              string    `gorm:"size:20"`
	Status            string    `gorm:"not null;size:20;index"`
	Notes             string    `gorm:"type:text"`
	AdminNotes        string    `gorm:"type:text"`
	Paid              bool      `gorm:"not null;default:false"`
	Consumed          bool      `gorm:"not null;default:false"`
	ConsumedServiceID *string   `gorm:"size:64"`
	CreatedAt         time.Time `gorm:"not null;index"`
	ApprovedAt        *time.Time
	ApprovedBy        *string `gorm:"size:128"`
}

// TableName specifies the table name for SlotRequest
func (SlotRequest) TableName() string {
	return "slot_requests"
}

// DeletionRequest represents the database model for service deletion requests
type DeletionRequest struct {
	ID              string    `gorm:"primaryKey;size:64"`
	ServiceID       string    `gorm:"not null;size:64;index"`
	UID             string    `gorm:"not null;size:128;index"`
	Email           string    `gorm:"size:255"`
	DisplayName     string    `gorm:"size:255"`
	Status          string    `gorm:"not null;size:20;index"`
	PriorStatus     *string   `gorm:"size:20"`
	Reason          string    `gorm:"type:text"`
	ServiceTitle    string    `gorm:"size:255"`
	ServiceCategory string    `gorm:"size:100"`
	CreatedAt       time.Time `gorm:"not null;index"`
	ApprovedAt      *time.Time
	ApprovedBy      *string `gorm:"size:128"`
}

// TableName specifies the table name for DeletionRequest
func (DeletionRequest) TableName() string {
	return "deletion_requests"
}
