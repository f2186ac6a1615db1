package model

import (
	"time"
)

// ServiceEvent represents the database model for the audit log
type ServiceEvent struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Type           string    `gorm:"not null;size:50;index"`
	ServiceID      string    `gorm:"not null;size:64;index:idx_service_events_reassign,priority:1"`
	FromOwnerID    *string   `gorm:"size:128"`
	FromOwnerEmail *string   `gorm:"size:255"`
	ToOwnerID      string    `gorm:"not null;size:128;index:idx_service_events_reassign,priority:2"`
	ToOwnerEmail   string    `gorm:"size:255"`
	ActorUID       string    `gorm:"not null;size:128"`
	IdempotencyKey *string   `gorm:"size:255;index:idx_service_events_reassign,priority:3"`
	At             time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for ServiceEvent
func (ServiceEvent) TableName() string {
	return "service_events"
}
