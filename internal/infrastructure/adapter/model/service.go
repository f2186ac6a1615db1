package model

import (
	"time"

	"gorm.io/datatypes"
)

// Service represents the database model for service listings.
// DemotedForLock marks rows pushed to pending by a lock cascade so the
// release sweep can tell them apart from manually rejected listings.
type Service struct {
	ID              string `gorm:"primaryKey;size:64"`
	ProviderID      string `gorm:"not null;size:128;index:idx_services_provider_status,priority:1"`
	OwnerEmail      string `gorm:"size:255"`
	Title           string `gorm:"not null;size:255"`
	Description     string `gorm:"type:text"`
	Status          string `gorm:"not null;size:20;index:idx_services_provider_status,priority:2"`
	DemotedForLock  bool   `gorm:"not null;default:false;index"`
	ApprovedAt      *time.Time
	ApprovedBy      *string `gorm:"size:128"`
	Price           *float64
	Category        string `gorm:"size:100"`
	City            string `gorm:"size:100"`
	Area            string `gorm:"size:100"`
	ContactPhone    string `gorm:"size:50"`
	ContactWhatsapp string `gorm:"size:50"`
	VideoURL        string `gorm:"size:500"`
	Featured        bool   `gorm:"not null;default:false"`
	Priority        int    `gorm:"not null;default:0"`
	Lat             *float64
	Lng             *float64
	Images          datatypes.JSON
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`
	UpdatedBy       string    `gorm:"size:128"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}
