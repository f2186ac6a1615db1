package model

import (
	"time"

	"gorm.io/datatypes"
)

// Known settings document keys
const (
	SettingsDocFeatures    = "features"
	SettingsDocHome        = "home"
	SettingsDocStudentBank = "student_bank"
)

// SettingsDoc represents one singleton configuration document. The console
// treats these as schemaless documents, so the payload stays JSON.
type SettingsDoc struct {
	ID        string         `gorm:"primaryKey;size:50"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	UpdatedBy string         `gorm:"size:128"`
}

// TableName specifies the table name for SettingsDoc
func (SettingsDoc) TableName() string {
	return "settings_docs"
}
