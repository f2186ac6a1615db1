package model

import (
	"time"
)

// StudentResource represents the database model for student bank uploads
type StudentResource struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Title       string    `gorm:"not null;size:255"`
	Description string    `gorm:"type:text"`
	University  string    `gorm:"size:255;index"`
	Course      string    `gorm:"size:255"`
	Year        string    `gorm:"size:20"`
	Type        string    `gorm:"not null;size:20;index"`
	Language    string    `gorm:"not null;size:10"`
	Status      string    `gorm:"not null;size:20;index"`
	PdfKey      string    `gorm:"size:500"`
	DriveLink   string    `gorm:"size:500"`
	DriveFileID string    `gorm:"size:128"`
	UploaderID  string    `gorm:"size:128;index"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for StudentResource
func (StudentResource) TableName() string {
	return "student_resources"
}
