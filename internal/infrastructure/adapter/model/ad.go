package model

import (
	"time"
)

// Ad represents the database model for promotional banners
type Ad struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Text       string    `gorm:"size:500"`
	TextAr     string    `gorm:"size:500"`
	Href       string    `gorm:"size:500"`
	LinkURL    string    `gorm:"size:500"`
	ImageURL   string    `gorm:"size:500"`
	Title      string    `gorm:"size:255"`
	SaleItemID *string   `gorm:"size:64"`
	Color      string    `gorm:"not null;size:20"`
	Active     bool      `gorm:"not null;default:true"`
	Priority   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for Ad
func (Ad) TableName() string {
	return "ads"
}
