package model

import (
	"time"

	"gorm.io/datatypes"
)

// SaleItem represents the database model for second-hand item listings
type SaleItem struct {
	ID           string `gorm:"primaryKey;size:64"`
	ProviderID   string `gorm:"not null;size:128;index"`
	Title        string `gorm:"not null;size:255"`
	Status       string `gorm:"not null;size:20;index"`
	Price        *float64
	City         string `gorm:"size:100"`
	Condition    string `gorm:"size:50"`
	TradeEnabled bool   `gorm:"not null;default:false"`
	Tags         datatypes.JSON
	Images       datatypes.JSON
	ApprovedAt   *time.Time
	ApprovedBy   *string   `gorm:"size:128"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for SaleItem
func (SaleItem) TableName() string {
	return "sale_items"
}
