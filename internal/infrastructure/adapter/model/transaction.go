package model

import (
	"time"
)

// Transaction represents the database model for subscription payments
type Transaction struct {
	ID         string    `gorm:"primaryKey;size:64"`
	UID        string    `gorm:"not null;size:128;index"`
	PlanID     string    `gorm:"not null;size:50"`
	Amount     float64   `gorm:"not null"`
	Currency   string    `gorm:"not null;size:10"`
	Provider   string    `gorm:"size:50"`
	Status     string    `gorm:"not null;size:20;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
	PaidAt     *time.Time
	ApprovedBy *string `gorm:"size:128"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
