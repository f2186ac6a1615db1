package entity

import "time"

// SaleItemStatus is the moderation/lifecycle state of a sale item
type SaleItemStatus string

const (
	SaleItemStatusPending  SaleItemStatus = "pending"
	SaleItemStatusApproved SaleItemStatus = "approved"
	SaleItemStatusSold     SaleItemStatus = "sold"
	SaleItemStatusHidden   SaleItemStatus = "hidden"
)

// ValidSaleItemStatus reports whether s is an allowed sale item state
func ValidSaleItemStatus(s string) bool {
	switch SaleItemStatus(s) {
	case SaleItemStatusPending, SaleItemStatusApproved, SaleItemStatusSold, SaleItemStatusHidden:
		return true
	}
	return false
}

// SaleItem represents a second-hand item listing, structurally parallel to Service
type SaleItem struct {
	ID           string
	ProviderID   string
	Title        string
	Status       SaleItemStatus
	Price        *float64
	City         string
	Condition    string
	TradeEnabled bool
	Tags         []string
	Images       []Image
	ApprovedAt   *time.Time
	ApprovedBy   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FirstImageURL returns the primary image URL, or empty when none stored
func (s *SaleItem) FirstImageURL() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[0].URL
}
