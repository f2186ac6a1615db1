package dto

import "time"

// SaleItemResponse represents one sale item row in the console
type SaleItemResponse struct {
	ID           string     `json:"id"`
	ProviderID   string     `json:"providerId"`
	ProviderName string     `json:"providerName,omitempty"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Price        *float64   `json:"price,omitempty"`
	City         string     `json:"city,omitempty"`
	Condition    string     `json:"condition,omitempty"`
	TradeEnabled bool       `json:"tradeEnabled"`
	Tags         []string   `json:"tags,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SaleListResponse wraps a sale item listing page
type SaleListResponse struct {
	Items []SaleItemResponse `json:"items"`
}

// UpdateSaleStatusRequest moves one sale item between states
type UpdateSaleStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ProviderRefResponse is a provider id with an optional resolved name
type ProviderRefResponse struct {
	UID  string `json:"uid"`
	Name string `json:"name,omitempty"`
}

// ProviderIDsResponse wraps the distinct provider list
type ProviderIDsResponse struct {
	Providers []ProviderRefResponse `json:"providers"`
}
