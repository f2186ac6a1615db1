package dto

import "time"

// AdResponse represents one promotional banner
type AdResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	TextAr     string    `json:"textAr,omitempty"`
	Href       string    `json:"href,omitempty"`
	LinkURL    string    `json:"linkUrl,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Title      string    `json:"title,omitempty"`
	SaleItemID *string   `json:"saleItemId,omitempty"`
	Color      string    `json:"color"`
	Active     bool      `json:"active"`
	Priority   int       `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdListResponse wraps the banner list
type AdListResponse struct {
	Ads []AdResponse `json:"ads"`
}

// CreateAdRequest creates a new banner
type CreateAdRequest struct {
	Text       string `json:"text"`
	TextAr     string `json:"textAr"`
	Href       string `json:"href"`
	LinkURL    string `json:"linkUrl"`
	ImageURL   string `json:"imageUrl"`
	Title      string `json:"title"`
	SaleItemID string `json:"saleItemId"`
	Color      string `json:"color"`
	Active     bool   `json:"active"`
	Priority   int    `json:"priority"`
}
