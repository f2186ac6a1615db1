package dto

import "time"

// ServiceResponse represents one service listing row in the console
type ServiceResponse struct {
	ID              string     `json:"id"`
	ProviderID      string     `json:"providerId"`
	ProviderName    string     `json:"providerName,omitempty"`
	OwnerEmail      string     `json:"ownerEmail,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	DemotedForLock  bool       `json:"demotedForLock,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	Category        string     `json:"category,omitempty"`
	City            string     `json:"city,omitempty"`
	Area            string     `json:"area,omitempty"`
	ContactPhone    string     `json:"contactPhone,omitempty"`
	ContactWhatsapp string     `json:"contactWhatsapp,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	VideoURL        string     `json:"videoUrl,omitempty"`
	Featured        bool       `json:"featured"`
	Priority        int        `json:"priority"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ServiceListResponse wraps a service listing page
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// UpdateServiceStatusRequest moves one listing between moderation states
type UpdateServiceStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AdminCreateServiceRequest creates a listing on behalf of a provider
type AdminCreateServiceRequest struct {
	ProviderUID     string   `json:"providerUid"`
	ProviderEmail   string   `json:"providerEmail"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	Price           *float64 `json:"price"`
	Category        string   `json:"category"`
	City            string   `json:"city"`
	Area            string   `json:"area"`
	ContactPhone    string   `json:"contactPhone"`
	ContactWhatsapp string   `json:"contactWhatsapp"`
	ImageURL        string   `json:"imageUrl"`
	VideoURL        string   `json:"videoUrl"`
}

// IDRequest addresses a document by id only
type IDRequest struct {
	ID string `json:"id"`
}

// BulkDeleteRequest addresses several documents at once
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports how many documents were removed
type BulkDeleteResponse struct {
	OK      bool `json:"ok"`
	Deleted int  `json:"deleted"`
}

// ReassignOwnerRequest moves listings to another provider
type ReassignOwnerRequest struct {
	IDs            []string `json:"ids"`
	TargetEmail    string   `json:"targetEmail"`
	AssignToSelf   bool     `json:"assignToSelf"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// ReassignOutcome is the per-listing result of a reassignment
type ReassignOutcome struct {
	ID     string `json:"id"`
	Result string `json:"result"`
}

// ReassignOwnerResponse summarizes a reassignment run
type ReassignOwnerResponse struct {
	OK          bool              `json:"ok"`
	Updated     int               `json:"updated"`
	NotFound    int               `json:"notFound"`
	Skipped     int               `json:"skipped"`
	Results     []ReassignOutcome `json:"results"`
	TargetUID   string            `json:"targetUid"`
	TargetEmail string            `json:"targetEmail"`
}
