package entity

import "time"

// ServiceStatus is the moderation state of a service listing
type ServiceStatus string

const (
	ServiceStatusPending  ServiceStatus = "pending"
	ServiceStatusApproved ServiceStatus = "approved"
	ServiceStatusRejected ServiceStatus = "rejected"
)

// ValidServiceStatus reports whether s is one of the moderation states
func ValidServiceStatus(s string) bool {
	switch ServiceStatus(s) {
	case ServiceStatusPending, ServiceStatusApproved, ServiceStatusRejected:
		return true
	}
	return false
}

// Image is a single stored image reference on a listing
type Image struct {
	URL string `json:"url"`
}

// Service represents a provider's service listing subject to moderation.
//
// DemotedForLock distinguishes a pending status produced by a lock cascade from
// one produced by manual moderation: only cascade-demoted records are swept back
// to approved when the lock releases.
type Service struct {
	ID              string
	ProviderID      string
	OwnerEmail      string
	Title           string
	Description     string
	Status          ServiceStatus
	DemotedForLock  bool
	ApprovedAt      *time.Time
	ApprovedBy      *string
	Price           *float64
	Category        string
	City            string
	Area            string
	ContactPhone    string
	ContactWhatsapp string
	VideoURL        string
	Featured        bool
	Priority        int
	Lat             *float64
	Lng             *float64
	Images          []Image
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UpdatedBy       string
}

// Approve sets the approval audit fields
func (s *Service) Approve(actorUID string, at time.Time) {
	s.Status = ServiceStatusApproved
	s.ApprovedAt = &at
	s.ApprovedBy = &actorUID
}

// FirstImageURL returns the primary image URL, or empty when none stored
func (s *Service) FirstImageURL() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[0].URL
}
