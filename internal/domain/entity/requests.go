package entity

import "time"

// SlotRequest is a provider's request for an additional paid service slot
type SlotRequest struct {
	ID                string
	UID               string
	Email             string
	DisplayName       string
	Role              Role
	Status            ServiceStatus
	Notes             string
	AdminNotes        string
	Paid              bool
	Consumed          bool
	ConsumedServiceID *string
	CreatedAt         time.Time
	ApprovedAt        *time.Time
	ApprovedBy        *string
}

// DeletionRequest is a provider's request to remove one of their services.
// PriorStatus lets a rejected request restore the listing where it was.
type DeletionRequest struct {
	ID              string
	ServiceID       string
	UID             string
	Email           string
	DisplayName     string
	Status          ServiceStatus
	PriorStatus     *string
	Reason          string
	ServiceTitle    string
	ServiceCategory string
	CreatedAt       time.Time
	ApprovedAt      *time.Time
	ApprovedBy      *string
}
