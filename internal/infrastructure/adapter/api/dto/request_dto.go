package dto

import "time"

// SlotRequestResponse represents one extra-slot request row
type SlotRequestResponse struct {
	ID                string     `json:"id"`
	UID               string     `json:"uid"`
	Email             string     `json:"email"`
	DisplayName       string     `json:"displayName,omitempty"`
	Role              string     `json:"role,omitempty"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	AdminNotes        string     `json:"adminNotes,omitempty"`
	Paid              bool       `json:"paid"`
	Consumed          bool       `json:"consumed"`
	ConsumedServiceID *string    `json:"consumedServiceId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy        *string    `json:"approvedBy,omitempty"`
}

// SlotRequestListResponse wraps a slot request listing page
type SlotRequestListResponse struct {
	Requests []SlotRequestResponse `json:"requests"`
}

// UpdateSlotRequest patches one slot request; nil fields are left untouched
type UpdateSlotRequest struct {
	ID     string  `json:"id"`
	Status *string `json:"status"`
	Paid   *bool   `json:"paid"`
	Notes  *string `json:"notes"`
}

// DeletionRequestResponse represents one service deletion request row
type DeletionRequestResponse struct {
	ID              string     `json:"id"`
	ServiceID       string     `json:"serviceId"`
	UID             string     `json:"uid"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"displayName,omitempty"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	ServiceTitle    string     `json:"serviceTitle,omitempty"`
	ServiceCategory string     `json:"serviceCategory,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
}

// DeletionRequestListResponse wraps a deletion request listing page
type DeletionRequestListResponse struct {
	Requests []DeletionRequestResponse `json:"requests"`
}

// DecideDeletionRequest resolves one deletion request
type DecideDeletionRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// OKResponse is the minimal success acknowledgement
type OKResponse struct {
	OK bool `json:"ok"`
}
