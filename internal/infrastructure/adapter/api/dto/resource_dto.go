package dto

import "time"

// ResourceResponse represents one student bank document row
type ResourceResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	University  string    `json:"university,omitempty"`
	Course      string    `json:"course,omitempty"`
	Year        string    `json:"year,omitempty"`
	Type        string    `json:"type"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	HasFile     bool      `json:"hasFile"`
	UploaderID  string    `json:"uploaderId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ResourceListResponse wraps a student bank listing page
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// SignedURLResponse carries a time-limited download link
type SignedURLResponse struct {
	OK     bool   `json:"ok"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// StudentBankSettingsResponse reports the upload gate state
type StudentBankSettingsResponse struct {
	UploadsEnabled bool       `json:"uploadsEnabled"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy      string     `json:"updatedBy,omitempty"`
}

// SaveStudentBankSettingsRequest toggles the upload gate
type SaveStudentBankSettingsRequest struct {
	UploadsEnabled bool `json:"uploadsEnabled"`
}
