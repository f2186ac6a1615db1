package entity

import "time"

// Allowed student resource types
var ResourceTypes = []string{"exam", "assignment", "notes", "report", "book", "other"}

// Allowed resource languages
var ResourceLanguages = []string{"ar", "en", "both"}

// ValidResourceType reports whether t is an allowed resource type
func ValidResourceType(t string) bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidResourceLanguage reports whether l is an allowed resource language
func ValidResourceLanguage(l string) bool {
	for _, v := range ResourceLanguages {
		if v == l {
			return true
		}
	}
	return false
}

// StudentResource represents an uploaded study document in the student bank.
// The file lives either in the object store (PdfKey) or as an external drive link.
type StudentResource struct {
	ID          string
	Title       string
	Description string
	University  string
	Course      string
	Year        string
	Type        string
	Language    string
	Status      ServiceStatus
	PdfKey      string
	DriveLink   string
	DriveFileID string
	UploaderID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasFile reports whether any downloadable file is attached
func (r *StudentResource) HasFile() bool {
	return r.PdfKey != "" || r.DriveLink != "" || r.DriveFileID != ""
}
