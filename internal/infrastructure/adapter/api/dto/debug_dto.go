package dto

// WhoAmIResponse reports the decoded bearer token, or the verification failure
type WhoAmIResponse struct {
	OK       bool   `json:"ok"`
	UID      string `json:"uid,omitempty"`
	Email    string `json:"email,omitempty"`
	Issuer   string `json:"issuer,omitempty"`
	IssuedAt int64  `json:"issuedAt,omitempty"`
	Error    string `json:"error,omitempty"`
}
