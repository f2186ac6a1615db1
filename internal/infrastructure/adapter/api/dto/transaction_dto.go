package dto

import "time"

// TransactionResponse represents one subscription payment row
type TransactionResponse struct {
	ID         string     `json:"id"`
	UID        string     `json:"uid"`
	UserName   string     `json:"userName,omitempty"`
	PlanID     string     `json:"planId"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	Provider   string     `json:"provider"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	ApprovedBy *string    `json:"approvedBy,omitempty"`
}

// TransactionListResponse wraps a payment listing page
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ConfirmTransactionResponse reports the confirmation outcome.
// Already means the payment had been confirmed before this call.
type ConfirmTransactionResponse struct {
	OK              bool `json:"ok"`
	Already         bool `json:"already,omitempty"`
	UpdatedServices int  `json:"updatedServices"`
}
