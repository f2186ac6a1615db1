package entity

import "time"

// TransactionStatus is the payment lifecycle state of a subscription purchase
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// ValidTransactionStatus reports whether s is an allowed payment state
func ValidTransactionStatus(s string) bool {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// Transaction represents a subscription payment awaiting manual confirmation
type Transaction struct {
	ID         string
	UID        string
	PlanID     string
	Amount     float64
	Currency   string
	Provider   string
	Status     TransactionStatus
	CreatedAt  time.Time
	PaidAt     *time.Time
	ApprovedBy *string
}

// Confirmed reports whether the payment was already marked successful
func (t *Transaction) Confirmed() bool {
	return t.Status == TransactionStatusSuccess
}
