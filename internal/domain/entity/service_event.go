package entity

import "time"

// Service event types recorded in the audit log
const (
	EventReassignOwner = "reassign_owner"
)

// ServiceEvent is an append-only audit record of an administrative mutation.
// IdempotencyKey lets a retried reassignment with the same key, target and
// service be detected and skipped.
type ServiceEvent struct {
	ID             string
	Type           string
	ServiceID      string
	FromOwnerID    *string
	FromOwnerEmail *string
	ToOwnerID      string
	ToOwnerEmail   string
	ActorUID       string
	IdempotencyKey *string
	At             time.Time
}
