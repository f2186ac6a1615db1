package storage

import (
	"context"
	"time"
)

// ObjectStore exposes the slice of an S3-compatible store the console needs:
// time-limited download links for stored resource files.
type ObjectStore interface {
	// PresignGet returns a signed GET URL for the object key
	//
	// Possible errors:
	// - ErrStorageNotConfigured: if credentials or endpoint are absent
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
