package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore tracks the bearer tokens that are currently valid.
// A token whose session is absent is treated as logged out.
type SessionStore interface {
	// Create registers the session tokenID for userID until expiresAt.
	Create(ctx context.Context, tokenID string, userID uuid.UUID, expiresAt time.Time) error

	// Exists reports whether tokenID is registered and has not expired.
	Exists(ctx context.Context, tokenID string) (bool, error)

	// Delete removes tokenID. Unknown ids are ignored.
	Delete(ctx context.Context, tokenID string) error

	// PurgeExpired drops expired sessions and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
