package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the bearer tokens handed to clients.
type JWTService interface {
	// GenerateToken creates a signed token for userID. The returned Token
	// carries the token id and expiry so the caller can register a session.
	GenerateToken(ctx context.Context, userID uuid.UUID) (*Token, error)

	// ValidateToken checks signature and lifetime and returns the claims.
	// It does not consult the session store.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Token is a signed token together with the metadata needed to track it.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	// ID is the jti claim, used as the session key.
	ID string `json:"jti,omitempty"`
}
