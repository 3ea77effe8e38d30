package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	withTrace := SetTraceID(ctx)
	traceID := GetTraceID(withTrace)
	assert.Len(t, traceID, 32)

	// Original context should remain unchanged
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceID(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		_, err := hex.DecodeString(id)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetPrincipal(ctx))

	p := &service.Principal{
		User:    &domain.User{ID: uuid.New(), Name: "pizza diner"},
		TokenID: "jti-1",
	}
	ctx = WithPrincipal(ctx, p)
	assert.Same(t, p, GetPrincipal(ctx))

	// A value of the wrong type is ignored.
	ctx = context.WithValue(context.Background(), PrincipalContextKey, "not a principal")
	assert.Nil(t, GetPrincipal(ctx))
}
