package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var logs strings.Builder
	base := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})

	w := httptest.NewRecorder()
	TraceMiddleware(base)(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/order/menu", nil))

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, w.Header().Get(TraceIDHeader))
	assert.Contains(t, logs.String(), "request started")
	assert.Contains(t, logs.String(), "msg=\"inside handler\" trace_id="+traceID)
}
