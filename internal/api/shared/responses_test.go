package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requestWithLog returns a request whose context carries a trace ID and a
// debug logger writing to the returned builder.
func requestWithLog(t *testing.T) (*http.Request, *strings.Builder) {
	t.Helper()
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	ctx = logger.WithLogger(ctx, log)
	return httptest.NewRequest(http.MethodGet, "/api/test", nil).WithContext(ctx), &buf
}

func TestRespondWithJSON(t *testing.T) {
	req, _ := requestWithLog(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]int{"page": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"page":1}`, w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	req, logs := requestWithLog(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestRespondWithMessage(t *testing.T) {
	req, _ := requestWithLog(t)
	w := httptest.NewRecorder()

	RespondWithMessage(w, req, "store deleted")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"store deleted"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req, _ := requestWithLog(t)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "unauthorized")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"unauthorized","trace_id":"test-trace-id"}`, w.Body.String())
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "unknown endpoint")

	assert.JSONEq(t, `{"message":"unknown endpoint"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, nil, "level=ERROR"},
		{"client error", http.StatusBadRequest, nil, "level=DEBUG"},
		{"elevated client error", http.StatusForbidden, []ResponseOption{WithElevatedLogLevel()}, "level=WARN"},
		{"rate limited", http.StatusTooManyRequests, nil, "level=WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, logs := requestWithLog(t)
			w := httptest.NewRecorder()
			cause := errors.New("dial tcp: password=hunter22 rejected")

			RespondWithErrorAndLog(w, req, tt.status, "safe message", cause, tt.opts...)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "safe message", body.Message)
			assert.Equal(t, "test-trace-id", body.TraceID)
			assert.NotContains(t, w.Body.String(), "hunter22")

			out := logs.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "trace_id=test-trace-id")
			assert.Contains(t, out, "error_type=")
			assert.NotContains(t, out, "hunter22")
		})
	}
}

func TestRespondWithErrorExtraFields(t *testing.T) {
	req, _ := requestWithLog(t)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Failed to fulfill order at factory", nil,
		WithField("followLinkToEndChaos", "https://factory.example/report"))

	assert.JSONEq(t, `{
		"message": "Failed to fulfill order at factory",
		"trace_id": "test-trace-id",
		"followLinkToEndChaos": "https://factory.example/report"
	}`, w.Body.String())
}
