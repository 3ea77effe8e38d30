package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
	}{
		{level: "debug", debugShown: true, infoShown: true},
		{level: "info", debugShown: false, infoShown: true},
		{level: "WARN", debugShown: false, infoShown: false},
		{level: "nonsense", debugShown: false, infoShown: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := setup(&buf, config.ServerConfig{LogLevel: tt.level})

			l.Debug("debug message")
			assert.Equal(t, tt.debugShown, bytes.Contains(buf.Bytes(), []byte("debug message")))

			buf.Reset()
			l.Info("info message")
			assert.Equal(t, tt.infoShown, bytes.Contains(buf.Bytes(), []byte("info message")))
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	setup(&buf, config.ServerConfig{LogLevel: "info"})

	slog.Info("order created", "order_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "42", entry["order_id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestSetupRedactsSecrets(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var buf bytes.Buffer
	l := setup(&buf, config.ServerConfig{LogLevel: "info"})

	l.Error("login failed",
		"password", "hunter22",
		"error", errors.New("dial postgres://pizza:s3cret@db:5432/pizza"))

	out := buf.String()
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "s3cret")
	assert.Contains(t, out, "login failed")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "abc")

	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	def := slog.New(slog.NewTextHandler(&buf, nil))
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
