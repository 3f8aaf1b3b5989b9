package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, &buf)

	log.WithFields(map[string]interface{}{"component": "orders"}).Info("order created", map[string]interface{}{"order_code": "TR1"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order created", line["message"])
	assert.Equal(t, "orders", line["component"])
	assert.Equal(t, "TR1", line["order_code"])
	assert.Equal(t, "info", line["level"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(WarnLevel, &buf)

	log.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warn("shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	log.InfoContext(ctx, "handled", nil)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-42", line["request_id"])
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
