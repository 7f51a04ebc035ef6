package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.NotNil(t, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())

	// Should return a no-op logger
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("test")
	})
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-789")
	assert.Equal(t, "user-789", GetUserID(ctx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetUserID_NotFound(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextChaining(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
}

func TestWithRequestID_Override(t *testing.T) {
	ctx := WithRequestID(context.Background(), "first-id")
	assert.Equal(t, "first-id", GetRequestID(ctx))

	ctx = WithRequestID(ctx, "second-id")
	assert.Equal(t, "second-id", GetRequestID(ctx))
}

func TestFromContext_EnrichesWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = WithUserID(ctx, "user-789")
	ctx = WithContext(ctx, baseLogger)

	FromContext(ctx).Info("payment recorded")

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"user_id":"user-789"`)
	assert.Contains(t, output, `"msg":"payment recorded"`)
}

func TestFromContext_EmptyFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := WithContext(context.Background(), baseLogger)
	FromContext(ctx).Info("test")

	output := buf.String()
	assert.Contains(t, output, `"msg":"test"`)
	assert.NotContains(t, output, `"request_id":""`)
	assert.NotContains(t, output, `"user_id":""`)
}

func TestContextLogger_L(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	cl := NewContextLogger(baseLogger)

	ctx := WithRequestID(context.Background(), "req-abc")
	cl.L(ctx).Info("sale created")

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-abc"`)
	assert.Contains(t, output, `"msg":"sale created"`)
}

func TestContextLogger_PlainContext(t *testing.T) {
	cl := NewContextLogger(zap.NewNop())

	assert.NotPanics(t, func() {
		cl.L(context.Background()).Info("test")
	})
}
