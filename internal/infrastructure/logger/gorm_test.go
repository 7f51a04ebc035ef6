package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Info)

	assert.NotNil(t, gormLog)
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
}

func TestGormLoggerWithOptions(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(
		zapLogger,
		gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gormLog.slowThreshold)
	assert.False(t, gormLog.ignoreRecordNotFoundError)
}

func TestGormLogger_LogMode(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Info)
	newLogger := gormLog.LogMode(gormlogger.Warn)

	// Original should be unchanged
	assert.Equal(t, gormlogger.Info, gormLog.logLevel)

	newGormLog, ok := newLogger.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, newGormLog.logLevel)
}

func TestGormLogger_Info(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Info)
	gormLog.Info(context.Background(), "migration step %s", "customers")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "migration step customers")
}

func TestGormLogger_Info_Suppressed(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Silent)
	gormLog.Info(context.Background(), "test message")

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Warn(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Warn)
	gormLog.Warn(context.Background(), "warning message %d", 42)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLogger_Trace_Error(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Error)

	fc := func() (string, int64) {
		return "SELECT * FROM sales", 0
	}

	gormLog.Trace(context.Background(), time.Now(), fc, errors.New("connection reset"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "SQL Error", logs[0].Message)
}

func TestGormLogger_Trace_IgnoresRecordNotFound(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Error)

	fc := func() (string, int64) {
		return "SELECT * FROM customers WHERE id = $1", 0
	}

	gormLog.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	fc := func() (string, int64) {
		return "SELECT * FROM warehouse_movements", 500
	}

	begin := time.Now().Add(-time.Second)
	gormLog.Trace(context.Background(), begin, fc, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SLOW SQL")
}

func TestGormLogger_Trace_IncludesRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	gormLog := NewGormLogger(zapLogger, gormlogger.Error)

	ctx := WithRequestID(context.Background(), "req-42")
	fc := func() (string, int64) {
		return "UPDATE products SET price = $1", 1
	}

	gormLog.Trace(ctx, time.Now(), fc, errors.New("deadlock detected"))

	logs := recorded.All()
	require.Len(t, logs, 1)

	fieldMap := logs[0].ContextMap()
	assert.Equal(t, "req-42", fieldMap["request_id"])
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
