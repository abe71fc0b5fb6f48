package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger(buf *bytes.Buffer, level zapcore.Level) *Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(buf),
		level,
	)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

func TestNew_DefaultConfiguration(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.SugaredLogger)
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, zapcore.InfoLevel)

	logger.Infow("request completed", "status_code", 200)

	output := buf.String()
	assert.Contains(t, output, "request completed")
	assert.Contains(t, output, "status_code")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, zapcore.ErrorLevel)

	logger.Error("query failed: ", "timeout")

	assert.Contains(t, buf.String(), "query failed")
}

func TestLogger_WithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, zapcore.InfoLevel)

	logger.WithRequestID("req-123").Info("handled")

	output := buf.String()
	assert.Contains(t, output, "request_id")
	assert.Contains(t, output, "req-123")
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, zapcore.InfoLevel)

	logger.WithComponent("listing").Info("migrated")

	output := buf.String()
	assert.Contains(t, output, "component")
	assert.Contains(t, output, "listing")
}
