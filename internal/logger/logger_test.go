package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCapturedLogger mirrors the JSON encoder layout used in production
// but writes into a buffer so tests can decode the entries.
func newCapturedLogger(buf *bytes.Buffer) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log entry is not valid JSON: %v", err)
	}
	return entry
}

func TestProperty_EntriesAreStructuredJSON(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry is JSON with level, timestamp, and message", prop.ForAll(
		func(message string, level string) bool {
			var buf bytes.Buffer
			log := newCapturedLogger(&buf)
			defer log.Sync()

			switch level {
			case "debug":
				log.Debug(message)
			case "warn":
				log.Warn(message)
			case "error":
				log.Error(message)
			default:
				log.Info(message)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				return false
			}

			levelValue, ok := entry["level"].(string)
			if !ok || levelValue == "" {
				return false
			}
			if _, ok := entry["timestamp"]; !ok {
				return false
			}
			return entry["message"] == message
		},
		gen.AnyString(),
		gen.OneConstOf("debug", "info", "warn", "error"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorEntriesCarryTheirFields(t *testing.T) {
	var buf bytes.Buffer
	log := newCapturedLogger(&buf)
	defer log.Sync()

	log.Error("failed to update order status",
		zap.String("order_id", "7f3c2f1e-4a0b-4d6a-9c35-52a7b6b1d2f0"),
		zap.String("status", "Shipped"),
	)

	entry := decodeEntry(t, &buf)
	if entry["order_id"] != "7f3c2f1e-4a0b-4d6a-9c35-52a7b6b1d2f0" {
		t.Errorf("Expected order_id field in the entry, got %v", entry["order_id"])
	}
	if entry["status"] != "Shipped" {
		t.Errorf("Expected status field in the entry, got %v", entry["status"])
	}
	if entry["level"] != "error" {
		t.Errorf("Expected error level, got %v", entry["level"])
	}
}

func TestNewBuildsALoggerForEachEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			log, err := New(env)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", env, err)
			}
			if log == nil {
				t.Fatalf("New(%q) returned a nil logger", env)
			}
			defer log.Sync()
		})
	}
}
