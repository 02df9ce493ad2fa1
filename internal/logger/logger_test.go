package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_DevelopmentMode(t *testing.T) {
	logger := New("development")

	if logger == nil {
		t.Fatal("Expected logger to be created")
	}
	if logger.GetZerolog() == nil {
		t.Error("Expected zerolog instance to be available")
	}
	if logger.GetZerolog().GetLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level in development, got %s", logger.GetZerolog().GetLevel())
	}
}

func TestNew_ProductionMode(t *testing.T) {
	logger := New("production")

	if logger == nil {
		t.Fatal("Expected logger to be created")
	}
	if logger.GetZerolog().GetLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level in production, got %s", logger.GetZerolog().GetLevel())
	}
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	logger.Info("resolving property tax", map[string]interface{}{
		"state": "TX",
		"zip":   "77301",
	})

	output := buf.String()
	if !strings.Contains(output, "resolving property tax") {
		t.Error("Expected log output to contain message")
	}
	if !strings.Contains(output, "77301") {
		t.Error("Expected log output to contain field value")
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	logger.Error("estimator call failed", errors.New("connection refused"), map[string]interface{}{
		"provider": "estimator",
	})

	output := buf.String()
	if !strings.Contains(output, "estimator call failed") {
		t.Error("Expected log output to contain message")
	}
	if !strings.Contains(output, "connection refused") {
		t.Error("Expected log output to contain error")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	child := logger.With(map[string]interface{}{"component": "sweeper"})
	child.Info("sweep complete", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	if entry["component"] != "sweeper" {
		t.Errorf("Expected component field on child logger, got %v", entry["component"])
	}
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	child := logger.WithRequestID("req-123")
	child.Info("handled", nil)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Errorf("Expected request_id field, got %v", entry["request_id"])
	}
}
