package iftracer

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWrapPrintfLogger(t *testing.T) {
	var buf bytes.Buffer
	wrapped := WrapPrintfLogger(&defaultLogger{logger: log.New(&buf, "", 0)})

	wrapped.Info("request completed", "status", 200, "attempts", 1)

	got := buf.String()
	if !strings.Contains(got, "[INFO] request completed") {
		t.Errorf("output = %q, want level prefix and message", got)
	}
	if !strings.Contains(got, "status=200") || !strings.Contains(got, "attempts=1") {
		t.Errorf("output = %q, want formatted key-value pairs", got)
	}

	buf.Reset()
	wrapped.Warn("plain message")
	if got := buf.String(); !strings.Contains(got, "[WARN] plain message") {
		t.Errorf("output = %q, want message without args suffix", got)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	adapter.Debug("debug msg", "k", "v")
	adapter.Error("error msg", "code", 500)

	got := buf.String()
	if !strings.Contains(got, "debug msg") || !strings.Contains(got, "k=v") {
		t.Errorf("output missing debug record: %q", got)
	}
	if !strings.Contains(got, "error msg") || !strings.Contains(got, "code=500") {
		t.Errorf("output missing error record: %q", got)
	}

	buf.Reset()
	adapter.With("component", "evaluator").Info("with attrs")
	if got := buf.String(); !strings.Contains(got, "component=evaluator") {
		t.Errorf("With() attrs not carried: %q", got)
	}
}

func TestSlogAdapterNilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter.logger == nil {
		t.Error("NewSlogAdapter(nil) left logger nil, want slog.Default()")
	}
}

func TestZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("evaluation completed", "type", "safety", "attempts", 2)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["message"] != "evaluation completed" {
		t.Errorf("message = %v, want %q", record["message"], "evaluation completed")
	}
	if record["type"] != "safety" {
		t.Errorf("type field = %v, want %q", record["type"], "safety")
	}
	if record["attempts"] != float64(2) {
		t.Errorf("attempts field = %v, want 2", record["attempts"])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic; output goes nowhere.
	var l NopLogger
	l.Printf("x %d", 1)
	l.Debug("x", "k", "v")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestFormatArgs(t *testing.T) {
	if got := formatArgs(nil); got != "" {
		t.Errorf("formatArgs(nil) = %q, want empty", got)
	}
	if got := formatArgs([]any{"a", 1, "b", "two"}); got != " | a=1 b=two" {
		t.Errorf("formatArgs = %q", got)
	}
}
