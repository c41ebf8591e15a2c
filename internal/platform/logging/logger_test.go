package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("scored", "event_id", "ev-1", "error", errors.New("boom"), 42, "x", "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entries: got=%d want=1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["event_id"] != "ev-1" {
		t.Fatalf("unexpected event_id: %v", ctx["event_id"])
	}
	if ctx["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", ctx["error"])
	}
	if ctx["arg"] != "x" {
		t.Fatalf("unexpected arg field: %v", ctx["arg"])
	}
	if v, ok := ctx["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling nil key, got %v (present=%v)", v, ok)
	}
}

func TestContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.WarnContext(ctx, "retry")
	got := logs.All()[0].ContextMap()
	if got["trace_id"] != traceID.String() || got["span_id"] != spanID.String() {
		t.Fatalf("unexpected trace fields: %+v", got)
	}
}

func TestNewWritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "fight-fantasy", Env: "dev", Output: &buf})
	logger.Debug("hidden")
	logger.Info("visible", "teams", 3)
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("unexpected lines: got=%d want=1 (%q)", len(lines), buf.String())
	}
	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "fight-fantasy" || entry["env"] != "dev" || entry["msg"] != "visible" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("WARN"); err != nil || lvl != LevelWarn {
		t.Fatalf("unexpected level: %v err=%v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
