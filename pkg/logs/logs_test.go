package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPushURL(t *testing.T) {
	const want = "http://loki:3100/loki/api/v1/push"
	for _, in := range []string{"http://loki:3100", "http://loki:3100/", want} {
		if got := pushURL(in); got != want {
			t.Errorf("pushURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(h).With("component", "test")

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be enabled by the first handler")
	}

	logger.Debug("details")
	logger.Warn("careful")

	if got := strings.Count(debug.String(), "\n"); got != 2 {
		t.Errorf("debug handler got %d lines, want 2", got)
	}
	if strings.Contains(warn.String(), "details") || !strings.Contains(warn.String(), "careful") {
		t.Errorf("warn handler output = %q", warn.String())
	}
	if !strings.Contains(warn.String(), "component=test") {
		t.Errorf("attrs not propagated: %q", warn.String())
	}
}
