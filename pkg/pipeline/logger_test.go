package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	g, _ := newTestGraphics()
	g.Vertex(1, 2, 3)
	if err := g.EndFrame(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "vertex outside beginShape/endShape") {
		t.Errorf("missing warning in log:\n%s", out)
	}
	if !strings.Contains(out, "pipeline: frame") {
		t.Errorf("missing frame stats in log:\n%s", out)
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
