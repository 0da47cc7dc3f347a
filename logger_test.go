package imgrotate

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should be silent")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	if _, err := Rotate(gradient(4, 4, 1), 45, Triangle, CanvasGrow, EdgeZero); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); !strings.Contains(s, "msg=rotate") || !strings.Contains(s, "kernel=Triangle") {
		t.Errorf("unexpected log output: %q", s)
	}

	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
