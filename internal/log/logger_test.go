package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" INFO ": slog.LevelInfo,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"bogus":  slog.LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Output: &buf}).WithComponent(ComponentLedger)
	logger.Info("record added", NewFields().WithOperation(OpAdd).WithError(errors.New("x")).ToSlice()...)
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"component=ledger", "operation=add", "error=x", "record added"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
}
