package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}

	malformed := filepath.Join(dir, "bad.env")
	if err := os.WriteFile(malformed, []byte("LEDGER_FILE=\"unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := LoadEnvFile(malformed)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("expected parse error for malformed env file, got %v", err)
	}
}
