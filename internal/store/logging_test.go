package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/saadjs/fitlog/internal/store"
)

func TestOpenCorruptFileLogsWarning(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	core, observed := observer.New(zapcore.WarnLevel)
	if _, err := store.Open(path, store.WithLogger(zap.New(core))); err != nil {
		t.Fatalf("open store: %v", err)
	}

	entries := observed.FilterMessage("data file is not valid JSON, starting with defaults").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d: %+v", len(entries), observed.All())
	}
	if got := entries[0].ContextMap()["path"]; got != path {
		t.Fatalf("expected path field %q, got %v", path, got)
	}
}
