package service_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"),
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		store.WithClock(func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func ptr[T any](v T) *T {
	return &v
}
