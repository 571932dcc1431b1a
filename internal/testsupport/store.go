package testsupport

import (
	"testing"

	"pitwall/internal/config"
	"pitwall/internal/warehouse"
)

// MustOpenStore opens a warehouse.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *warehouse.Store {
	t.Helper()

	store, err := warehouse.Open(cfg)
	if err != nil {
		t.Fatalf("warehouse.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
