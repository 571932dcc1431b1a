package testsupport

import (
	"path/filepath"
	"testing"

	"pitwall/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config backed by a unique temp warehouse per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Warehouse.Path = filepath.Join(t.TempDir(), "warehouse.db")
	cfg.Archive.RequestDelayMS = 0
	cfg.Archive.RetryBaseMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithArchiveURL points the archive client at a test server with no mirror.
func WithArchiveURL(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Archive.BaseURL = baseURL
		cfg.Archive.MirrorURL = ""
	}
}

// WithSeasons overrides the year range expanded by --all.
func WithSeasons(first, last int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Seasons.First = first
		cfg.Seasons.Last = last
	}
}
