package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Archive contains configuration for the upstream timing archive.
type Archive struct {
	BaseURL        string `toml:"base_url"`
	MirrorURL      string `toml:"mirror_url"`
	RequestDelayMS int    `toml:"request_delay_ms"`
	MaxRetries     int    `toml:"max_retries"`
	RetryBaseMS    int    `toml:"retry_base_ms"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
}

// Warehouse contains configuration for the SQLite warehouse.
type Warehouse struct {
	Path            string `toml:"path"`
	InsertBatchSize int    `toml:"insert_batch_size"`
}

// Seasons bounds the year range expanded by --all.
type Seasons struct {
	First int `toml:"first"`
	Last  int `toml:"last"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration for the pitwall CLI.
type Config struct {
	Archive   Archive   `toml:"archive"`
	Warehouse Warehouse `toml:"warehouse"`
	Seasons   Seasons   `toml:"seasons"`
	Logging   Logging   `toml:"logging"`
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/pitwall/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has its warehouse path expanded. The boolean reports whether a
// config file was actually found; defaults apply when it was not.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pitwall.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Warehouse.Path) == "" {
		c.Warehouse.Path = defaultWarehousePath
	}
	if c.Warehouse.Path, err = ExpandPath(c.Warehouse.Path); err != nil {
		return fmt.Errorf("warehouse.path: %w", err)
	}
	c.Archive.BaseURL = strings.TrimRight(strings.TrimSpace(c.Archive.BaseURL), "/")
	c.Archive.MirrorURL = strings.TrimRight(strings.TrimSpace(c.Archive.MirrorURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// EnsureDirectories creates the directory holding the warehouse database.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Warehouse.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// ExpandPath resolves a leading tilde against the user's home directory.
func ExpandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			trimmed = home
		} else {
			trimmed = filepath.Join(home, trimmed[2:])
		}
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}
