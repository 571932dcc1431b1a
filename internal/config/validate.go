package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateWarehouse(); err != nil {
		return err
	}
	if err := c.validateSeasons(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateArchive() error {
	if c.Archive.BaseURL == "" {
		return errors.New("archive.base_url must be set")
	}
	if _, err := url.ParseRequestURI(c.Archive.BaseURL); err != nil {
		return fmt.Errorf("archive.base_url is not a valid URL: %w", err)
	}
	if c.Archive.MirrorURL != "" {
		if _, err := url.ParseRequestURI(c.Archive.MirrorURL); err != nil {
			return fmt.Errorf("archive.mirror_url is not a valid URL: %w", err)
		}
	}
	if c.Archive.RequestDelayMS < 0 {
		return errors.New("archive.request_delay_ms must not be negative")
	}
	if c.Archive.MaxRetries < 0 {
		return errors.New("archive.max_retries must not be negative")
	}
	if c.Archive.RetryBaseMS <= 0 {
		return errors.New("archive.retry_base_ms must be positive")
	}
	if c.Archive.RequestTimeout <= 0 {
		return errors.New("archive.request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateWarehouse() error {
	if c.Warehouse.Path == "" {
		return errors.New("warehouse.path must be set")
	}
	if c.Warehouse.InsertBatchSize <= 0 {
		return errors.New("warehouse.insert_batch_size must be positive")
	}
	return nil
}

func (c *Config) validateSeasons() error {
	if c.Seasons.First <= 0 || c.Seasons.Last <= 0 {
		return errors.New("seasons.first and seasons.last must be set")
	}
	if c.Seasons.Last < c.Seasons.First {
		return errors.New("seasons.last must not precede seasons.first")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
