// Package config loads, normalizes, and validates pitwall configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// ingester needs: archive hosts, retry and throttle settings, the warehouse
// database path, and the season range covered by --all.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
