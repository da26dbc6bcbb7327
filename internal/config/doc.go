// Package config loads, normalizes, and validates audiolift configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads a TOML file when one exists. Always obtain settings
// through this package so downstream code receives sanitized paths,
// canonical extension lists, and clear validation errors.
package config
