// Package config handles configuration management for vimdot.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags.
package config
