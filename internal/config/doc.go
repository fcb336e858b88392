// Package config loads and validates application settings from defaults,
// an optional config.yaml, a .env file and SERVICELY_* environment variables.
package config
