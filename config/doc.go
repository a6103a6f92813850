// Package config loads typed application configuration from YAML files
// and MEDENRICH_* environment variables, with sensible local defaults.
package config
