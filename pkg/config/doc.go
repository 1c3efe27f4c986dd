// Package config loads and validates the provider configuration: backend
// connection settings (region, endpoint, credentials profile) and telemetry
// settings. Configuration is plain YAML; every field has a sensible default
// so a missing file yields a working development setup.
package config
