package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/openfroyo/provider-s3object/pkg/telemetry"
)

// Config is the provider configuration.
type Config struct {
	// Backend configures the blob-storage connection.
	Backend BackendConfig `yaml:"backend"`

	// Logging configures structured logging.
	Logging telemetry.LoggingConfig `yaml:"logging"`
}

// BackendConfig configures how the AWS session is built.
type BackendConfig struct {
	// Region is the backend region. Falls back to AWS_REGION when unset.
	Region string `yaml:"region"`

	// Endpoint overrides the service endpoint, for local stacks like MinIO.
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`

	// Profile selects a shared credentials profile.
	Profile string `yaml:"profile"`

	// UsePathStyle forces path-style bucket addressing; required by most
	// non-AWS S3-compatible backends.
	UsePathStyle bool `yaml:"use_path_style"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Region: os.Getenv("AWS_REGION"),
		},
		Logging: telemetry.LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads and validates a YAML configuration file. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
