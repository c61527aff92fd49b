// Package config loads the run configuration for the sync tool.
//
// Configuration is assembled from three layers, later layers winning:
// built-in defaults, an optional TOML file, and environment variables.
// Command-line flags are applied on top by the CLI. The resulting Config is
// treated as immutable once the run starts; it is passed explicitly into the
// syncer rather than read from ambient state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/resolver"
	"github.com/solidity-tools/solcsync/syncer"
)

// Config holds everything one sync run needs.
type Config struct {
	// AccessKeyID and SecretAccessKey are the object store credentials.
	// When empty, the AWS default credential chain applies.
	AccessKeyID     string `toml:"-"`
	SecretAccessKey string `toml:"-"`

	// Region is the object store region.
	Region string `toml:"region"`

	// Bucket is the destination bucket.
	Bucket string `toml:"bucket"`

	// BaseURL is the remote build repository base location.
	BaseURL string `toml:"base_url"`

	// Workers is the sync worker pool size.
	Workers int `toml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Region:  "us-east-1",
		Bucket:  "solidity-public",
		BaseURL: resolver.DefaultBaseURL,
		Workers: syncer.DefaultWorkers,
	}
}

// DefaultPath returns the default config file location under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "solcsync", "config.toml")
}

// Load builds a Config from defaults, the TOML file at path (DefaultPath
// when empty), and environment variables, in that order. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewError("config", err).WithMessage("parsing " + path)
		}
	case os.IsNotExist(err):
		// Defaults and environment only.
	default:
		return nil, errors.NewError("config", err).WithMessage("reading " + path)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the environment variables the original deployment used.
func (c *Config) applyEnv() {
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		c.AccessKeyID = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		c.SecretAccessKey = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("SOLC_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SOLC_SYNC_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.NewError("config", errors.ErrInvalidInput).
			WithMessage("bucket cannot be empty")
	}
	if c.Workers <= 0 {
		return errors.NewError("config", errors.ErrInvalidInput).
			WithMessage(fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	return nil
}
