// Package store provides functional options for configuring the object store
// client. These options follow the functional options pattern for clean,
// composable configuration.
package store

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// clientConfig collects the settings applied by Option values.
type clientConfig struct {
	region          string
	endpoint        string
	forcePathStyle  bool
	timeout         time.Duration
	maxRetries      int
	accessKeyID     string
	secretAccessKey string
	customAWSConfig *aws.Config
}

// Option configures the Store client.
type Option func(*clientConfig)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) Option {
	return func(c *clientConfig) {
		c.region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing.
func WithEndpoint(endpoint string) Option {
	return func(c *clientConfig) {
		c.endpoint = endpoint
	}
}

// WithForcePathStyle forces path-style URLs instead of virtual-hosted style.
// Required for S3-compatible services that don't support virtual hosting.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(c *clientConfig) {
		c.forcePathStyle = forcePathStyle
	}
}

// WithTimeout sets the timeout for individual S3 operations.
// Default is no timeout (0).
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts the SDK makes for
// failed requests. Default is 3.
func WithMaxRetries(maxRetries int) Option {
	return func(c *clientConfig) {
		c.maxRetries = maxRetries
	}
}

// WithStaticCredentials sets explicit AWS credentials instead of the default
// credential chain.
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(c *clientConfig) {
		c.accessKeyID = accessKeyID
		c.secretAccessKey = secretAccessKey
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(config *aws.Config) Option {
	return func(c *clientConfig) {
		c.customAWSConfig = config
	}
}
