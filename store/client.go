// Package store provides the S3-backed object store client used to publish
// and probe compiler artifacts.
//
// The Store wraps the AWS SDK v2 S3 client behind a small interface so tests
// can substitute a mock, and exposes only the operations the sync engine
// needs: byte-slice put/get, existence probes, deletes, and prefix listing.
package store

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/internal/s3api"
)

// Store is an S3-backed object store. It is safe for concurrent use: the
// underlying SDK client is shared read-only configuration across all sync
// tasks.
type Store struct {
	client s3api.S3API
}

// New creates a new Store with the provided options. Credentials come from
// the default AWS credential chain unless WithStaticCredentials is given.
//
// Example:
//
//	st, err := store.New(ctx,
//	    store.WithRegion("us-east-1"),
//	    store.WithStaticCredentials(accessKey, secretKey),
//	)
func New(ctx context.Context, opts ...Option) (*Store, error) {
	cfg := &clientConfig{
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var awsCfg aws.Config
	var err error

	if cfg.customAWSConfig != nil {
		awsCfg = *cfg.customAWSConfig
	} else {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.accessKeyID != "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.accessKeyID, cfg.secretAccessKey, ""),
			))
		}
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.NewError("store initialization", err)
		}
	}

	if cfg.region != "" {
		awsCfg.Region = cfg.region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1" // AWS default region
	}

	if cfg.maxRetries > 0 {
		awsCfg.RetryMaxAttempts = cfg.maxRetries
	}

	var s3Opts []func(*s3.Options)
	if cfg.endpoint != "" {
		endpoint := cfg.endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.forcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if cfg.timeout > 0 {
		httpClient := &http.Client{Timeout: cfg.timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return &Store{client: s3.NewFromConfig(awsCfg, s3Opts...)}, nil
}

// NewWithClient creates a Store with a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(client s3api.S3API) *Store {
	return &Store{client: client}
}
