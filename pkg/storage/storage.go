package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Reader defines read access to stored objects.
type Reader interface {
	// Get retrieves an object body.
	// The caller is responsible for closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Head returns object metadata without downloading the body.
	Head(ctx context.Context, key string) (*ObjectInfo, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the bucket name (required).
	Bucket string `env:"DOCS_BUCKET"`

	// AccessKey is the access key ID (required).
	AccessKey string `env:"DOCS_BUCKET_ACCESS_KEY"`

	// SecretKey is the secret access key (required).
	SecretKey string `env:"DOCS_BUCKET_SECRET_KEY"`

	// Endpoint is a custom endpoint URL (optional, for MinIO or R2).
	Endpoint string `env:"DOCS_BUCKET_ENDPOINT"`

	// Region defaults to us-east-1.
	Region string `env:"DOCS_BUCKET_REGION"`

	// Prefix is prepended to every key, e.g. "docs".
	Prefix string `env:"DOCS_BUCKET_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"DOCS_BUCKET_PATH_STYLE"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key         string
	ContentType string
	Size        int64
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

// validate names every missing required field.
func (c *Config) validate() error {
	var missing []string
	for _, f := range []struct{ env, val string }{
		{"DOCS_BUCKET", c.Bucket},
		{"DOCS_BUCKET_ACCESS_KEY", c.AccessKey},
		{"DOCS_BUCKET_SECRET_KEY", c.SecretKey},
	} {
		if f.val == "" {
			missing = append(missing, f.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}
