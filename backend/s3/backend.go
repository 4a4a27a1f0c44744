package s3

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/photofs/backend"
	"github.com/mwantia/photofs/data"
)

// S3Backend stores files as objects in a bucket. Directories are zero-byte
// marker objects whose key ends with "/".
type S3Backend struct {
	mu sync.RWMutex

	client *minio.Client
	config *S3BackendConfig
}

// S3BackendConfig contains configuration options for the S3 backend
type S3BackendConfig struct {
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key" split_words:"true"`
	SecretKey string `toml:"secret_key" split_words:"true"`
	UseSSL    bool   `toml:"use_ssl" split_words:"true"`

	// Prefix for all object keys inside the bucket (optional)
	Prefix string `toml:"prefix"`
}

func NewS3Backend(config *S3BackendConfig) (*S3Backend, error) {
	if config == nil || config.Endpoint == "" || config.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 requires endpoint and bucket", data.ErrInvalid)
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		client: client,
		config: config,
	}, nil
}

// Returns the identifier name defined for this backend
func (*S3Backend) Name() string {
	return "s3"
}

// Open is part of the lifecycle behavious and gets called when a root is selected.
func (sb *S3Backend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	exists, err := sb.client.BucketExists(ctx, sb.config.Bucket)
	if err != nil {
		return fmt.Errorf("%w: %v", data.ErrMountFailed, err)
	}

	if !exists {
		return fmt.Errorf("%w: bucket '%s' does not exist", data.ErrMountFailed, sb.config.Bucket)
	}

	return nil
}

// Close is part of the lifecycle behaviour and gets called when the root is released.
func (sb *S3Backend) Close(ctx context.Context) error {
	return nil
}

// GetCapabilities returns a list of capabilities supported by this backend.
func (sb *S3Backend) GetCapabilities() *backend.BackendCapabilities {
	return &backend.BackendCapabilities{
		Capabilities: []backend.BackendCapability{
			backend.CapabilityObjectStorage,
			backend.CapabilityMetadata,
			backend.CapabilityPersistent,
		},
		// Largest single PUT accepted by S3
		MaxObjectSize: 5 * 1024 * 1024 * 1024,
	}
}

func (sb *S3Backend) basePrefix() string {
	prefix := strings.Trim(sb.config.Prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func (sb *S3Backend) fileKey(key string) string {
	return sb.basePrefix() + key
}

func (sb *S3Backend) dirKey(key string) string {
	if key == "" {
		return sb.basePrefix()
	}
	return sb.basePrefix() + key + "/"
}

func (sb *S3Backend) relativeKey(objectKey string) string {
	return strings.TrimSuffix(strings.TrimPrefix(objectKey, sb.basePrefix()), "/")
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
