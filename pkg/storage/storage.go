package storage

import (
	"context"
	"fmt"
)

const (
	ContentTypePNG = "image/png"
	ACLPublicRead  = "public-read"
)

// ObjectStore uploads whole objects. Existing keys are overwritten.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

type Options struct {
	Driver    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// NewObjectStore picks the driver named in opts. Credentials are mandatory for both.
func NewObjectStore(ctx context.Context, opts Options) (ObjectStore, error) {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, ErrMissingCredentials
	}
	switch opts.Driver {
	case "", "minio":
		return NewMinioStore(opts)
	case "s3":
		return NewS3Store(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}

// PublicURL builds the CDN address an uploaded object is served from.
func PublicURL(cdnHost, accessKey, bucket, key string) string {
	return fmt.Sprintf("https://%s/projects/%s/%s/%s", cdnHost, accessKey, bucket, key)
}
