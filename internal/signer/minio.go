package signer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds MinIO client configuration.
type MinioConfig struct {
	// Endpoint is the host:port of the MinIO server (required).
	Endpoint string

	// AccessKey is the access key ID (required).
	AccessKey string

	// SecretKey is the secret access key (required).
	SecretKey string

	// Bucket is the bucket name (required).
	Bucket string

	// UseSSL enables TLS for the connection.
	UseSSL bool
}

// validate checks that required configuration fields are set.
func (c *MinioConfig) validate() error {
	if c.Endpoint == "" || c.AccessKey == "" || c.SecretKey == "" || c.Bucket == "" {
		return ErrInvalidConfig
	}
	return nil
}

// MinioSigner issues presigned URLs through the MinIO client. It works
// against MinIO itself and any S3-compatible object storage.
type MinioSigner struct {
	client *minio.Client
	bucket string
}

// NewMinio creates a MinioSigner with the given configuration.
func NewMinio(cfg MinioConfig) (*MinioSigner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &MinioSigner{client: client, bucket: cfg.Bucket}, nil
}

// SignPut returns a presigned PUT URL with the content type and disposition
// headers signed in, so the uploader must send them verbatim.
func (s *MinioSigner) SignPut(ctx context.Context, key string, opts PutOptions) (string, error) {
	opts.applyDefaults()

	extra := http.Header{}
	if opts.ContentType != "" {
		extra.Set("Content-Type", opts.ContentType)
	}
	if opts.ContentDisposition != "" {
		extra.Set("Content-Disposition", opts.ContentDisposition)
	}

	signed, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, opts.Expiry, url.Values{}, extra)
	if err != nil {
		return "", wrapMinioError(err, ErrPresignFailed)
	}

	return signed.String(), nil
}

// SignGet returns a presigned GET URL. The object is stat'd first so a
// missing object surfaces as ErrNotFound.
func (s *MinioSigner) SignGet(ctx context.Context, key string, opts GetOptions) (string, error) {
	opts.applyDefaults()

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		return "", wrapMinioError(err, ErrNotFound)
	}

	params := url.Values{}
	if opts.ResponseContentType != "" {
		params.Set("response-content-type", opts.ResponseContentType)
	}
	if opts.ResponseContentDisposition != "" {
		params.Set("response-content-disposition", opts.ResponseContentDisposition)
	}

	signed, err := s.client.PresignedGetObject(ctx, s.bucket, key, opts.Expiry, params)
	if err != nil {
		return "", wrapMinioError(err, ErrPresignFailed)
	}

	return signed.String(), nil
}

// wrapMinioError wraps MinIO errors with appropriate sentinel errors.
func wrapMinioError(err error, fallback error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case "AccessDenied":
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	return fmt.Errorf("%w: %v", fallback, err)
}

var _ Signer = (*MinioSigner)(nil)
