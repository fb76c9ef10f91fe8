package signer

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestPutOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := PutOptions{}
	opts.applyDefaults()
	require.Equal(t, DefaultPutExpiry, opts.Expiry)

	opts = PutOptions{Expiry: time.Minute}
	opts.applyDefaults()
	require.Equal(t, time.Minute, opts.Expiry)
}

func TestGetOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := GetOptions{}
	opts.applyDefaults()
	require.Equal(t, DefaultGetExpiry, opts.Expiry)
	require.Less(t, DefaultGetExpiry, DefaultPutExpiry, "download links must be shorter-lived than upload links")
}

func TestNewS3ConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  S3Config
	}{
		{"empty", S3Config{}},
		{"missing bucket", S3Config{AccessKey: "k", SecretKey: "s"}},
		{"missing access key", S3Config{Bucket: "b", SecretKey: "s"}},
		{"missing secret key", S3Config{Bucket: "b", AccessKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewS3(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewS3AppliesRegionDefault(t *testing.T) {
	t.Parallel()

	s, err := NewS3(S3Config{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	require.Equal(t, DefaultRegion, s.cfg.Region)
}

func TestNewMinioConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  MinioConfig
	}{
		{"empty", MinioConfig{}},
		{"missing endpoint", MinioConfig{AccessKey: "k", SecretKey: "s", Bucket: "b"}},
		{"missing bucket", MinioConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewMinio(tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", &smithy.GenericAPIError{Code: "NoSuchKey"}, ErrNotFound},
		{"not found", &smithy.GenericAPIError{Code: "NotFound"}, ErrNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrAccessDenied},
		{"forbidden", &smithy.GenericAPIError{Code: "Forbidden"}, ErrAccessDenied},
		{"other api error", &smithy.GenericAPIError{Code: "SlowDown"}, ErrPresignFailed},
		{"plain error", errors.New("dial tcp: timeout"), ErrPresignFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, wrapS3Error(tt.err, ErrPresignFailed), tt.want)
		})
	}
}

func TestWrapMinioError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey"}, ErrNotFound},
		{"no such bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, ErrNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied"}, ErrAccessDenied},
		{"other response", minio.ErrorResponse{Code: "InternalError"}, ErrPresignFailed},
		{"plain error", errors.New("connection reset"), ErrPresignFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, wrapMinioError(tt.err, ErrPresignFailed), tt.want)
		})
	}
}
