// Package signer produces time-bounded presigned URLs against a private
// object-storage bucket.
//
// The Signer interface is a capability: the brokers hand it a storage key
// and a response-shaping contract and get back a URL valid only for that
// operation and key. Header overrides are bound into the signature so the
// bearer of the URL cannot alter them. Two backends are provided, AWS S3
// (aws-sdk-go-v2) and MinIO (minio-go); both work against any S3-compatible
// endpoint.
package signer

import (
	"context"
	"time"
)

// Default URL expiries. Download URLs expire sooner than upload URLs
// because a leaked download link is immediately replayable by anyone.
const (
	DefaultPutExpiry = 15 * time.Minute
	DefaultGetExpiry = 5 * time.Minute
)

// PutOptions shapes a presigned upload URL.
type PutOptions struct {
	// ContentType is the MIME type the uploader must send. Bound into the
	// signature.
	ContentType string

	// ContentDisposition is stored with the object and bound into the
	// signature.
	ContentDisposition string

	// Expiry is the URL lifetime. Zero uses DefaultPutExpiry.
	Expiry time.Duration
}

// GetOptions shapes a presigned download URL.
type GetOptions struct {
	// ResponseContentType overrides the Content-Type header on the
	// storage response. Bound into the signature.
	ResponseContentType string

	// ResponseContentDisposition overrides the Content-Disposition header
	// on the storage response. Bound into the signature.
	ResponseContentDisposition string

	// Expiry is the URL lifetime. Zero uses DefaultGetExpiry.
	Expiry time.Duration
}

// Signer issues presigned URLs for single storage operations.
type Signer interface {
	// SignPut returns a presigned PUT URL for the key.
	SignPut(ctx context.Context, key string, opts PutOptions) (string, error)

	// SignGet returns a presigned GET URL for the key. It returns
	// ErrNotFound when the object does not exist, so callers can surface a
	// distinct not-found outcome instead of handing out a dead link.
	SignGet(ctx context.Context, key string, opts GetOptions) (string, error)
}

// applyPutDefaults resolves the effective expiry for a PUT.
func (o *PutOptions) applyDefaults() {
	if o.Expiry <= 0 {
		o.Expiry = DefaultPutExpiry
	}
}

// applyGetDefaults resolves the effective expiry for a GET.
func (o *GetOptions) applyDefaults() {
	if o.Expiry <= 0 {
		o.Expiry = DefaultGetExpiry
	}
}
