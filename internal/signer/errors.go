package signer

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for signing operations.
var (
	ErrInvalidConfig = errors.New("signer: invalid configuration")
	ErrNotFound      = errors.New("signer: object not found")
	ErrAccessDenied  = errors.New("signer: access denied by storage backend")
	ErrPresignFailed = errors.New("signer: presign failed")
)

// wrapS3Error wraps AWS errors with appropriate sentinel errors.
// Uses %v (not %w) for the original error so callers match sentinels with
// errors.Is rather than digging into AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
