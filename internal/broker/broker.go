// Package broker composes validation, rate limiting, access control, and
// key derivation into the two request pipelines of the gateway: issuing
// presigned upload URLs and redirecting to presigned download URLs.
//
// Each pipeline short-circuits on the first failure; no partial processing
// continues after an error.
package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/ratelimit"
	"github.com/dcastelone/ep-media-upload/internal/signer"
	"github.com/dcastelone/ep-media-upload/internal/validate"
)

// Sentinel errors for broker pipelines. Access and signer outcomes pass
// through as their own sentinels (access.ErrDenied, access.ErrUnavailable,
// signer.ErrNotFound).
var (
	ErrInvalidInput  = errors.New("broker: invalid input")
	ErrRateLimited   = errors.New("broker: rate limited")
	ErrMisconfigured = errors.New("broker: storage not configured")
)

// Config holds the policy knobs for both pipelines.
type Config struct {
	// KeyPrefix is prepended to every derived storage key, e.g. "media/".
	KeyPrefix string

	// AllowedExtensions is the closed set of permitted upload extensions.
	// Empty means permissive.
	AllowedExtensions validate.ExtensionSet

	// InlineExtensions lists extensions rendered inline on download; all
	// others are served as attachments.
	InlineExtensions validate.ExtensionSet

	// UploadExpiry is the PUT URL lifetime. Zero uses the signer default.
	UploadExpiry time.Duration

	// DownloadExpiry is the GET URL lifetime. Zero uses the signer
	// default, which is intentionally shorter than the upload default.
	DownloadExpiry time.Duration
}

// Broker wires the pipeline components together.
type Broker struct {
	cfg     Config
	limiter *ratelimit.Limiter
	gate    *access.Gate
	signer  signer.Signer
	log     *slog.Logger
}

// New creates a Broker. The signer may be nil when storage is not
// configured; both pipelines then fail with ErrMisconfigured after access
// control has run.
func New(cfg Config, limiter *ratelimit.Limiter, gate *access.Gate, sgn signer.Signer, log *slog.Logger) *Broker {
	if log == nil {
		log = slog.Default()
	}
	return &Broker{
		cfg:     cfg,
		limiter: limiter,
		gate:    gate,
		signer:  sgn,
		log:     log,
	}
}

// invalidInput wraps a short reason into ErrInvalidInput.
func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
