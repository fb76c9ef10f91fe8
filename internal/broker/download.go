package broker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/keys"
	"github.com/dcastelone/ep-media-upload/internal/signer"
	"github.com/dcastelone/ep-media-upload/internal/validate"
)

// DownloadRequest carries the caller's download parameters.
type DownloadRequest struct {
	ResourceID string
	ObjectID   string
	CallerIP   string
	Creds      access.Credentials
}

// Download validates the request, authorizes the caller, reconstructs the
// storage key, and returns a presigned GET URL for the handler to redirect
// to. The object id is shape-checked before any oracle or signer call; the
// strict allow-list is what lets Reconstruct concatenate it into a key
// safely.
func (b *Broker) Download(ctx context.Context, req DownloadRequest) (string, error) {
	if !validate.ResourceID(req.ResourceID) {
		return "", invalidInput("resource id")
	}
	if !validate.ObjectID(req.ObjectID) {
		return "", invalidInput("object id")
	}

	principal, err := b.gate.Authorize(ctx, req.ResourceID, req.CallerIP, req.Creds)
	if err != nil {
		return "", err
	}

	if !b.limiter.Allow(req.CallerIP) {
		b.log.WarnContext(ctx, "download rate limited",
			slog.String("caller_ip", req.CallerIP),
			slog.String("resource_id", req.ResourceID),
		)
		return "", ErrRateLimited
	}

	if b.signer == nil {
		return "", ErrMisconfigured
	}

	key := keys.Reconstruct(b.cfg.KeyPrefix, req.ResourceID, req.ObjectID)

	opts := signer.GetOptions{Expiry: b.cfg.DownloadExpiry}

	// Extension is guaranteed present by the object id shape check.
	ext, _ := validate.Extension(req.ObjectID)
	if canonical, known := validate.CanonicalType(ext); known && b.cfg.InlineExtensions.Contains(ext) {
		// Inline rendering with a canonical content-type override so
		// browsers handle audio/video/PDF correctly regardless of what
		// was stored.
		opts.ResponseContentType = canonical
		opts.ResponseContentDisposition = "inline"
	} else {
		opts.ResponseContentDisposition = fmt.Sprintf("attachment; filename=%q", keys.DispositionFilename(req.ObjectID))
	}

	signedURL, err := b.signer.SignGet(ctx, key, opts)
	if err != nil {
		b.log.WarnContext(ctx, "presign download failed",
			slog.String("caller_ip", req.CallerIP),
			slog.String("resource_id", req.ResourceID),
			slog.String("object_id", req.ObjectID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	b.log.InfoContext(ctx, "download url issued",
		slog.String("caller_ip", req.CallerIP),
		slog.String("resource_id", req.ResourceID),
		slog.String("principal", principal),
		slog.String("object_id", req.ObjectID),
	)

	return signedURL, nil
}
