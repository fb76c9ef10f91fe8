package broker

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/keys"
	"github.com/dcastelone/ep-media-upload/internal/signer"
	"github.com/dcastelone/ep-media-upload/internal/validate"
)

// UploadRequest carries the caller's upload-intent parameters.
type UploadRequest struct {
	ResourceID  string
	Filename    string
	ContentType string
	CallerIP    string
	Creds       access.Credentials
}

// UploadResult is returned to the caller on success. DownloadReference is a
// relative locator for the download pipeline, never a storage-provider URL;
// the backing bucket stays fully private.
type UploadResult struct {
	UploadURL         string `json:"uploadUrl"`
	DownloadReference string `json:"downloadReference"`
	DispositionHeader string `json:"dispositionHeader"`
}

// Upload validates the request, authorizes the caller, derives a fresh
// storage key, and asks the signer for a PUT URL with the response-shaping
// headers bound into the signature.
func (b *Broker) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if !validate.ResourceID(req.ResourceID) {
		return nil, invalidInput("resource id")
	}

	principal, err := b.gate.Authorize(ctx, req.ResourceID, req.CallerIP, req.Creds)
	if err != nil {
		return nil, err
	}

	if !b.limiter.Allow(req.CallerIP) {
		b.log.WarnContext(ctx, "upload rate limited",
			slog.String("caller_ip", req.CallerIP),
			slog.String("resource_id", req.ResourceID),
		)
		return nil, ErrRateLimited
	}

	if b.signer == nil {
		return nil, ErrMisconfigured
	}

	if req.Filename == "" || req.ContentType == "" {
		return nil, invalidInput("filename and content type required")
	}

	ext, ok := validate.Extension(req.Filename)
	if !ok {
		return nil, invalidInput("filename has no extension")
	}
	if !b.cfg.AllowedExtensions.Allows(ext) {
		return nil, invalidInput("file type not allowed")
	}

	if !validate.ContentType(ext, req.ContentType) {
		return nil, invalidInput("content type does not match extension")
	}

	objectID := keys.NewObjectID(ext)
	key := keys.Derive(b.cfg.KeyPrefix, req.ResourceID, objectID)
	disposition := fmt.Sprintf("attachment; filename=%q", keys.DispositionFilename(req.Filename))

	uploadURL, err := b.signer.SignPut(ctx, key, signer.PutOptions{
		ContentType:        req.ContentType,
		ContentDisposition: disposition,
		Expiry:             b.cfg.UploadExpiry,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "presign upload failed",
			slog.String("caller_ip", req.CallerIP),
			slog.String("resource_id", req.ResourceID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	b.log.InfoContext(ctx, "upload url issued",
		slog.String("caller_ip", req.CallerIP),
		slog.String("resource_id", req.ResourceID),
		slog.String("principal", principal),
		slog.String("object_id", objectID),
	)

	return &UploadResult{
		UploadURL:         uploadURL,
		DownloadReference: downloadReference(req.ResourceID, objectID),
		DispositionHeader: disposition,
	}, nil
}

// downloadReference builds the relative locator handed back to the caller.
func downloadReference(resourceID, objectID string) string {
	return "/resource/" + url.PathEscape(resourceID) + "/download?object=" + url.QueryEscape(objectID)
}
