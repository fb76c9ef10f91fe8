// Package httpapi exposes the gateway's two endpoints over HTTP and maps
// pipeline outcomes onto the error taxonomy.
package httpapi

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastelone/ep-media-upload/internal/access"
	"github.com/dcastelone/ep-media-upload/internal/broker"
)

// Handler serves the upload-url and download endpoints.
type Handler struct {
	broker    *broker.Broker
	extractor access.Extractor
}

// NewHandler creates a Handler.
func NewHandler(b *broker.Broker, extractor access.Extractor) *Handler {
	return &Handler{broker: b, extractor: extractor}
}

// Routes registers the gateway endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/resource/{resourceID}/upload-url", h.uploadURL)
	r.Get("/resource/{resourceID}/download", h.download)
}

// uploadURL handles GET /resource/{resourceId}/upload-url?name=&type=.
func (h *Handler) uploadURL(w http.ResponseWriter, r *http.Request) {
	result, err := h.broker.Upload(r.Context(), broker.UploadRequest{
		ResourceID:  chi.URLParam(r, "resourceID"),
		Filename:    r.URL.Query().Get("name"),
		ContentType: r.URL.Query().Get("type"),
		CallerIP:    callerIP(r),
		Creds:       h.extractor.FromRequest(r),
	})
	if err != nil {
		status, category := mapError(err)
		writeError(w, status, category)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// download handles GET /resource/{resourceId}/download?object=.
// On success the caller is redirected to the short-lived signed URL.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	signedURL, err := h.broker.Download(r.Context(), broker.DownloadRequest{
		ResourceID: chi.URLParam(r, "resourceID"),
		ObjectID:   r.URL.Query().Get("object"),
		CallerIP:   callerIP(r),
		Creds:      h.extractor.FromRequest(r),
	})
	if err != nil {
		status, category := mapError(err)
		writeError(w, status, category)
		return
	}

	http.Redirect(w, r, signedURL, http.StatusFound)
}

// callerIP resolves the caller address used as the rate-limit key and in
// audit logs. chi's RealIP middleware has already rewritten RemoteAddr from
// proxy headers when configured.
func callerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
