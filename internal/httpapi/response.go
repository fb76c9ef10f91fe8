package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON envelope for error responses. It carries only a
// short category string; internal diagnostic detail stays in the logs.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON-encoded payload with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error envelope for the given status and category.
func writeError(w http.ResponseWriter, status int, category string) {
	writeJSON(w, status, errorBody{Error: category})
}
