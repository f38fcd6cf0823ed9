package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Code     string   `json:"code,omitempty"`
	Required []string `json:"required,omitempty"`
	Example  string   `json:"example,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody with the given status.
func WriteError(w http.ResponseWriter, status int, body ErrorBody) error {
	return WriteJSON(w, status, body)
}

// SetNoCache marks a response as never cacheable by clients or proxies.
func SetNoCache(h http.Header) {
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// WriteBinary writes data with an explicit length and no-cache headers.
func WriteBinary(w http.ResponseWriter, contentType string, data []byte) error {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(data)))
	SetNoCache(h)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}
