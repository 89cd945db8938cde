// Package response writes the API's JSON, error and image bodies.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply. Details carries the
// underlying error text or, for validation failures, a field to message map.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON encodes body as the reply. A nil body sends headers only, which
// is how 204 replies are produced. The body is encoded before the status is
// written, so a value that cannot be encoded turns into a 500.
func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		w.WriteHeader(status)
		return
	}

	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("response: encode %T: %v", body, err)
		w.WriteHeader(http.StatusInternalServerError)
		data = []byte(`{"error":"failed to encode response"}`)
	} else {
		w.WriteHeader(status)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		log.Printf("response: write: %v", err)
	}
}

// RespondError replies with an ErrorResponse.
//
//	response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	if s, ok := details.(string); ok && s == "" {
		details = nil
	}
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// RespondPNG writes a rendered chart. Charts depend on the current date and
// index rates, so they are never cached.
func RespondPNG(w http.ResponseWriter, png []byte) {
	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("response: write chart: %v", err)
	}
}
