// Package response provides utilities for sending consistent HTTP responses.
// Every payload uses the envelope {success, data|error, count?, source?}.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the uniform JSON body returned by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Source  string `json:"source,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// RespondData sends a success envelope carrying data.
func RespondData(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondList sends a success envelope for a collection read, tagging the
// element count and where the data came from (cache or db).
func RespondList(w http.ResponseWriter, status int, data any, count int, source string) {
	RespondJSON(w, status, Envelope{Success: true, Data: data, Count: &count, Source: source})
}

// RespondSourced sends a success envelope for a single-entity read tagged
// with its source.
func RespondSourced(w http.ResponseWriter, status int, data any, source string) {
	RespondJSON(w, status, Envelope{Success: true, Data: data, Source: source})
}

// RespondError sends an error envelope with the given status code.
// The message should be a user-friendly error description; details can be
// an underlying error string, a field-message map, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "IPO not found", nil)
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, Envelope{Success: false, Error: message, Details: details})
}
