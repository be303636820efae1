package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// parseJSON decodes a request body into the given request type. Unknown
// fields are tolerated; a missing body is an error.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}

// validationDetails extracts the per-field message map from a validation
// error so the envelope can carry structured details.
func validationDetails(err error) any {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return err.Error()
}
