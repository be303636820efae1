// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/validation"
)

// ValidateResourceID validates that the named URL parameter is a well-formed
// UUID. A malformed ID is indistinguishable from an ID that matches nothing,
// so it gets the same 404 and resource-specific message a miss would get.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateResourceID("id", "IPO not found"))
//	    r.Get("/", handler.GetIPO)
//	})
func ValidateResourceID(param, notFoundMessage string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)

			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusNotFound, notFoundMessage, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
