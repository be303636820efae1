package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/response"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// Identifier resolves a bearer token to the user it belongs to.
type Identifier interface {
	Identify(token string) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// UserFromContext returns the authenticated user stored by RequireAuth.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

// ContextWithUser attaches an identity to the context the same way
// RequireAuth does.
func ContextWithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// RequireAuth validates the Authorization bearer token and stores the
// resolved user on the request context. Requests without a valid token get
// 401 before reaching the handler.
func RequireAuth(identifier Identifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}

			user, err := identifier.Identify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired token", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireRole restricts a route to users holding one of the given roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", nil)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.RespondError(w, http.StatusForbidden, "insufficient permissions", nil)
		})
	}
}
