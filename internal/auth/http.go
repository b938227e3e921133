// ABOUTME: HTTP middleware for bearer credential authentication
// ABOUTME: Attaches the verified Identity to the request context

package auth

import (
	"net/http"
)

// RequireAuth creates an HTTP middleware that authenticates the bearer
// credential and adds the caller Identity to the request context. Requests
// without a valid credential are rejected with 401 and the standard error
// envelope; workspace-level authorization stays with the handlers.
func RequireAuth(guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := guard.Authenticate(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
