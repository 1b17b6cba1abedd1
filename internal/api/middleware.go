package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// BearerAuth rejects requests whose Authorization header does not carry the
// shared secret
func BearerAuth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if !strings.HasPrefix(token, "Bearer ") || strings.TrimPrefix(token, "Bearer ") != secret {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
