package httpapi

import (
	"context"
	"net/http"
)

// Identity is established upstream (API gateway / auth service) and handed
// over via headers; this module never verifies credentials itself.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userRoleKey
)

func authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerUserID)
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing identity"})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, id)
		ctx = context.WithValue(ctx, userRoleKey, r.Header.Get(headerUserRole))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, _ := r.Context().Value(userRoleKey).(string); role != roleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin role required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
