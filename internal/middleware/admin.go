package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/santos123-art/variety-vibe-store/internal/profile"
)

// RoleStore resolves exactly one role value for a user id.
type RoleStore interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// RequireAdmin gates admin routes on the profile's role column. The check
// blocks the request until the role resolves; any lookup failure denies
// access rather than granting it. Must run after RequireUserID.
func RequireAdmin(roles RoleStore, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "missing required header: X-User-Id")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			role, err := roles.GetRole(ctx, userID)
			if err != nil {
				logger.Printf("role lookup for %s failed: %v", userID, err)
				writeError(w, http.StatusForbidden, "access denied")
				return
			}
			if role != profile.RoleAdmin {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
