package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// The gateway authenticates against the hosted provider and forwards the
// subject as X-User-Id; this service trusts that header.
const HeaderUserID = "X-User-Id"

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxUserID        ctxKey = "user_id"
)

// RequireUserID rejects requests without an authenticated subject and
// stores the user id in the request context.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			writeError(w, http.StatusUnauthorized, "missing required header: X-User-Id")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(ctx context.Context) string {
	if v := ctx.Value(ctxUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
