package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/services/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated principal ID in the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "Authorization token required")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(req.Context(), principalKey, claims.UserID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// PrincipalID returns the authenticated principal stored by RequireAuth, or
// an empty string outside an authenticated request.
func PrincipalID(ctx context.Context) string {
	id, _ := ctx.Value(principalKey).(string)
	return id
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(api.Error{Error: msg})
}
