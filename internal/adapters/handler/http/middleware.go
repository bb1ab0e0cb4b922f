package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticator resolves the bearer token into a principal and stores it
// in the request context.
func Authenticator(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing token", "an authorization token is required")
				return
			}

			principal, err := verifier.Verify(r.Context(), strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token", "the provided token is not valid or has expired")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, *principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
			return
		}
		if !principal.IsAdmin() {
			writeError(w, http.StatusForbidden, "access denied", "administrator privileges are required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(domain.Principal)
	return principal, ok
}
