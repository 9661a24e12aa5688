// Package middleware provides the HTTP middleware stack: identity
// resolution, role checks, request logging, panic recovery, CORS and
// rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aymanhs/souq/pkg/auth"
	"github.com/aymanhs/souq/pkg/response"
)

// Identity is the verified caller identity placed in the request context
// by Authenticate. Downstream code trusts these values.
type Identity struct {
	UserID uint
	Role   string
}

type identityKey struct{}

// TokenCookie is the cookie carrying the access token, kept for clients
// that authenticate via cookie instead of the Authorization header.
const TokenCookie = "JwtToken"

// IdentityFromCtx returns the verified identity stored by Authenticate.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// extractToken reads the credential from the Authorization header or,
// failing that, the token cookie.
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate verifies the caller's credential and stores the resulting
// Identity in the request context. Requests without a valid token are
// rejected before reaching the handler.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			response.Unauthorized(w, "Access denied")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := withIdentity(r.Context(), Identity{UserID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows access only to authenticated callers holding one of
// the given roles. Must be mounted after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromCtx(r.Context())
			if !ok || !allowed[id.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
