package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"instudio/internal/domain"
	"instudio/pkg/logger"
)

type claimsKey struct{}

func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*domain.Claims)
	return c, ok
}

func WithClaims(ctx context.Context, c *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

type Authenticator struct {
	tokens domain.TokenManager
	logger logger.Logger
}

func NewAuthenticator(tokens domain.TokenManager, logger logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, logger: logger}
}

// Require rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) Require(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			unauthorized(w, "Missing bearer token.")
			return
		}

		claims, err := a.tokens.Parse(r.Context(), raw)
		if err != nil {
			if domain.KindOf(err) == domain.KindUnauthorized {
				unauthorized(w, err.Error())
				return
			}
			a.logger.ErrorContext(r.Context(), "Token check failed", map[string]interface{}{"error": err.Error()})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": nil, "errors": http.StatusText(http.StatusInternalServerError)})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="instudio"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": nil, "errors": msg})
}
