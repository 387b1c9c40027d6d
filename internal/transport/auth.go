package transport

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type callerKey struct{}

// CallerResolver resolves a caller name from a bearer token.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (string, error)
}

// CallerFromContext returns the caller name from context, if present.
func CallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey{}).(string)
	return caller, ok
}

// WithCaller stores caller in ctx.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			caller, err := resolver.ResolveCaller(r.Context(), token)
			if err != nil || caller == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// BearerToken extracts the token from the Authorization header. Websocket
// clients cannot set headers, so the access_token query parameter is
// accepted as a fallback.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); token != "" && token != auth {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

// TokenResolver checks bearer tokens against a fixed list from config.
// Tokens are kept only as SHA-256 digests.
type TokenResolver struct {
	digests [][sha256.Size]byte
}

func NewTokenResolver(tokens []string) *TokenResolver {
	r := &TokenResolver{}
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			r.digests = append(r.digests, sha256.Sum256([]byte(t)))
		}
	}
	return r
}

// ResolveCaller returns a stable caller name derived from the token digest.
func (r *TokenResolver) ResolveCaller(_ context.Context, token string) (string, error) {
	sum := sha256.Sum256([]byte(token))
	found := 0
	for _, d := range r.digests {
		found |= subtle.ConstantTimeCompare(sum[:], d[:])
	}
	if found != 1 {
		return "", ErrUnauthorized
	}
	return "key-" + hex.EncodeToString(sum[:4]), nil
}
