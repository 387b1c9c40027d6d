package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type testResolver struct {
	tokenToCaller map[string]string
	err           error
}

func (r *testResolver) ResolveCaller(_ context.Context, token string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	caller, ok := r.tokenToCaller[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return caller, nil
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &testResolver{tokenToCaller: map[string]string{"token": "studio"}}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "studio", caller)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	resolver := &testResolver{tokenToCaller: map[string]string{"token": "studio"}}
	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ws/notifications?access_token=token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Invalid(t *testing.T) {
	resolver := &testResolver{err: errors.New("invalid")}

	handler := AuthMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "missing"))
}

func TestTokenResolver(t *testing.T) {
	r := NewTokenResolver([]string{"alpha", " ", "beta"})

	a, err := r.ResolveCaller(context.Background(), "alpha")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(a, "key-"))

	b, err := r.ResolveCaller(context.Background(), "beta")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = r.ResolveCaller(context.Background(), "gamma")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = NewTokenResolver(nil).ResolveCaller(context.Background(), "alpha")
	require.ErrorIs(t, err, ErrUnauthorized)
}
