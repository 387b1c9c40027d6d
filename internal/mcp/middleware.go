package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const callerKey contextKey = iota

// getCaller returns the authenticated caller stored by the auth middleware.
func getCaller(ctx context.Context) string {
	v, _ := ctx.Value(callerKey).(string)
	return v
}

// CallerResolver maps a bearer token to a caller name.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (string, error)
}

var errUnauthorized = errors.New("unauthorized")

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(resolver CallerResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", errUnauthorized)
			}

			auth := extra.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", errUnauthorized)
			}

			caller, err := resolver.ResolveCaller(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errUnauthorized, err)
			}
			if caller == "" {
				return nil, fmt.Errorf("%w: invalid bearer token", errUnauthorized)
			}

			return next(context.WithValue(ctx, callerKey, caller), method, req)
		}
	}
}

// noAuthMiddleware tags every request with a fixed caller.
func noAuthMiddleware(caller string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(context.WithValue(ctx, callerKey, caller), method, req)
		}
	}
}
