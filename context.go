package endpoint

import (
	"context"
	"net/http"
)

type contextKey[T any] struct{}

// SetValue stores a typed value in the request context. For use in middleware.
func SetValue[T any](r *http.Request, val T) *http.Request {
	ctx := context.WithValue(r.Context(), contextKey[T]{}, val)
	return r.WithContext(ctx)
}

// GetValue retrieves a typed value from the request context.
func GetValue[T any](ctx context.Context) (T, bool) {
	val, ok := ctx.Value(contextKey[T]{}).(T)
	return val, ok
}

// Inject returns middleware that makes the shared environment available to
// every Handle call on the request path. The environment is created once at
// process start and is read-only from the handlers' perspective; any
// internal resources (such as a connection pool) manage their own
// concurrency.
//
// Mounted endpoints whose requests arrive without injection respond with a
// 500 problem detail — never a panic.
func Inject[C any](env *C) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, SetValue(r, env))
		})
	}
}
