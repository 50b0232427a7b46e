package endpoint

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that bounds each request. The deadline is set
// on the request context so handlers can observe it; when the deadline fires
// before the handler has written anything, the middleware responds with a
// 503 problem detail and discards whatever the handler writes afterwards.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &timeoutWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.wrote {
					tw.timedOut = true
					writeProblem(w, Error(http.StatusServiceUnavailable, "request timed out"))
				}
			}
		})
	}
}

// timeoutWriter serializes writes from the handler goroutine against the
// timeout response. Once the timeout response has been written, handler
// output is dropped.
type timeoutWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	wrote    bool
	timedOut bool
}

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timedOut {
		return len(b), nil
	}
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter (supports http.ResponseController).
func (w *timeoutWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
