package endpoint

import (
	"context"
	"net/http"
	"path"
	"runtime/debug"
	"sync"
	"time"
)

// Router holds mounted endpoints, middleware, and document configuration.
// It implements http.Handler.
type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
	routes     []routeInfo

	title       string
	version     string
	description string

	servers         []Server
	securitySchemes map[string]SecurityScheme
	tagDescs        map[string]string

	validator    Validator
	errorHandler ErrorHandler

	encoders []Encoder
	decoders []Decoder
	codecs   *codecRegistry

	mu sync.Mutex
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTitle sets the API title (used in the OpenAPI info block).
func WithTitle(title string) RouterOption {
	return func(r *Router) {
		r.title = title
	}
}

// WithVersion sets the API version (used in the OpenAPI info block).
func WithVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// WithDescription sets the API description (used in the OpenAPI info block).
func WithDescription(desc string) RouterOption {
	return func(r *Router) {
		r.description = desc
	}
}

// WithServers sets the OpenAPI servers array.
func WithServers(servers ...Server) RouterOption {
	return func(r *Router) {
		r.servers = servers
	}
}

// WithSecurityScheme registers an additional named security scheme for the
// OpenAPI document. The api_key scheme is always present.
func WithSecurityScheme(name string, scheme SecurityScheme) RouterOption {
	return func(r *Router) {
		if r.securitySchemes == nil {
			r.securitySchemes = make(map[string]SecurityScheme)
		}
		r.securitySchemes[name] = scheme
	}
}

// WithTagDescriptions sets descriptions for tags applied via WithTags.
func WithTagDescriptions(descs map[string]string) RouterOption {
	return func(r *Router) {
		r.tagDescs = descs
	}
}

// WithValidator sets a global request validator.
func WithValidator(v Validator) RouterOption {
	return func(r *Router) {
		r.validator = v
	}
}

// ErrorHandler is a custom writer for transport-level errors (binding,
// validation, missing environment). Handler errors always use the declared
// error-to-status conversion and are not routed through it.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// WithErrorHandler sets a custom transport error handler.
func WithErrorHandler(h ErrorHandler) RouterOption {
	return func(r *Router) {
		r.errorHandler = h
	}
}

// WithEncoder registers an additional response encoder.
func WithEncoder(enc Encoder) RouterOption {
	return func(r *Router) {
		r.encoders = append(r.encoders, enc)
	}
}

// WithDecoder registers an additional request body decoder.
func WithDecoder(dec Decoder) RouterOption {
	return func(r *Router) {
		r.decoders = append(r.decoders, dec)
	}
}

// New creates a Router. Title and version left unset fall back to the
// binary's build metadata (main module path and version).
func New(opts ...RouterOption) *Router {
	r := &Router{
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.title == "" || r.version == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			if r.title == "" && bi.Main.Path != "" {
				r.title = path.Base(bi.Main.Path)
			}
			if r.version == "" {
				r.version = bi.Main.Version
			}
		}
	}
	if r.version == "" {
		r.version = "(devel)"
	}

	r.codecs = newCodecRegistry(r.encoders, r.decoders)
	return r
}

// Use adds middleware to the router. Middleware is applied in the order
// added and wraps every mounted endpoint, including spec and docs handlers.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := http.Handler(r.mux)
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	handler.ServeHTTP(w, req)
}

// ListenAndServe starts an HTTP server on the given address. It blocks until
// the context is cancelled, then shuts down gracefully.
func (r *Router) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// addRoute registers a routeInfo with the router's mux and stores it for
// document generation. Global middleware is applied in ServeHTTP, not here —
// only group middleware is baked into ri.handler.
func (r *Router) addRoute(ri routeInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mux.Handle(ri.method+" "+ri.pattern, ri.handler)
	r.routes = append(r.routes, ri)
}
