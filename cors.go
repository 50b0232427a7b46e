package endpoint

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	AllowOrigins     []string // "*" allows any origin
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // seconds
}

// CORS returns middleware that handles Cross-Origin Resource Sharing. The
// request's Origin header is matched against the allowlist and echoed back
// when it matches; preflight requests (OPTIONS with an
// Access-Control-Request-Method header) are answered with 204 and never
// reach the mounted endpoints. If no config is provided, permissive defaults
// are used.
func CORS(cfg ...CORSConfig) Middleware {
	c := CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	if len(cfg) > 0 {
		c = cfg[0]
	}

	allowAll := slices.Contains(c.AllowOrigins, "*")
	methods := strings.Join(c.AllowMethods, ", ")
	headers := strings.Join(c.AllowHeaders, ", ")
	expose := strings.Join(c.ExposeHeaders, ", ")
	maxAge := ""
	if c.MaxAge > 0 {
		maxAge = strconv.Itoa(c.MaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := ""
			switch {
			case origin == "":
				// Same-origin or non-browser request.
			case allowAll && !c.AllowCredentials:
				allowed = "*"
			case allowAll || slices.Contains(c.AllowOrigins, origin):
				allowed = origin
			}

			if allowed != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				if c.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				if expose != "" {
					w.Header().Set("Access-Control-Expose-Headers", expose)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed != "" {
					w.Header().Set("Access-Control-Allow-Methods", methods)
					w.Header().Set("Access-Control-Allow-Headers", headers)
					if maxAge != "" {
						w.Header().Set("Access-Control-Max-Age", maxAge)
					}
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
