// Package endpoint is an endpoint-first HTTP routing and API-documentation
// layer for Go. An operation is defined once, as a value implementing
// Endpoint, and the library projects it three ways: a mounted route, an
// http.Handler that owns decoding and encoding, and (for documented
// endpoints) an OpenAPI 3.1 path item with component schemas.
//
// The core interface binds one method and path template to a typed
// request/response pair over a shared environment C:
//
//	type GetUser struct{}
//
//	func (GetUser) Method() string { return http.MethodGet }
//	func (GetUser) Path() string   { return "/users/:id" }
//
//	func (GetUser) Handle(ctx context.Context, env *Env, req *GetUserRequest) (*User, error) {
//	    return env.Store.User(ctx, req.ID)
//	}
//
// Path templates use colon-prefixed parameters and are translated to the
// brace form shared by Go's ServeMux and OpenAPI ("/users/:id" becomes
// "/users/{id}").
//
// Endpoints are mounted with the generic Mount function:
//
//	r := endpoint.New(endpoint.WithTitle("Users API"), endpoint.WithVersion("1.0.0"))
//	r.Use(endpoint.Inject(env))
//	endpoint.Mount(r, GetUser{})
//	r.ServeSpec("/openapi.json")
//
// The shared environment is injected once via the Inject middleware and
// handed to every Handle call; handlers never touch global state.
//
// Endpoints that also implement Documented contribute operation metadata,
// example responses, and component schemas to the generated document.
//
// Middleware uses the standard func(http.Handler) http.Handler signature,
// so the entire Go middleware ecosystem works natively.
package endpoint
