package endpoint

import (
	"context"
)

// Void is used as a type parameter when a request carries no parameters or
// body, or when a response has no body (results in 204 No Content).
type Void struct{}

// Endpoint is the typed unit of request handling: one HTTP method and one
// path template bound to a request/response pair over a shared environment C.
//
// Endpoint values are constructed at startup and must be immutable — the
// same value serves every concurrent request, so Handle must not mutate
// receiver state.
type Endpoint[C, Req, Resp any] interface {
	// Method returns the HTTP method, e.g. http.MethodGet.
	Method() string

	// Path returns the colon-style path template, e.g. "/users/:id".
	Path() string

	// Handle processes one request. env is the shared environment injected
	// via the Inject middleware. Errors implementing StatusCoder determine
	// their own response status; the error value itself becomes the body.
	Handle(ctx context.Context, env *C, req *Req) (*Resp, error)
}

// Documented is optionally implemented by endpoints that contribute to the
// generated OpenAPI document. Routing behavior is identical with or without
// it.
type Documented[C, Req, Resp any] interface {
	Endpoint[C, Req, Resp]
	Docs() Docs[Resp]
}

// StatusCodeError is the capability required of documented error examples:
// a real error whose value carries its own transport status. The constraint
// guarantees, at declaration time, that every documented failure can be
// projected to a (status, body) pair.
type StatusCodeError interface {
	error
	StatusCoder
}

// Success declares one documented success response. A zero Status means the
// route's default success status.
type Success[Resp any] struct {
	Status      int
	Description string
	Example     *Resp
}

// Failure declares one documented error response. The response status is
// taken from the example's own StatusCode conversion.
type Failure struct {
	Description string
	Example     StatusCodeError
}

// Docs carries the human-facing and schema metadata of a documented
// endpoint. All fields are optional; a zero Tag falls back to DefaultTag.
type Docs[Resp any] struct {
	Summary     string
	Description string
	Tag         Tag
	Deprecated  bool
	Successes   []Success[Resp]
	Failures    []Failure
}

// Tag groups operations in the generated document.
type Tag struct {
	Name        string
	Description string
}

// DefaultTag is applied to documented endpoints that declare no tag.
var DefaultTag = Tag{Name: "api", Description: "This is the catch all tag."}
