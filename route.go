package endpoint

import (
	"net/http"
	"reflect"
)

// routeInfo holds the metadata of one mounted endpoint, used for both
// request dispatch and OpenAPI generation.
type routeInfo struct {
	method   string
	template string // colon form, as declared by the endpoint
	pattern  string // brace form, shared by the mux and the document

	operationID string
	status      int
	tags        []string

	reqType  reflect.Type
	respType reflect.Type

	docs *docMeta // nil for undocumented endpoints

	handler http.Handler
}

// docMeta is the type-erased form of Docs[Resp], captured at mount time.
type docMeta struct {
	summary     string
	description string
	tag         Tag
	deprecated  bool

	successes []responseMeta
	failures  []responseMeta

	errType reflect.Type // concrete type of the first failure example
}

// responseMeta is one declared (status, description, example) entry.
type responseMeta struct {
	status      int
	description string
	example     any
}

// RouteOption configures a route at mount time.
type RouteOption func(*routeInfo)

// WithStatus sets the default HTTP success status for the route.
func WithStatus(code int) RouteOption {
	return func(ri *routeInfo) {
		ri.status = code
	}
}

// WithOperationID overrides the operation id derived from the endpoint's
// type name.
func WithOperationID(id string) RouteOption {
	return func(ri *routeInfo) {
		ri.operationID = id
	}
}

// WithTags adds OpenAPI tags beyond the endpoint's own.
func WithTags(tags ...string) RouteOption {
	return func(ri *routeInfo) {
		ri.tags = append(ri.tags, tags...)
	}
}
