package endpoint

import (
	"fmt"
	"net/http"
	"reflect"
)

// Registrar is the interface accepted by Mount. Both *Router and *Group
// implement it.
type Registrar interface {
	addRoute(ri routeInfo)
	getValidator() Validator
	getErrorHandler() ErrorHandler
	getCodecs() *codecRegistry
	routeMiddleware() []Middleware
}

func (r *Router) getValidator() Validator       { return r.validator }
func (r *Router) getErrorHandler() ErrorHandler { return r.errorHandler }
func (r *Router) getCodecs() *codecRegistry     { return r.codecs }
func (r *Router) routeMiddleware() []Middleware { return nil }

// Mount registers an endpoint: the colon template is translated to the brace
// pattern, the bridge handler is built, and the route metadata is recorded
// for document generation. The (method, translated path) pair identifies the
// route; mounting a duplicate panics, matching http.ServeMux semantics.
//
// If the endpoint also implements Documented, its metadata is captured for
// the OpenAPI projection. Documentation never changes routing behavior.
func Mount[C, Req, Resp any](reg Registrar, ep Endpoint[C, Req, Resp], opts ...RouteOption) {
	ri := routeInfo{
		method:      ep.Method(),
		template:    ep.Path(),
		pattern:     Translate(ep.Path()),
		operationID: operationID(ep),
		reqType:     reflect.TypeFor[Req](),
		respType:    reflect.TypeFor[Resp](),
	}
	if ri.pattern == "" {
		ri.pattern = "/"
	}

	for _, opt := range opts {
		opt(&ri)
	}

	// Default status: Void response → 204, otherwise 200.
	if ri.status == 0 {
		if ri.respType == reflect.TypeFor[Void]() {
			ri.status = http.StatusNoContent
		} else {
			ri.status = http.StatusOK
		}
	}

	if d, ok := ep.(Documented[C, Req, Resp]); ok {
		ri.docs = eraseDocs(d.Docs(), ri.status, ri.operationID)
	}

	ri.handler = &bridge[C, Req, Resp]{
		ep:        ep,
		status:    ri.status,
		validator: reg.getValidator(),
		errH:      reg.getErrorHandler(),
		codecs:    reg.getCodecs(),
	}

	// Apply route-level middleware (from Group).
	routeMW := reg.routeMiddleware()
	for i := len(routeMW) - 1; i >= 0; i-- {
		ri.handler = routeMW[i](ri.handler)
	}

	reg.addRoute(ri)
}

// operationID derives the OpenAPI operation id from the endpoint's type
// name, pointer-unwrapped.
func operationID(ep any) string {
	t := reflect.TypeOf(ep)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// eraseDocs converts Docs[Resp] to its type-erased mount-time form.
// Zero-status successes inherit the route's default; failure statuses come
// from each example's own StatusCode conversion, so a failure declared
// without an example is a mount-time error.
func eraseDocs[Resp any](d Docs[Resp], defaultStatus int, opID string) *docMeta {
	m := &docMeta{
		summary:     d.Summary,
		description: d.Description,
		tag:         d.Tag,
		deprecated:  d.Deprecated,
	}
	if m.tag.Name == "" {
		m.tag = DefaultTag
	}

	for _, s := range d.Successes {
		status := s.Status
		if status == 0 {
			status = defaultStatus
		}
		m.successes = append(m.successes, responseMeta{
			status:      status,
			description: s.Description,
			example:     s.Example,
		})
	}

	for _, f := range d.Failures {
		if f.Example == nil {
			panic(fmt.Sprintf("endpoint: %s declares a failure with a nil example", opID))
		}
		m.failures = append(m.failures, responseMeta{
			status:      f.Example.StatusCode(),
			description: f.Description,
			example:     f.Example,
		})
		if m.errType == nil {
			m.errType = reflect.TypeOf(f.Example)
		}
	}

	return m
}
