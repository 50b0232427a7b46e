package endpoint

// Group is a collection of endpoints under a shared prefix with shared
// middleware and tags. The prefix is prepended to each endpoint's translated
// pattern; the endpoints themselves stay prefix-agnostic.
type Group struct {
	router     *Router
	prefix     string
	middleware []Middleware
	tags       []string
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithGroupTags adds default tags to all endpoints mounted on the group.
func WithGroupTags(tags ...string) GroupOption {
	return func(g *Group) {
		g.tags = append(g.tags, tags...)
	}
}

// WithGroupMiddleware adds middleware applied to every endpoint mounted on
// the group.
func WithGroupMiddleware(mw ...Middleware) GroupOption {
	return func(g *Group) {
		g.middleware = append(g.middleware, mw...)
	}
}

// Group creates a new endpoint group with the given prefix and options.
func (r *Router) Group(prefix string, opts ...GroupOption) *Group {
	g := &Group{
		router: r,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// addRoute implements Registrar for Group.
func (g *Group) addRoute(ri routeInfo) {
	ri.pattern = g.prefix + ri.pattern
	ri.tags = append(g.tags, ri.tags...)
	g.router.addRoute(ri)
}

func (g *Group) getValidator() Validator       { return g.router.validator }
func (g *Group) getErrorHandler() ErrorHandler { return g.router.errorHandler }
func (g *Group) getCodecs() *codecRegistry     { return g.router.codecs }
func (g *Group) routeMiddleware() []Middleware { return g.middleware }
