package server

import (
	"strings"
	"sync"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/router"
)

// Handler serves one matched request through a committed Context.
type Handler func(ctx *Context)

type route struct {
	handler   Handler
	extension *Extension
}

// Router groups path registrations under a shared prefix and a shared
// set of filters applied to every route registered through it, on top
// of a single trie shared by the whole tree of groups.
type Router struct {
	pattern string
	filters []Filter
	root    *router.Root[route]
	tracker *extTracker
}

// extTracker collects every Extension registered anywhere in a
// Router's group tree, so Close can release every limiter a Server
// owns without the caller having to keep its own list.
type extTracker struct {
	mu         sync.Mutex
	extensions []*Extension
}

func (t *extTracker) record(e *Extension) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.extensions = append(t.extensions, e)
}

func (t *extTracker) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.extensions {
		e.Close()
	}
}

// NewRouter returns the root Router, with pattern "" and an empty
// trie each Group shares.
func NewRouter() *Router {
	return &Router{root: router.NewRoot[route](), tracker: &extTracker{}}
}

// Group returns a child Router whose registrations are prefixed with
// r's own pattern plus pattern, and whose requests run r's filters
// before the group's own.
func (r *Router) Group(pattern string, filters ...Filter) *Router {
	return &Router{
		pattern: r.pattern + pattern,
		filters: append(append([]Filter{}, r.filters...), filters...),
		root:    r.root,
		tracker: r.tracker,
	}
}

// Handle registers handler for method and pattern (relative to the
// group's own prefix), with an optional per-route limiter and
// downgrade rule layered on top of the group's filters.
func (r *Router) Handle(method, pattern string, handler Handler, opts ...RouteOption) {
	full := trimSlash(r.pattern + pattern)
	ext := &Extension{Filters: append([]Filter{}, r.filters...)}
	for _, opt := range opts {
		opt(ext)
	}
	r.tracker.record(ext)
	r.root.Add(full, method, route{handler: handler, extension: ext})
}

// Close releases every limiter registered on any route in this
// Router's group tree.
func (r *Router) Close() {
	r.tracker.closeAll()
}

// RouteOption customizes a single route's Extension at registration
// time.
type RouteOption func(*Extension)

// WithLimiter attaches a rate limiter to a route.
func WithLimiter(l *Limiter) RouteOption {
	return func(e *Extension) { e.Limiter = l }
}

// WithFilter appends a route-specific filter, run after the group's
// own filters.
func WithFilter(f Filter) RouteOption {
	return func(e *Extension) { e.Filters = append(e.Filters, f) }
}

// WithDowngrade attaches a protocol downgrade rule to a route.
func WithDowngrade(d Downgrade) RouteOption {
	return func(e *Extension) { e.Downgrade = d }
}

// Get registers a GET route.
func (r *Router) Get(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("GET", pattern, handler, opts...)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("POST", pattern, handler, opts...)
}

// Put registers a PUT route.
func (r *Router) Put(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("PUT", pattern, handler, opts...)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("DELETE", pattern, handler, opts...)
}

// Patch registers a PATCH route.
func (r *Router) Patch(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("PATCH", pattern, handler, opts...)
}

// Head registers a HEAD route.
func (r *Router) Head(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("HEAD", pattern, handler, opts...)
}

// Options registers an OPTIONS route.
func (r *Router) Options(pattern string, handler Handler, opts ...RouteOption) {
	r.Handle("OPTIONS", pattern, handler, opts...)
}

// dispatch looks up the trie for req and, on a match, runs the
// route's extension and handler against ctx. It always commits a
// response: 404 for no matching path, 405 if a different method
// matches the same literal path trie under another method.
func (r *Router) dispatch(ctx *Context) {
	path := ctx.Path()
	method := string(ctx.Request.Method)

	rt, fields, ok := r.root.Lookup(path, method)
	if !ok {
		if r.anyMethodMatches(path) {
			ctx.WriteError(starry.ErrMethodNotAllowed)
			return
		}
		ctx.WriteError(starry.ErrRouteNotFound)
		return
	}

	ctx.bindFields(fields)
	rt.extension.exec(ctx)
	if ctx.Executed() {
		return
	}
	rt.handler(ctx)
	if !ctx.Executed() {
		ctx.WriteError(starry.NewError(starry.UserError, "handler did not commit a response"))
	}
}

func (r *Router) anyMethodMatches(path string) bool {
	for _, m := range []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"} {
		if _, _, ok := r.root.Lookup(path, m); ok {
			return true
		}
	}
	return false
}

// trimSlash strips a trailing slash from pattern, unless pattern is
// exactly "/".
func trimSlash(pattern string) string {
	if len(pattern) > 1 && strings.HasSuffix(pattern, "/") {
		return strings.TrimSuffix(pattern, "/")
	}
	return pattern
}
