package server

import starry "github.com/aberic/starry"

// Filter inspects or mutates a Context before its route handler runs.
// A Filter that commits a response (via one of Context's Write*
// methods) short-circuits the rest of the chain and the handler
// itself.
type Filter func(ctx *Context)

// Downgrade selects the HTTP version a response is serialized with,
// overriding the request's own version. A nil Downgrade leaves the
// request's version untouched.
type Downgrade func(req *starry.Request) (starry.Version, bool)

// Extension bundles the per-route cross-cutting behavior a Router
// attaches to every request it serves: an optional rate limiter, an
// ordered filter chain, and an optional protocol downgrade rule.
type Extension struct {
	Limiter   *Limiter
	Filters   []Filter
	Downgrade Downgrade
}

// exec runs the limiter check and then the filter chain in order,
// stopping as soon as the limiter rejects the request or any filter
// commits a response.
func (e *Extension) exec(ctx *Context) {
	if e == nil {
		return
	}
	if e.Limiter != nil && !e.Limiter.Admit() {
		ctx.WriteError(starry.ErrLimiterRejected)
		return
	}
	for _, f := range e.Filters {
		if ctx.Executed() {
			return
		}
		f(ctx)
	}
	if e.Downgrade != nil && !ctx.Executed() {
		if v, ok := e.Downgrade(ctx.Request); ok {
			ctx.Response.Version = v
		}
	}
}

// Close releases the Extension's limiter goroutine, if any. Safe to
// call on a nil Extension or one with no limiter.
func (e *Extension) Close() {
	if e == nil || e.Limiter == nil {
		return
	}
	e.Limiter.Close()
}
