package server

import (
	"testing"

	starry "github.com/aberic/starry"
)

func reqFor(method starry.Method, path string) *Context {
	req := newTestRequest()
	req.Method = method
	req.URL.Location.Path = path
	return NewContext(req)
}

func TestRouterDispatchesToHandler(t *testing.T) {
	r := NewRouter()
	var got string
	r.Get("/users/:id", func(ctx *Context) {
		id, _ := ctx.Field("id")
		got = id
		ctx.WriteBody(starry.StatusOK, "text/plain", nil)
	})

	ctx := reqFor(starry.MethodGet, "/users/7")
	r.dispatch(ctx)

	if got != "7" {
		t.Fatalf("bound id = %q, want 7", got)
	}
	if !ctx.Executed() {
		t.Fatal("expected handler to commit a response")
	}
}

func TestRouterGroupAppliesPrefixAndFilters(t *testing.T) {
	root := NewRouter()
	var sawFilter bool
	group := root.Group("/api", func(ctx *Context) { sawFilter = true })
	group.Get("/ping", func(ctx *Context) {
		ctx.WriteBody(starry.StatusOK, "text/plain", nil)
	})

	ctx := reqFor(starry.MethodGet, "/api/ping")
	root.dispatch(ctx)

	if !sawFilter {
		t.Fatal("expected group filter to run")
	}
	if !ctx.Executed() {
		t.Fatal("expected handler to commit a response")
	}
}

func TestRouterUnmatchedPathReturnsNotFound(t *testing.T) {
	r := NewRouter()
	r.Get("/known", func(ctx *Context) { ctx.WriteBody(starry.StatusOK, "text/plain", nil) })

	ctx := reqFor(starry.MethodGet, "/unknown")
	r.dispatch(ctx)

	if ctx.Response.Status.Code != 404 {
		t.Fatalf("status = %d, want 404", ctx.Response.Status.Code)
	}
}

func TestRouterWrongMethodReturnsMethodNotAllowed(t *testing.T) {
	r := NewRouter()
	r.Get("/known", func(ctx *Context) { ctx.WriteBody(starry.StatusOK, "text/plain", nil) })

	ctx := reqFor(starry.MethodPost, "/known")
	r.dispatch(ctx)

	if ctx.Response.Status.Code != 405 {
		t.Fatalf("status = %d, want 405", ctx.Response.Status.Code)
	}
}
