// Command example runs a server exposing a small routed API behind a
// logging filter and a per-route rate limiter, then drives it with a
// pooled client to show keep-alive connection reuse end to end.
package main

import (
	"fmt"
	"net"
	"time"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/client"
	"github.com/aberic/starry/internal/xlog"
	"github.com/aberic/starry/server"
)

func main() {
	logger := xlog.New(xlog.Options{Level: "info"})

	accessLog := func(ctx *server.Context) {
		logger.Infof("%s %s", ctx.Request.Method, ctx.Path())
	}

	router := server.NewRouter()
	api := router.Group("/api", accessLog)

	api.Get("/ping", func(ctx *server.Context) {
		ctx.WriteBody(starry.StatusOK, "text/plain", []byte("pong"))
	})

	api.Get("/users/:id", func(ctx *server.Context) {
		id, _ := ctx.Field("id")
		ctx.WriteBody(starry.StatusOK, "text/plain", []byte("user "+id))
	}, server.WithLimiter(server.NewLimiter(1000, 5, 0)))

	api.Post("/echo", func(ctx *server.Context) {
		ctx.WriteBody(starry.StatusOK, ctx.Request.ContentType, ctx.Request.Body)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Printf("listen: %v\n", err)
		return
	}

	srv := server.NewServer(router,
		server.WithLogger(logger),
		server.WithPoolSize(8),
		server.WithTimeouts(5*time.Second, 5*time.Second, 30*time.Second),
	)
	go func() {
		if err := srv.Serve(ln); err != nil {
			logger.Errorf("serve: %v", err)
		}
	}()
	defer srv.Close()

	addr := ln.Addr().String()
	httpClient := client.NewHttpClient(client.Options{
		IdleTimeout: 30 * time.Second,
		Logger:      logger,
	})
	defer httpClient.Close()

	resp, err := httpClient.Get("http://" + addr + "/api/ping")
	if err != nil {
		fmt.Printf("GET /api/ping: %v\n", err)
		return
	}
	fmt.Printf("GET /api/ping -> %d %s\n", resp.Status.Code, resp.Body())

	resp, err = httpClient.Get("http://" + addr + "/api/users/42")
	if err != nil {
		fmt.Printf("GET /api/users/42: %v\n", err)
		return
	}
	fmt.Printf("GET /api/users/42 -> %d %s\n", resp.Status.Code, resp.Body())

	resp, err = httpClient.Post("http://"+addr+"/api/echo", "text/plain", []byte("hello starry"))
	if err != nil {
		fmt.Printf("POST /api/echo: %v\n", err)
		return
	}
	fmt.Printf("POST /api/echo -> %d %s\n", resp.Status.Code, resp.Body())

	// A second round of requests reuses the pooled connection instead
	// of dialing again.
	resp, err = httpClient.Get("http://" + addr + "/api/ping")
	if err != nil {
		fmt.Printf("GET /api/ping (reused): %v\n", err)
		return
	}
	fmt.Printf("GET /api/ping (reused conn) -> %d %s\n", resp.Status.Code, resp.Body())

	// The limiter on /api/users/:id admits at most 5 requests per
	// 1000ms window. Admit blocks rather than rejects, so requests past
	// that budget wait until the window admits them instead of failing.
	for i := 0; i < 6; i++ {
		resp, err = httpClient.Get("http://" + addr + "/api/users/42")
		if err != nil {
			fmt.Printf("GET /api/users/42 (burst %d): %v\n", i, err)
			return
		}
		fmt.Printf("GET /api/users/42 (burst %d) -> %d\n", i, resp.Status.Code)
	}
}
