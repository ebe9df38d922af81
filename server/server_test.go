package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/internal/xlog"
)

func TestServerServesOneRequestOverTCP(t *testing.T) {
	r := NewRouter()
	r.Get("/ping", func(ctx *Context) {
		ctx.WriteBody(starry.StatusOK, "text/plain", []byte("pong"))
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := NewServer(r, WithLogger(xlog.NewNoop()), WithPoolSize(2))
	go srv.Serve(ln)
	defer srv.Close()

	conn, err := net.DialTimeout("tcp", ln.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(2 * time.Second))
	req := "GET /ping HTTP/1.1\r\nHost: " + ln.Addr().String() + "\r\nConnection: close\r\n\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}

	br := bufio.NewReader(conn)
	line, err := br.ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}
	if line != "HTTP/1.1 200 OK\r\n" {
		t.Fatalf("status line = %q", line)
	}
}

func TestServerCloseStopsAccepting(t *testing.T) {
	r := NewRouter()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := NewServer(r, WithLogger(xlog.NewNoop()))
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()

	if err := srv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("Serve returned %v, want nil after Close", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}
