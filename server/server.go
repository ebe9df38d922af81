// Package server implements the per-connection accept loop, routing,
// and rate-limiting machinery this module's HTTP stack serves
// requests through.
package server

import (
	"net"
	"sync"
	"time"

	"github.com/aberic/starry/internal/xlog"
	"github.com/aberic/starry/workerpool"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Server accepts TCP connections on a listener and dispatches each one
// to a worker pool, which parses requests, runs them through a
// Router, and writes back responses until the connection closes or
// goes idle past IdleTimeout.
type Server struct {
	Router *Router

	PoolSize       int
	TaskQueueSize  int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestBytes int64
	Logger         xlog.Logger

	pool     *workerpool.Pool
	listener net.Listener
	closed   chan struct{}
	closeOne sync.Once
}

// Option configures a Server before it starts listening.
type Option func(*Server)

// WithPoolSize sets the fixed number of worker goroutines serving
// connections. Default 32.
func WithPoolSize(n int) Option {
	return func(s *Server) { s.PoolSize = n }
}

// WithTimeouts sets the per-connection read, write, and idle-between-
// requests timeouts.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		s.ReadTimeout = read
		s.WriteTimeout = write
		s.IdleTimeout = idle
	}
}

// WithMaxRequestBytes bounds the combined header-block and body size
// read for a single request; 0 (the default) leaves it unbounded.
func WithMaxRequestBytes(n int64) Option {
	return func(s *Server) { s.MaxRequestBytes = n }
}

// WithLogger attaches a structured logger. Default is xlog.NewNoop().
func WithLogger(l xlog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewServer returns a Server dispatching to router, with defaults
// applied before opts run.
func NewServer(router *Router, opts ...Option) *Server {
	s := &Server{
		Router:        router,
		PoolSize:      32,
		TaskQueueSize: 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		Logger:        xlog.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe binds addr and blocks, accepting connections and
// dispatching them to the worker pool, until the listener is closed
// by Close.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until it is closed by Close or
// returns a permanent error.
func (s *Server) Serve(ln net.Listener) error {
	s.listener = ln
	s.closed = make(chan struct{})
	s.pool = workerpool.NewBuilder().
		PoolSize(s.PoolSize).
		NamePrefix("starry-server-").
		TaskCount(s.TaskQueueSize).
		Create()

	s.Logger.Infof("listening on %s", ln.Addr().String())

	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-s.closed:
				return nil
			default:
			}
			return err
		}

		connID := uuid.NewString()
		c := &conn{
			srv: s,
			raw: nc,
			id:  connID,
			logger: s.Logger.WithFields(logrus.Fields{
				"conn_id":     connID,
				"remote_addr": nc.RemoteAddr().String(),
			}),
		}
		if execErr := s.pool.Execute(func() { c.serve() }); execErr != nil {
			s.Logger.Errorf("dropping connection %s: %v", connID, execErr)
			nc.Close()
		}
	}
}

// Close stops accepting new connections, releases every limiter the
// Router owns, and shuts down the worker pool. In-flight connections
// are not waited on.
func (s *Server) Close() error {
	var err error
	s.closeOne.Do(func() {
		if s.closed != nil {
			close(s.closed)
		}
		if s.listener != nil {
			err = s.listener.Close()
		}
		if s.Router != nil {
			s.Router.Close()
		}
		if s.pool != nil {
			s.pool.Close()
		}
	})
	return err
}
