// Package client implements a reusable per-host connection pool on
// top of this module's wire codec: Acquire a TcpStreamer to send one
// request, Release it back (or let it close) depending on whether the
// exchange left the connection reusable.
package client

import (
	"net"
	"sync/atomic"
)

// eventKind is sent to a streamer's watchdog goroutine to extend its
// idle deadline (Update) or force an immediate close (Break).
type eventKind int

const (
	eventUpdate eventKind = iota
	eventBreak
)

// TcpStreamer wraps one pooled TCP connection to a single host. alive
// is checked with an atomic load so Pool.Acquire can discard a
// streamer its watchdog has already closed without taking a lock.
type TcpStreamer struct {
	Host string
	Conn net.Conn

	alive   atomic.Bool
	watch   chan eventKind
	stopped chan struct{}
}

func newStreamer(host string, conn net.Conn) *TcpStreamer {
	s := &TcpStreamer{
		Host:    host,
		Conn:    conn,
		watch:   make(chan eventKind, 1),
		stopped: make(chan struct{}),
	}
	s.alive.Store(true)
	return s
}

// IsAlive reports whether the streamer's watchdog has not yet closed
// the underlying connection.
func (s *TcpStreamer) IsAlive() bool {
	return s.alive.Load()
}

// touch extends the streamer's idle deadline; called by Pool.Acquire
// when handing out a reused streamer, and by Pool.Release when the
// streamer goes back to its host's idle pool.
func (s *TcpStreamer) touch() {
	select {
	case s.watch <- eventUpdate:
	default:
	}
}

// retire tells the watchdog to close the connection immediately,
// rather than waiting for the idle timer. Used when an exchange left
// the connection in a non-reusable state. It waits until the watchdog
// takes the event or has already exited, so a pending Update cannot
// crowd the Break out of the one-slot watch channel.
func (s *TcpStreamer) retire() {
	select {
	case s.watch <- eventBreak:
	case <-s.stopped:
	}
}
