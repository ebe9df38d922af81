package client

import (
	"net"
	"testing"
	"time"

	"github.com/aberic/starry/internal/clock"
	"github.com/aberic/starry/internal/xlog"
)

func newPipeStreamer(t *testing.T) (*TcpStreamer, net.Conn) {
	t.Helper()
	local, remote := net.Pipe()
	return newStreamer("test-host", local), remote
}

func TestWatchdogClosesOnBreak(t *testing.T) {
	s, remote := newPipeStreamer(t)
	defer remote.Close()

	c, _ := clock.NewFake()
	done := make(chan struct{})
	go func() { runWatchdog(s, time.Hour, c, xlog.NewNoop()); close(done) }()

	s.retire()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not exit after Break")
	}
	if s.IsAlive() {
		t.Fatal("expected streamer to be marked dead after Break")
	}
}

func TestWatchdogClosesOnIdleTimeout(t *testing.T) {
	s, remote := newPipeStreamer(t)
	defer remote.Close()

	c, fc := clock.NewFake()
	done := make(chan struct{})
	go func() { runWatchdog(s, time.Second, c, xlog.NewNoop()); close(done) }()

	fc.Advance(2 * time.Second)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not exit after idle timeout")
	}
	if s.IsAlive() {
		t.Fatal("expected streamer to be marked dead after idle timeout")
	}
}

func TestWatchdogUpdateExtendsDeadline(t *testing.T) {
	s, remote := newPipeStreamer(t)
	defer remote.Close()

	c, fc := clock.NewFake()
	done := make(chan struct{})
	go func() { runWatchdog(s, time.Second, c, xlog.NewNoop()); close(done) }()

	fc.Advance(900 * time.Millisecond)
	s.touch()
	fc.Advance(900 * time.Millisecond)

	select {
	case <-done:
		t.Fatal("watchdog exited despite a refreshing Update")
	case <-time.After(200 * time.Millisecond):
	}

	s.retire()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not exit after Break")
	}
}
