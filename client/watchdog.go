package client

import (
	"time"

	"github.com/aberic/starry/internal/clock"
	"github.com/aberic/starry/internal/xlog"
)

// runWatchdog owns a streamer's idle lifetime: it closes the
// connection idleTimeout after the last Update event, or immediately
// on a Break event. It runs in its own goroutine for the life of the
// streamer, built as an explicit actor instead of a single AfterFunc
// timer so Update/Break can be driven by a fake clock in tests.
func runWatchdog(s *TcpStreamer, idleTimeout time.Duration, c clock.Clock, logger xlog.Logger) {
	defer close(s.stopped)

	if idleTimeout <= 0 {
		// only a Break (from Pool discarding the streamer) ends an untimed streamer
		for ev := range s.watch {
			if ev == eventBreak {
				break
			}
		}
		s.alive.Store(false)
		s.Conn.Close()
		return
	}

	timer := c.NewTimer(idleTimeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-s.watch:
			if !ok || ev == eventBreak {
				s.alive.Store(false)
				s.Conn.Close()
				return
			}
			timer.Reset(idleTimeout)
		case <-timer.Chan():
			s.alive.Store(false)
			s.Conn.Close()
			logger.Debugf("closed idle connection to %s", s.Host)
			return
		}
	}
}
