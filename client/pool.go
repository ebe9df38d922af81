package client

import (
	"net"
	"sync"
	"time"

	starry "github.com/aberic/starry"
	"github.com/aberic/starry/internal/clock"
	"github.com/aberic/starry/internal/xlog"
)

// PerHostCapacity is the default bound on idle streamers kept per
// host; a full channel drops a released streamer instead of blocking
// the releaser.
const PerHostCapacity = 10

// Options configures a Pool.
type Options struct {
	PerHostCapacity int
	IdleTimeout     time.Duration
	Logger          xlog.Logger
}

// Pool is a process-wide map from host to a bounded channel of idle
// TcpStreamers. Acquire/Release never block: Acquire dials a fresh
// connection when no idle streamer is available, and Release drops a
// streamer rather than waiting for room in a full channel.
type Pool struct {
	capacity    int
	idleTimeout time.Duration
	clock       clock.Clock
	logger      xlog.Logger

	mu    sync.RWMutex
	hosts map[string]chan *TcpStreamer
}

// NewPool returns a Pool configured by opts, applying PerHostCapacity
// and a noop logger as defaults.
func NewPool(opts Options) *Pool {
	if opts.PerHostCapacity <= 0 {
		opts.PerHostCapacity = PerHostCapacity
	}
	if opts.Logger == nil {
		opts.Logger = xlog.NewNoop()
	}
	return &Pool{
		capacity:    opts.PerHostCapacity,
		idleTimeout: opts.IdleTimeout,
		clock:       clock.New(),
		logger:      opts.Logger,
		hosts:       make(map[string]chan *TcpStreamer),
	}
}

func (p *Pool) channelFor(host string) chan *TcpStreamer {
	p.mu.RLock()
	ch, ok := p.hosts[host]
	p.mu.RUnlock()
	if ok {
		return ch
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if ch, ok := p.hosts[host]; ok {
		return ch
	}
	ch = make(chan *TcpStreamer, p.capacity)
	p.hosts[host] = ch
	return ch
}

// Acquire returns a streamer connected to host: a pooled idle one if
// available and still alive, or a freshly dialed connection
// otherwise.
func (p *Pool) Acquire(host string) (*TcpStreamer, error) {
	ch := p.channelFor(host)

	for {
		select {
		case s := <-ch:
			if s.IsAlive() {
				s.touch()
				return s, nil
			}
			// watchdog already closed this one; try the next.
		default:
			return p.dial(host)
		}
	}
}

func (p *Pool) dial(host string) (*TcpStreamer, error) {
	nc, err := net.Dial("tcp", host)
	if err != nil {
		return nil, starry.WrapError(starry.Transport, "dialing "+host, err)
	}
	s := newStreamer(host, nc)
	go runWatchdog(s, p.idleTimeout, p.clock, p.logger)
	return s, nil
}

// Release returns s to its host's idle pool if reusable allows reuse;
// otherwise it tells the streamer's watchdog to close immediately. A
// full host channel drops the streamer (bounded reuse, matching
// Acquire's at-most-capacity idle set).
func (p *Pool) Release(s *TcpStreamer, reusable bool) {
	if !reusable || !s.IsAlive() {
		s.retire()
		return
	}
	s.touch()

	ch := p.channelFor(s.Host)
	select {
	case ch <- s:
	default:
		s.retire()
	}
}
