package server

import (
	"sync"
	"time"

	"github.com/aberic/starry/internal/clock"
)

// Limiter is a sliding-window admission gate: at most count admissions
// are granted within any section-millisecond window, and consecutive
// admissions are spaced at least interval milliseconds apart.
//
// run owns a goroutine that rotates a ring of the last count
// admission timestamps, granting one admission whenever both
// constraints clear. Admit blocks until a grant is available or
// Close is called.
type Limiter struct {
	section  int64
	count    int
	interval int64

	clock clock.Clock
	grant chan struct{}
	close chan struct{}
	once  sync.Once
}

// NewLimiter starts a Limiter's background admission goroutine.
// section<=0 disables the window check; interval<=0 disables the
// minimum-spacing check. count must be > 0.
func NewLimiter(section int64, count int, interval int64) *Limiter {
	return newLimiter(section, count, interval, clock.New())
}

func newLimiter(section int64, count int, interval int64, c clock.Clock) *Limiter {
	if count <= 0 {
		count = 1
	}
	l := &Limiter{
		section:  section,
		count:    count,
		interval: interval,
		clock:    c,
		grant:    make(chan struct{}, count),
		close:    make(chan struct{}),
	}
	go l.run()
	return l
}

// Admit blocks until the limiter grants this request, or returns
// false if the limiter has been closed in the meantime.
func (l *Limiter) Admit() bool {
	select {
	case <-l.grant:
		return true
	case <-l.close:
		return false
	}
}

// Close stops the limiter's background goroutine. Calling Admit after
// Close always returns false. This is a deliberate improvement over
// the window this module was ported from, where the admission
// goroutine has no shutdown signal and leaks for the life of the
// process; a long-lived Go server needs its Router able to dispose of
// a Limiter cleanly.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.close) })
}

func (l *Limiter) run() {
	// Zeroed: no admissions have happened yet, so the first count
	// grants are not held back by the window or interval checks.
	times := make([]int64, l.count)

	ticker := l.clock.NewTimer(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-l.close:
			return
		case <-ticker.Chan():
			ticker.Reset(time.Millisecond)
			now := l.clock.NowMillis()
			if now-times[0] <= l.section {
				continue
			}
			if now-times[len(times)-1] <= l.interval {
				continue
			}
			select {
			case l.grant <- struct{}{}:
				times = append(times[1:], now)
			case <-l.close:
				return
			default:
				// grant buffer is full (count outstanding admissions
				// unclaimed); skip this tick rather than block the
				// rotation goroutine.
			}
		}
	}
}
