// Package clock provides a wall clock in milliseconds plus RFC1123 GMT
// formatting for cookie Expires attributes. It wraps clockwork so the
// keep-alive and rate-limiter timer actors can be driven by a fake
// clock in tests instead of real time.Sleep.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// GMTFormat is RFC1123 with a hard-coded GMT zone, the wire form
// cookie Expires attributes use.
const GMTFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Clock is the collaborator interface the rest of the module depends
// on, satisfied by the values New and NewFake return.
type Clock interface {
	// NowMillis returns the current time as Unix milliseconds.
	NowMillis() int64
	// Now returns the current wall-clock time.
	Now() time.Time
	// NewTimer returns a timer that fires after d.
	NewTimer(d time.Duration) clockwork.Timer
	// Sleep blocks the calling goroutine for d.
	Sleep(d time.Duration)
}

type real struct {
	clockwork.Clock
}

// New returns the production Clock, backed by the real wall clock.
func New() Clock {
	return &real{clockwork.NewRealClock()}
}

func (r *real) NowMillis() int64 {
	return r.Now().UnixMilli()
}

func (r *real) NewTimer(d time.Duration) clockwork.Timer {
	return r.Clock.NewTimer(d)
}

// NewFake returns a Clock suitable for deterministic tests, along with
// the underlying clockwork.FakeClock so tests can Advance() it.
func NewFake() (Clock, clockwork.FakeClock) {
	fc := clockwork.NewFakeClock()
	return &real{fc}, fc
}

// FormatGMT renders t in the cookie Expires wire format.
func FormatGMT(t time.Time) string {
	return t.UTC().Format(GMTFormat)
}

// ParseGMT parses a cookie Expires value.
func ParseGMT(s string) (time.Time, error) {
	return time.Parse(GMTFormat, s)
}
