// Package countdown drives the modification-window countdown shown next to
// an editable order. The remaining time it reports is advisory only; it
// exists to prompt a re-fetch of the authoritative window, never to permit
// or deny a mutation by itself.
package countdown

import (
	"sync"
	"time"

	"github.com/softloom/storefront/lib/mytime"
)

const DefaultInterval = time.Second

// Timer counts down towards expiresAt using the backend's notion of "now".
// A one-time offset, computed at construction from the server timestamp that
// accompanied the order fetch, corrects for local clock skew. Every tick
// emits the clamped remaining whole seconds on C; when remaining reaches
// zero the expiry callback fires exactly once and ticking stops.
type Timer struct {
	C <-chan int

	expiresAt time.Time
	offset    time.Duration
	nower     mytime.Nower
	onExpire  func()

	out        chan int
	expireOnce sync.Once
	stopOnce   sync.Once
	done       chan struct{}
	ticker     *time.Ticker
}

// New starts a timer on a fixed one-second cadence.
func New(expiresAt time.Time, serverTimeAtLoad time.Time, nower mytime.Nower, onExpire func()) *Timer {
	ticker := time.NewTicker(DefaultInterval)
	t := newTimer(expiresAt, serverTimeAtLoad, nower, onExpire)
	t.ticker = ticker
	go t.run(ticker.C)

	return t
}

// NewWithTicks starts a timer driven by an external tick source.
func NewWithTicks(expiresAt time.Time, serverTimeAtLoad time.Time, nower mytime.Nower, onExpire func(), ticks <-chan time.Time) *Timer {
	t := newTimer(expiresAt, serverTimeAtLoad, nower, onExpire)
	go t.run(ticks)

	return t
}

func newTimer(expiresAt time.Time, serverTimeAtLoad time.Time, nower mytime.Nower, onExpire func()) *Timer {
	out := make(chan int)
	return &Timer{
		C:         out,
		expiresAt: expiresAt,
		offset:    serverTimeAtLoad.Sub(nower.Now()),
		nower:     nower,
		onExpire:  onExpire,
		out:       out,
		done:      make(chan struct{}),
	}
}

// Remaining reports the whole seconds left, clamped to zero.
func (t *Timer) Remaining() int {
	corrected := t.nower.Now().Add(t.offset)
	remaining := int(t.expiresAt.Sub(corrected) / time.Second)
	if remaining < 0 {
		return 0
	}

	return remaining
}

func (t *Timer) run(ticks <-chan time.Time) {
	defer close(t.out)

	for {
		select {
		case <-t.done:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}

			remaining := t.Remaining()

			select {
			case t.out <- remaining:
			case <-t.done:
				return
			}

			if remaining == 0 {
				t.expire()
				return
			}
		}
	}
}

func (t *Timer) expire() {
	t.expireOnce.Do(func() {
		if t.onExpire != nil {
			t.onExpire()
		}
	})
}

// Stop tears the timer down without firing the expiry callback. Safe to call
// more than once and after expiry.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
		if t.ticker != nil {
			t.ticker.Stop()
		}
	})
}
