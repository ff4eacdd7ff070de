package countdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// steppingClock is a manually advanced clock so ticks are deterministic.
type steppingClock struct {
	sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

func (c *steppingClock) advance(d time.Duration) {
	c.Lock()
	c.now = c.now.Add(d)
	c.Unlock()
}

func TestCountdown(t *testing.T) {
	serverTime := time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC)

	t.Run("Counts down corrected for local clock skew and fires expiry once", func(t *testing.T) {
		// given: local clock runs two hours behind the server
		clock := &steppingClock{now: serverTime.Add(-2 * time.Hour)}
		expiresAt := serverTime.Add(5 * time.Second)
		ticks := make(chan time.Time)

		expiries := 0
		timer := NewWithTicks(expiresAt, serverTime, clock, func() { expiries++ }, ticks)
		defer timer.Stop()

		assert.Equal(t, 5, timer.Remaining())

		// when: five seconds elapse tick by tick
		observed := []int{}
		for i := 0; i < 5; i++ {
			clock.advance(time.Second)
			ticks <- time.Time{}
			observed = append(observed, <-timer.C)
		}

		// then: ticking has stopped and expiry fired exactly once
		assert.Equal(t, []int{4, 3, 2, 1, 0}, observed)

		_, open := <-timer.C
		assert.False(t, open)
		assert.Equal(t, 1, expiries)
	})

	t.Run("Stop tears down without firing expiry", func(t *testing.T) {
		clock := &steppingClock{now: serverTime}
		expiresAt := serverTime.Add(time.Hour)
		ticks := make(chan time.Time)

		expired := false
		timer := NewWithTicks(expiresAt, serverTime, clock, func() { expired = true }, ticks)

		clock.advance(time.Second)
		ticks <- time.Time{}
		assert.Equal(t, 3599, <-timer.C)

		timer.Stop()

		_, open := <-timer.C
		assert.False(t, open)
		assert.False(t, expired)
	})

	t.Run("Remaining clamps to zero after expiry", func(t *testing.T) {
		clock := &steppingClock{now: serverTime}
		expiresAt := serverTime.Add(-time.Minute)

		timer := NewWithTicks(expiresAt, serverTime, clock, nil, make(chan time.Time))
		defer timer.Stop()

		assert.Equal(t, 0, timer.Remaining())
	})

	t.Run("Nil expiry callback is allowed", func(t *testing.T) {
		clock := &steppingClock{now: serverTime}
		ticks := make(chan time.Time)

		timer := NewWithTicks(serverTime.Add(time.Second), serverTime, clock, nil, ticks)
		defer timer.Stop()

		clock.advance(time.Second)
		ticks <- time.Time{}
		assert.Equal(t, 0, <-timer.C)
	})
}
