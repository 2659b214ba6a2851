package ringlog

import (
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// Clock supplies line timestamps. Only wall-clock readability matters, the
// readings need not be strictly monotonic.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now on every call.
var SystemClock Clock = ClockFunc(time.Now)

// cachedClock serves timestamps from a background-refreshed time cache,
// trading resolution for a cheaper read on hot logging paths.
type cachedClock struct {
	cache    *timecache.TimeCache
	stopOnce sync.Once
}

func newCachedClock(resolution time.Duration) *cachedClock {
	return &cachedClock{cache: timecache.NewWithResolution(resolution)}
}

func (c *cachedClock) Now() time.Time {
	return c.cache.CachedTime()
}

// stop may be called more than once; the cache is stopped only the first time.
func (c *cachedClock) stop() {
	c.stopOnce.Do(c.cache.Stop)
}

// selectClock picks the clock for a configuration: an explicit Clock wins,
// then a cached clock when a resolution is set, then SystemClock.
func selectClock(cfg *Config) Clock {
	switch {
	case cfg.Clock != nil:
		return cfg.Clock
	case cfg.ClockResolution > 0:
		return newCachedClock(cfg.ClockResolution)
	default:
		return SystemClock
	}
}

// stopClock releases the refresh goroutine of a cached clock.
func stopClock(c Clock) {
	if cc, ok := c.(*cachedClock); ok {
		cc.stop()
	}
}
