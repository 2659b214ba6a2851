package ringlog

import "sync/atomic"

// levelGate holds the minimal accepted level. It is read by every logging
// call before any formatting work, so the value is atomic rather than
// guarded by the logger mutexes.
type levelGate struct {
	minimum atomic.Uint32
}

func (g *levelGate) set(level LogLevel) {
	g.minimum.Store(uint32(level))
}

func (g *levelGate) get() LogLevel {
	return LogLevel(g.minimum.Load())
}

// permits reports whether a message at level passes the gate.
func (g *levelGate) permits(level LogLevel) bool {
	return uint32(level) >= g.minimum.Load()
}
