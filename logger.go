// A small embeddable logging core. Lines are leveled, timestamped text
// written either directly to the sink (synchronous mode) or through a
// fixed-size ring buffer drained by one background writer (asynchronous
// mode). Asynchronous mode never blocks producers: when the buffer is full
// the excess bytes are dropped and counted.
package ringlog

import (
	"fmt"
)

// Creates an unconfigured logger. Logging calls return ErrNotConfigured
// until Configure or ConfigureWith has been called.
//
// Preferred usage example:
//
//	func main() {
//	    logger := ringlog.New()
//	    logger.Configure("app.log", ringlog.LVL_INFO, true)
//	    defer logger.Shutdown()
//	    ...
//	}
func New() *Logger {
	l := new(Logger)
	l.cfg = DefaultConfig()
	l.diag = l.cfg.Diagnostic
	return l
}

// Configure applies target, minimal level and mode on top of the current
// configuration (DefaultConfig for the first call). An empty target selects
// the fallback stream. A target that cannot be opened is reported to the
// diagnostic writer and replaced by the fallback stream; it is not an error
// for the caller.
func (l *Logger) Configure(target string, minLevel LogLevel, async bool) {
	l.sync.statMtx.RLock()
	cfg := l.cfg
	l.sync.statMtx.RUnlock()
	cfg.Target = target
	cfg.MinLevel = minLevel
	cfg.Async = async
	l.ConfigureWith(cfg)
}

// ConfigureWith replaces the whole configuration. If the logger is in
// asynchronous mode the ring buffer is drained and its writer stopped
// first, so nothing already enqueued is lost by the switch. The previous
// target is closed before the new one is opened.
//
// Async to async reconfiguration also retires the writer and starts a fresh
// ring buffer.
func (l *Logger) ConfigureWith(cfg Config) {
	cfg = cfg.withDefaults()
	l.sync.statMtx.Lock()
	defer l.sync.statMtx.Unlock()

	l.retire()

	l.sync.diagMtx.Lock()
	l.diag = cfg.Diagnostic
	l.sync.diagMtx.Unlock()

	out, err := openSink(cfg.Target, cfg.Fallback, cfg.Opener)
	if err != nil {
		l.diagWriteln("using fallback stream: " + err.Error())
	}
	l.out = out
	l.clock = selectClock(&cfg)
	l.lines = newFormatter(l.clock, cfg.MaxEntrySize)
	l.gate.set(cfg.MinLevel)
	l.cfg = cfg

	if cfg.Async {
		rb := newRingBuffer(cfg.Capacity)
		l.ring = rb
		l.sync.waitEnd.Go(func() { l.procced(rb, out, cfg.MaxEntrySize) })
		l.setState(STATE_ASYNC)
	} else {
		l.setState(STATE_SYNC)
	}
}

// Shutdown drains the ring buffer (asynchronous mode), stops the writer,
// closes the target and moves the logger to STATE_SHUTDOWN. The drain waits
// for the sink as long as it takes; there is no timeout. Calling Shutdown
// again, or on a logger never configured, does nothing.
func (l *Logger) Shutdown() {
	l.sync.statMtx.Lock()
	defer l.sync.statMtx.Unlock()
	switch l.State() {
	case STATE_UNINITIALIZED, STATE_SHUTDOWN:
		return
	}
	l.setState(STATE_SHUTTING_DOWN)
	l.retire()
	l.setState(STATE_SHUTDOWN)
}

// retire ends the current configuration: drain and stop the writer, close
// the target, stop a cached clock. The caller holds statMtx.
func (l *Logger) retire() {
	if rb := l.ring; rb != nil {
		rb.waitDrained()
		rb.stop()
		l.sync.waitEnd.Wait()
		l.stats.dropped.Add(rb.dropped.Load())
		l.ring = nil
	}
	if l.out != nil {
		if err := l.out.close(); err != nil {
			l.diagWriteln("error closing log target " + l.out.target + ": " + err.Error())
		}
	}
	if l.clock != nil {
		stopClock(l.clock)
		l.clock = nil
	}
}

// Sets the minimal level. Messages below it are dropped before any
// formatting. Safe to call while other goroutines are logging.
func (l *Logger) SetMinLevel(minlevel LogLevel) *Logger {
	l.gate.set(minlevel)
	return l
}

// Returns the current minimal level.
func (l *Logger) MinLevel() LogLevel {
	return l.gate.get()
}

// Returns the lifecycle state.
func (l *Logger) State() lgrState {
	return normState(lgrState(l.state.Load()))
}

func (l *Logger) setState(s lgrState) {
	l.state.Store(uint32(s))
}

// True if the logger accepts messages (synchronous or asynchronous mode).
func (l *Logger) IsActive() bool {
	s := l.State()
	return s == STATE_SYNC || s == STATE_ASYNC
}

// True if the logger is in asynchronous mode.
func (l *Logger) IsAsync() bool {
	return l.State() == STATE_ASYNC
}

// Stats is a snapshot of the logger counters.
type Stats struct {
	State        lgrState
	Target       string // empty when lines go to the fallback stream
	Buffered     int    // bytes waiting in the ring buffer
	Capacity     int    // ring buffer size, zero in synchronous mode
	DroppedBytes uint64 // bytes lost because the ring buffer was full
	WrittenBytes uint64 // bytes accepted by sinks
	WriteErrors  uint64 // failed sink writes
}

// Returns a snapshot of the logger counters. DroppedBytes and WrittenBytes
// accumulate over all configurations of the logger.
func (l *Logger) Stats() Stats {
	l.sync.statMtx.RLock()
	defer l.sync.statMtx.RUnlock()
	s := Stats{
		State:        l.State(),
		DroppedBytes: l.stats.dropped.Load(),
		WrittenBytes: l.stats.written.Load(),
		WriteErrors:  l.stats.writeErrors.Load(),
	}
	if l.out != nil && !l.out.isFallback() {
		s.Target = l.out.target
	}
	if rb := l.ring; rb != nil {
		s.Buffered = rb.buffered()
		s.Capacity = rb.capacity()
		s.DroppedBytes += rb.dropped.Load()
	}
	return s
}

/////////////////////////////////////////////////////////////////////////////////////////

// notConfigured returns the error for a logging call in state st, or nil
// when the logger accepts messages.
func notConfigured(st lgrState) error {
	switch st {
	case STATE_SYNC, STATE_ASYNC, STATE_SHUTTING_DOWN:
		return nil
	case STATE_SHUTDOWN:
		return fmt.Errorf("%w: logger is shut down", ErrNotConfigured)
	default:
		return ErrNotConfigured
	}
}

// emit is the single path of every logging call. Filtered messages return
// before a timestamp is taken. expand, when set, builds the message from
// arguments and is only called for messages that pass the gate.
//
// Callers block while a configuration change or a shutdown holds statMtx
// and then see the resulting state.
func (l *Logger) emit(level LogLevel, thread []byte, message string, expand func(limit int) string) error {
	if err := notConfigured(l.State()); err != nil {
		return err
	}
	if !l.gate.permits(level) {
		return nil
	}
	l.sync.statMtx.RLock()
	defer l.sync.statMtx.RUnlock()
	st := l.State()
	if st != STATE_SYNC && st != STATE_ASYNC {
		return notConfigured(st)
	}
	if expand != nil {
		message = expand(l.lines.maxEntry - 1)
	}
	buf := l.lines.format(level, thread, message)
	defer l.lines.release(buf)
	if st == STATE_ASYNC {
		l.ring.enqueue(*buf)
		return nil
	}
	l.sync.sinkMtx.Lock()
	defer l.sync.sinkMtx.Unlock()
	l.writeToSink(l.out, *buf)
	return nil
}

// Writes a message at the provided level. The only error is
// ErrNotConfigured (possibly wrapped): sink problems never reach the caller.
func (l *Logger) Log(level LogLevel, s string) error {
	return l.emit(level, nil, s, nil)
}

// Formats a message fmt-style and writes it at the provided level. The
// expanded message is bounded by the max entry size; arguments are not
// evaluated for messages below the minimal level.
func (l *Logger) Logf(level LogLevel, format string, args ...any) error {
	return l.emit(level, nil, "", func(limit int) string {
		return expandPrintf(format, args, limit)
	})
}

// Substitutes args left to right into the "{}" placeholders of template
// and writes the result at the provided level.
//
//	logger.LogTemplate(LVL_INFO, "user {} logged in from {}", name, addr)
func (l *Logger) LogTemplate(level LogLevel, template string, args ...string) error {
	return l.emit(level, nil, "", func(limit int) string {
		return expandTemplate(template, args, limit)
	})
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Convenience level-specific helpers. They are thin wrappers around Log and
return the same errors.
*/

func (l *Logger) LogDebug(s string) error    { return l.Log(LVL_DEBUG, s) }
func (l *Logger) LogInfo(s string) error     { return l.Log(LVL_INFO, s) }
func (l *Logger) LogWarn(s string) error     { return l.Log(LVL_WARN, s) }
func (l *Logger) LogError(s string) error    { return l.Log(LVL_ERROR, s) }
func (l *Logger) LogCritical(s string) error { return l.Log(LVL_CRITICAL, s) }

// LogErr logs an error value at ERROR level. Semantically equivalent to
//
//	LogError(e.Error())
//
// A nil error is logged as NIL_ERROR_TEXT.
func (l *Logger) LogErr(e error) error {
	return l.Log(LVL_ERROR, errText(e))
}
