package ringlog

/*
Defines the core data types used by the logger:
  - basetype and a small set of typed aliases for clarity
  - LevelMap: per-level rendered names
  - Logger: the lifecycle state object composing gate, formatter, ring
    buffer, writer goroutine and sink

Also defines package-wide constants, enums, errors and helper utilities:
  - default sizes and values
  - enums for levels/states
  - normalization helpers
*/

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type LogLevel basetype // Logger levels (alias for byte)
type lgrState basetype

// LevelMap is a fixed-size array with one entry per log level.
type LevelMap [_LVL_MAX_for_checks_only]string

// Logger owns one active configuration: the level gate, the sink, and in
// asynchronous mode the ring buffer with its single writer goroutine.
//
// A Logger is created unconfigured by New and becomes usable after
// Configure. It is meant to be created once by the application and passed
// to the places that log.
type Logger struct {
	sync struct {
		statMtx sync.RWMutex   // guards state, mode, ring and sink replacement
		sinkMtx sync.Mutex     // serializes direct sink writes in sync mode
		diagMtx sync.RWMutex   // guards access to the diagnostic writer
		waitEnd sync.WaitGroup // tracks the writer goroutine
	}
	gate     levelGate
	ring     *ringBuffer // nil unless the state is STATE_ASYNC
	out      *sink
	lines    *formatter
	clock    Clock
	diag     io.Writer
	cfg      Config
	state    atomic.Uint32 // lgrState, changed with statMtx held
	clientID atomic.Uint32
	stats    struct {
		written     atomic.Uint64 // bytes accepted by the sink
		writeErrors atomic.Uint64 // failed or panicked sink writes
		dropped     atomic.Uint64 // bytes lost by retired ring buffers
	}
}

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Log level values. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for normalization checks.
	LVL_DEBUG LogLevel = iota
	LVL_INFO
	LVL_WARN
	LVL_ERROR
	LVL_CRITICAL
	_LVL_MAX_for_checks_only
)

const (
	DEFAULT_LOG_LEVEL    = LVL_DEBUG
	DEFAULT_CAPACITY     = 8192 // ring buffer size in bytes
	DEFAULT_MAX_ENTRY    = 1024 // max formatted line length, newline included
	MIN_MAX_ENTRY        = 64   // smaller entry limits are raised to this
	DEFAULT_FILE_MODE    = 0644
	TIMESTAMP_LAYOUT     = "2006-01-02 15:04:05.000000"
	TEMPLATE_PLACEHOLDER = "{}"
	UNKNOWN_LEVEL_NAME   = "UNKNOWN"
	THREAD_ID_MODULO     = 10000
	NIL_ERROR_TEXT       = "<nil>"
)

const (
	// Logger lifecycle states.
	STATE_UNINITIALIZED lgrState = iota
	STATE_SYNC
	STATE_ASYNC
	STATE_SHUTTING_DOWN
	STATE_SHUTDOWN
	_STATE_MAX_for_checks_only
)

const (
	_ERROR_UNKNOWN_PANIC_TEXT = "[no panic description]"
)

var (
	// ErrNotConfigured is returned by logging calls made before the first
	// Configure or after Shutdown.
	ErrNotConfigured = errors.New("logger is not configured")
	// ErrOpenFailed marks a sink target that could not be opened. The logger
	// recovers from it by switching to the fallback stream.
	ErrOpenFailed = errors.New("failed to open log sink")
	// ErrWriteFailed marks a failed sink write. Such failures are counted,
	// never returned to logging callers.
	ErrWriteFailed = errors.New("failed to write log sink")
)

/////////////////////////////////////////////////////////////////////////////////////////

// Rendered level names, as they appear between brackets in every line.
var LevelNames = &LevelMap{
	"DEBUG",    //LVL_DEBUG
	"INFO",     //LVL_INFO
	"WARN",     //LVL_WARN
	"ERROR",    //LVL_ERROR
	"CRITICAL", //LVL_CRITICAL
}

var stateNames = [_STATE_MAX_for_checks_only]string{
	"uninitialized",
	"sync",
	"async",
	"shutting down",
	"shut down",
}

// String returns the rendered level name or UNKNOWN_LEVEL_NAME for values
// outside the enumeration.
func (level LogLevel) String() string {
	if level < _LVL_MAX_for_checks_only {
		return LevelNames[level]
	}
	return UNKNOWN_LEVEL_NAME
}

func (s lgrState) String() string {
	return stateNames[normState(s)]
}

// Generic byte normalization helper.
func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

// Ensures a provided lgrState is within the valid range
func normState(state lgrState) lgrState {
	return norm_byte(state, _STATE_MAX_for_checks_only, STATE_UNINITIALIZED)
}

// Renders an error for LogErr, tolerating nil.
func errText(e error) string {
	if e == nil {
		return NIL_ERROR_TEXT
	}
	return e.Error()
}

// Converts a panic value into a compact readable string (used when
// translating panics into diagnostic messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}
