package ringlog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	ENV_TARGET           = "RINGLOG_TARGET"
	ENV_LEVEL            = "RINGLOG_LEVEL"
	ENV_ASYNC            = "RINGLOG_ASYNC"
	ENV_CAPACITY         = "RINGLOG_CAPACITY"
	ENV_MAX_ENTRY        = "RINGLOG_MAX_ENTRY"
	ENV_CLOCK_RESOLUTION = "RINGLOG_CLOCK_RESOLUTION"
)

// Config describes one logger configuration. Zero values are replaced with
// defaults when the configuration is applied.
type Config struct {
	// Target is the path of the sink file. Empty means the fallback stream.
	Target   string
	MinLevel LogLevel
	// Async routes lines through the ring buffer and a writer goroutine.
	Async bool
	// Capacity is the ring buffer size in bytes (DEFAULT_CAPACITY).
	Capacity int
	// MaxEntrySize bounds every formatted line, newline included
	// (DEFAULT_MAX_ENTRY, at least MIN_MAX_ENTRY).
	MaxEntrySize int
	// Fallback receives lines when there is no target or it cannot be
	// opened (os.Stderr). It is never closed.
	Fallback io.Writer
	// Diagnostic receives reports about the logger itself, such as a target
	// that failed to open (os.Stderr). A nil writer discards them.
	Diagnostic io.Writer
	// ClockResolution enables a cached clock refreshed at this interval.
	// Zero reads the system clock on every line.
	ClockResolution time.Duration
	// Clock overrides the timestamp source; ClockResolution is then ignored.
	Clock Clock
	// Opener opens Target (OpenFile).
	Opener Opener
}

// DefaultConfig returns the configuration a first Configure starts from:
// debug level, synchronous, fallback stream.
func DefaultConfig() Config {
	return Config{
		MinLevel:     DEFAULT_LOG_LEVEL,
		Capacity:     DEFAULT_CAPACITY,
		MaxEntrySize: DEFAULT_MAX_ENTRY,
		Fallback:     os.Stderr,
		Diagnostic:   os.Stderr,
		Opener:       OpenFile,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.MaxEntrySize <= 0 {
		c.MaxEntrySize = d.MaxEntrySize
	} else if c.MaxEntrySize < MIN_MAX_ENTRY {
		c.MaxEntrySize = MIN_MAX_ENTRY
	}
	if c.Fallback == nil {
		c.Fallback = d.Fallback
	}
	if c.Diagnostic == nil {
		c.Diagnostic = io.Discard
	}
	if c.Opener == nil {
		c.Opener = d.Opener
	}
	return c
}

// ParseLevel converts a level name (case-insensitive) into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LVL_WARN, nil
	}
	for level := range _LVL_MAX_for_checks_only {
		if LevelNames[level] == name {
			return level, nil
		}
	}
	return LVL_DEBUG, fmt.Errorf("unknown log level %q", s)
}

// LoadConfig builds a configuration from DefaultConfig, the given .env
// files and the process environment. Variables already present in the
// environment win over the files; files that do not exist are skipped.
func LoadConfig(files ...string) (Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Target = getString(ENV_TARGET, cfg.Target)

	var err error
	if s, ok := os.LookupEnv(ENV_LEVEL); ok {
		if cfg.MinLevel, err = ParseLevel(s); err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_LEVEL, err)
		}
	}
	if s, ok := os.LookupEnv(ENV_ASYNC); ok {
		if cfg.Async, err = strconv.ParseBool(s); err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_ASYNC, err)
		}
	}
	if cfg.Capacity, err = getInt(ENV_CAPACITY, cfg.Capacity); err != nil {
		return Config{}, err
	}
	if cfg.MaxEntrySize, err = getInt(ENV_MAX_ENTRY, cfg.MaxEntrySize); err != nil {
		return Config{}, err
	}
	if s, ok := os.LookupEnv(ENV_CLOCK_RESOLUTION); ok {
		if cfg.ClockResolution, err = time.ParseDuration(s); err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_CLOCK_RESOLUTION, err)
		}
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) (int, error) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return fallback, fmt.Errorf("%s: expected a positive integer, got %q", key, val)
	}
	return n, nil
}
