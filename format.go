package ringlog

/*
Formatting of log lines. Every line has the layout

	<YYYY-MM-DD HH:MM:SS.mmmmmm> [<LEVEL>] <message>\n

or, for messages written by a client,

	<YYYY-MM-DD HH:MM:SS.mmmmmm> [<LEVEL>] [Thread:<id>] <message>\n

and never exceeds the configured max entry size (newline included). Longer
messages lose their tail; the cut is moved back to a rune start so the
output stays valid UTF-8.
*/

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// formatter renders lines into pooled buffers. Buffers must be handed back
// with release once their content has been written or enqueued.
type formatter struct {
	clock    Clock
	maxEntry int
	pool     sync.Pool
}

func newFormatter(clock Clock, maxEntry int) *formatter {
	if maxEntry < MIN_MAX_ENTRY {
		maxEntry = MIN_MAX_ENTRY
	}
	f := &formatter{clock: clock, maxEntry: maxEntry}
	f.pool.New = func() any {
		b := make([]byte, 0, maxEntry)
		return &b
	}
	return f
}

// format takes the timestamp and renders one complete line.
func (f *formatter) format(level LogLevel, thread []byte, message string) *[]byte {
	buf := f.pool.Get().(*[]byte)
	*buf = appendEntry((*buf)[:0], f.clock.Now(), level, thread, message, f.maxEntry)
	return buf
}

func (f *formatter) release(buf *[]byte) {
	if cap(*buf) <= f.maxEntry {
		f.pool.Put(buf)
	}
}

// appendEntry appends the rendered line to dst. The result grows by at
// most maxEntry bytes and always ends with a newline.
func appendEntry(dst []byte, now time.Time, level LogLevel, thread []byte, message string, maxEntry int) []byte {
	start := len(dst)
	dst = now.AppendFormat(dst, TIMESTAMP_LAYOUT)
	dst = append(dst, " ["...)
	dst = append(dst, level.String()...)
	dst = append(dst, "] "...)
	dst = append(dst, thread...)
	room := maxEntry - (len(dst) - start) - 1
	dst = append(dst, truncate(message, room)...)
	return append(dst, '\n')
}

// threadTag renders the client marker placed before the message text.
func threadTag(id uint32) []byte {
	tag := make([]byte, 0, 16)
	tag = append(tag, "[Thread:"...)
	tag = strconv.AppendUint(tag, uint64(id), 10)
	return append(tag, "] "...)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// expandPrintf applies fmt-style formatting and bounds the expanded
// message to limit bytes.
func expandPrintf(format string, args []any, limit int) string {
	return truncate(fmt.Sprintf(format, args...), limit)
}

// expandTemplate substitutes args left to right into the "{}" placeholders
// of template. Surplus args are ignored, placeholders without an arg are
// kept verbatim. Expansion stops as soon as limit bytes are produced.
func expandTemplate(template string, args []string, limit int) string {
	var sb strings.Builder
	sb.Grow(max(0, min(limit, len(template)+16*len(args))))
	rest := template
	for _, arg := range args {
		pos := strings.Index(rest, TEMPLATE_PLACEHOLDER)
		if pos < 0 {
			break
		}
		sb.WriteString(rest[:pos])
		sb.WriteString(arg)
		rest = rest[pos+len(TEMPLATE_PLACEHOLDER):]
		if sb.Len() >= limit {
			return truncate(sb.String(), limit)
		}
	}
	sb.WriteString(rest)
	return truncate(sb.String(), limit)
}
