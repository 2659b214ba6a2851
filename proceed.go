package ringlog

/*
Contains the background writer loop and the sink write path shared with
synchronous mode. Responsible for:
  - draining the ring buffer round by round into the sink
  - absorbing write errors (counted, never retried)
  - reporting internal problems to the diagnostic writer
*/

// procced is the writer goroutine of one asynchronous configuration. It
// owns out for its whole life: no other goroutine writes to the sink while
// it runs. It returns once rb is stopped and empty.
//
// Every round writes at most one line (one scratch worth of bytes when an
// overflow cut removed the newline). Such partial chunks are written in
// order, so a line spanning several rounds arrives contiguous in the sink.
func (l *Logger) procced(rb *ringBuffer, out *sink, scratchSize int) {
	defer func() {
		if r := recover(); r != nil {
			l.diagWriteln("panic proceeding log" + panicDesc(r))
		}
	}()
	scratch := make([]byte, scratchSize)
	for {
		n, ok := rb.drainRound(scratch)
		if !ok {
			return
		}
		l.writeToSink(out, scratch[:n])
	}
}

// writeToSink writes p once and records the outcome. Errors (panics of the
// underlying writer included) are counted and otherwise dropped.
func (l *Logger) writeToSink(out *sink, p []byte) {
	n, err := out.write(p)
	if n > 0 {
		l.stats.written.Add(uint64(n))
	}
	if err != nil {
		l.stats.writeErrors.Add(1)
	}
}

// diagWriteln writes a single-line message to the diagnostic writer.
func (l *Logger) diagWriteln(s string) {
	l.sync.diagMtx.RLock()
	defer l.sync.diagMtx.RUnlock()
	if l.diag != nil {
		l.diag.Write([]byte(s + "\n"))
	}
}
