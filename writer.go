package ringlog

import "bytes"

/*********************************************************************************
io.Writer interface implementation

The LogClient implements io.Writer so it can be used with fmt.Fprintf and
other formatting helpers. The semantics are:
 - Lvl(level) sets the current level used by subsequent Write calls.
 - Write(p) logs p (trailing line breaks removed, the formatter adds its
   own) at the currently set level and returns len(p) on success, 0 and a
   non-nil error when the logger is not configured.

This allows patterns like:
  fmt.Fprintf(client.Lvl(LVL_WARN), "disk low: %d%%", percent)
*/

// Lvl sets the client's current level (used by Write/fmt.Fprintf) and returns
// the same client for convenient chaining.
func (lc *LogClient) Lvl(level LogLevel) *LogClient {
	lc.curLevel = level
	return lc
}

// Write implements io.Writer. A filtered message counts as written. A nil
// or empty payload is a zero-length write with no error.
func (lc *LogClient) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	msg := bytes.TrimRight(p, "\r\n")
	if err = lc.Log(lc.curLevel, string(msg)); err != nil {
		return 0, err
	}
	return len(p), nil
}
