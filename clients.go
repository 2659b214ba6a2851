package ringlog

/*
Logger client is an abstraction for a goroutine (or any other program part)
that wants its lines tagged with a small identity number:

	2025-01-01 12:00:00.000000 [INFO] [Thread:17] connection accepted

Ids are handed out sequentially per logger and wrap at THREAD_ID_MODULO.
A client only adds the tag; filtering, formatting and delivery are the
logger's, so clients stay valid across Configure calls.

Clients are cheap and may be shared, but the io.Writer side (Lvl + Write)
keeps a current level that is not synchronized: give each goroutine its own
client when using it with fmt.Fprintf.
*/

// LogClient tags the lines it writes with its thread identity.
type LogClient struct {
	logger   *Logger
	id       uint32
	tag      []byte   // rendered "[Thread:<id>] " marker
	curLevel LogLevel // level used by Write / fmt.Fprintf helpers
}

// Constructs a new client with the next free identity number.
func (l *Logger) NewClient() *LogClient {
	id := (l.clientID.Add(1) - 1) % THREAD_ID_MODULO
	return &LogClient{
		logger:   l,
		id:       id,
		tag:      threadTag(id),
		curLevel: LVL_INFO,
	}
}

// Returns the identity number rendered in the client's lines.
func (lc *LogClient) ID() uint32 {
	return lc.id
}

// Writes a message at the provided level. Errors are those of Logger.Log.
func (lc *LogClient) Log(level LogLevel, s string) error {
	return lc.logger.emit(level, lc.tag, s, nil)
}

// fmt-style variant of Log, see Logger.Logf.
func (lc *LogClient) Logf(level LogLevel, format string, args ...any) error {
	return lc.logger.emit(level, lc.tag, "", func(limit int) string {
		return expandPrintf(format, args, limit)
	})
}

// Placeholder variant of Log, see Logger.LogTemplate.
func (lc *LogClient) LogTemplate(level LogLevel, template string, args ...string) error {
	return lc.logger.emit(level, lc.tag, "", func(limit int) string {
		return expandTemplate(template, args, limit)
	})
}

func (lc *LogClient) LogDebug(s string) error    { return lc.Log(LVL_DEBUG, s) }
func (lc *LogClient) LogInfo(s string) error     { return lc.Log(LVL_INFO, s) }
func (lc *LogClient) LogWarn(s string) error     { return lc.Log(LVL_WARN, s) }
func (lc *LogClient) LogError(s string) error    { return lc.Log(LVL_ERROR, s) }
func (lc *LogClient) LogCritical(s string) error { return lc.Log(LVL_CRITICAL, s) }

// LogErr logs an error value at ERROR level.
func (lc *LogClient) LogErr(e error) error {
	return lc.Log(LVL_ERROR, errText(e))
}
