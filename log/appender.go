package log

// LogAppender is the contract between the logger and its output
// destinations (console, file, rotating file). Implementations must be
// goroutine-safe: a single appender instance is shared by every goroutine
// that logs through the same logger.
type LogAppender interface {
	// Write outputs one rendered log line to the destination. The buffer
	// is owned by the caller and must not be retained after Write
	// returns. A trailing newline is appended by the appender when the
	// line does not already end with one; the returned count covers the
	// bytes physically written, including that newline.
	//
	// I/O failures surface synchronously to the caller. Appenders never
	// retry, buffer across failures, or swallow write errors: a logging
	// failure must be visible, not silently dropped.
	Write(buf []byte) (n int, err error)

	// Flush forces buffered data to the OS, and to stable storage when
	// the appender was configured for durable flushes. Calling Flush with
	// no intervening writes is a no-op and never an error.
	Flush() error

	// Close flushes and releases underlying resources. It should be
	// called at shutdown; close-time errors are reported but callers
	// typically treat them as best-effort.
	Close() error
}
