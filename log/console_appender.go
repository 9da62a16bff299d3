package log

import (
	"os"
)

// ConsoleAppender writes log lines directly to standard output without any
// buffering. It suits development runs, containerized deployments, and any
// scenario where immediate visibility matters more than throughput. The
// appender holds no state, so a single instance is safe for concurrent use.
type ConsoleAppender struct {
}

// NewConsoleAppender returns a stateless console appender ready for use.
func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{}
}

// Write writes the buffer to stdout, appending a trailing newline when the
// line does not already end with one.
func (ca *ConsoleAppender) Write(buf []byte) (int, error) {
	n, err := os.Stdout.Write(buf)
	if err != nil {
		return n, err
	}
	if len(buf) == 0 || buf[len(buf)-1] != '\n' {
		m, err := os.Stdout.Write([]byte{'\n'})
		return n + m, err
	}
	return n, nil
}

// Flush is a no-op: console writes are unbuffered.
func (ca *ConsoleAppender) Flush() error {
	return nil
}

// Close is a no-op for ConsoleAppender as there are no resources to release.
// It satisfies the LogAppender interface.
func (ca *ConsoleAppender) Close() error {
	return nil
}
