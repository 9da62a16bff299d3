package log

import (
	"errors"
	"fmt"
	"sync"
)

// Configuration and state errors shared by the file sinks.
var (
	// ErrEmptyPath is returned at construction when no output path was
	// given. The filesystem is never touched in this case.
	ErrEmptyPath = errors.New("log: output path must not be empty")

	// ErrSinkClosed is returned by writes and flushes after the sink was
	// closed or after a failed reopen left it without an open handle.
	ErrSinkClosed = errors.New("log: sink is not open")
)

var _newline = []byte{'\n'}

// sinkCore is the lock-protected state shared by the plain and rotating file
// appenders: one owned file handle, the tracked output path, the durability
// flag, and the running byte counter for the current file. Both appender
// flavors compose their operations from the *Locked helpers below under the
// same mutex, so a rotation and a write can never interleave.
//
// The file handle is never exposed outside the lock.
type sinkCore struct {
	mu           sync.Mutex
	path         string
	durable      bool
	writer       *appendFileWriter // nil while the sink is closed
	bytesWritten uint64
	metrics      *SinkMetrics
}

// openLocked opens the tracked path in append mode and seeds the byte
// counter from the file's on-disk size. Caller must hold mu.
func (c *sinkCore) openLocked() error {
	w, err := openAppendFile(c.path)
	if err != nil {
		return err
	}
	c.writer = w
	c.bytesWritten = w.size()
	return nil
}

// closeLocked releases the handle, best-effort. Caller must hold mu.
func (c *sinkCore) closeLocked() {
	if c.writer != nil {
		c.writer.close()
		c.writer = nil
	}
	c.bytesWritten = 0
}

// reopenLocked switches the sink to newPath. The old handle is closed
// best-effort first; if opening newPath fails the sink stays closed and
// subsequent writes fail until a successful reopen. Caller must hold mu.
func (c *sinkCore) reopenLocked(newPath string) error {
	c.closeLocked()
	c.path = newPath
	return c.openLocked()
}

// projectedLocked returns the byte length of the current file after writing
// line, accounting for the implicit newline appended when line lacks one.
// Caller must hold mu.
func (c *sinkCore) projectedLocked(line []byte) uint64 {
	projected := c.bytesWritten + uint64(len(line))
	if len(line) == 0 || line[len(line)-1] != '\n' {
		projected++
	}
	return projected
}

// writeLineLocked appends line plus the implicit newline when missing, and
// advances the byte counter by exactly the number of bytes physically
// written. Caller must hold mu.
func (c *sinkCore) writeLineLocked(line []byte) (int, error) {
	if c.writer == nil {
		return 0, ErrSinkClosed
	}

	if err := c.writer.write(line); err != nil {
		return 0, err
	}
	n := len(line)
	c.bytesWritten += uint64(len(line))

	if len(line) == 0 || line[len(line)-1] != '\n' {
		if err := c.writer.write(_newline); err != nil {
			return n, err
		}
		n++
		c.bytesWritten++
	}

	c.metrics.observeWrite(n)
	return n, nil
}

// flushLocked flushes the writer, fsyncing when durability is configured.
// Caller must hold mu.
func (c *sinkCore) flushLocked() error {
	if c.writer == nil {
		return ErrSinkClosed
	}
	return c.writer.flush(c.durable)
}

// FileAppender is a synchronous append-only file sink. All access to the
// underlying file is serialized through one mutex, so a single instance may
// be shared by arbitrarily many goroutines. There is no internal buffering
// beyond the OS-level write buffer, no retry, and no background work: every
// call completes (or fails) on the calling goroutine.
type FileAppender struct {
	core sinkCore
}

// NewFileAppender opens (or creates) path in append mode. The byte counter
// starts at the file's current size so a process restart continues counting
// where the file left off.
func NewFileAppender(path string, durable bool) (*FileAppender, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	a := &FileAppender{core: sinkCore{path: path, durable: durable}}
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if err := a.core.openLocked(); err != nil {
		return nil, err
	}
	return a, nil
}

// Write appends one line to the file, adding a trailing newline when the
// line does not end with one. Returns the number of bytes physically
// written. I/O failures surface to the caller immediately.
func (a *FileAppender) Write(buf []byte) (int, error) {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.writeLineLocked(buf)
}

// Flush forces buffered data to the OS, and to stable storage when the
// appender was constructed with durable set. Flushing repeatedly with no
// intervening writes is harmless.
func (a *FileAppender) Flush() error {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.flushLocked()
}

// Reopen closes the current file (best-effort) and continues logging at
// newPath, reseeding the byte counter from that file's size. On failure the
// appender is left closed and writes fail until a successful Reopen.
func (a *FileAppender) Reopen(newPath string) error {
	if newPath == "" {
		return ErrEmptyPath
	}
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if err := a.core.reopenLocked(newPath); err != nil {
		return fmt.Errorf("reopen %q: %w", newPath, err)
	}
	return nil
}

// Close flushes and releases the file handle. The flush error, if any, is
// returned; the close itself is best-effort. Closing an already closed
// appender is a no-op.
func (a *FileAppender) Close() error {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if a.core.writer == nil {
		return nil
	}
	err := a.core.flushLocked()
	a.core.closeLocked()
	return err
}

// Path returns the path the appender is currently writing to.
func (a *FileAppender) Path() string {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.path
}

// BytesWritten returns the byte count attributed to the currently open file,
// seeded from the on-disk size at open.
func (a *FileAppender) BytesWritten() uint64 {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.bytesWritten
}

// SetMetrics attaches optional sink metrics. Pass nil to detach. Intended to
// be called before the appender is shared across goroutines.
func (a *FileAppender) SetMetrics(m *SinkMetrics) {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	a.core.metrics = m
}
