package log

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

const (
	// rotationStampLayout is the fixed-width UTC timestamp embedded in
	// rotated filenames. Fixed width keeps lexicographic order aligned
	// with chronological order, which the pruner relies on.
	rotationStampLayout = "20060102_150405"

	// maxRotationProbes bounds the search for a collision-free rotated
	// name when several rotations land in the same second.
	maxRotationProbes = 9999
)

// ErrRotatedNameExhausted is returned when no unused rotated filename could
// be found within the probe bound. The base file is left untouched and still
// active; the write that triggered the rotation fails.
var ErrRotatedNameExhausted = errors.New("log: unable to find unique rotated filename")

// RotatingFileAppender is a synchronous file sink with size-based rotation.
// Before each write it projects the post-write file size; once the projection
// reaches the configured threshold the current file is renamed aside to
//
//	<path>.<YYYYMMDD_HHMMSS>        or
//	<path>.<YYYYMMDD_HHMMSS>.<seq>  (same-second disambiguation)
//
// and a fresh file is started at the base path. The line that triggers a
// rotation always lands whole in the new file; lines are never split across
// files or appended to an over-threshold file.
//
// The whole check-rotate-write sequence runs under one mutex, so concurrent
// writers can neither observe a half-finished rotation nor race on the
// rotated filename. Rotated names embed the host's UTC wall-clock time, not
// simulation time, so on-disk ordering stays meaningful across runs.
type RotatingFileAppender struct {
	core            sinkCore
	maxBytes        uint64
	maxRotatedFiles int
	rotations       atomic.Uint64
}

// NewRotatingFileAppender opens (or creates) path in append mode.
//
// maxBytes is the rotation threshold and must be > 0: rotation occurs before
// writing any line that would cause the file to reach or exceed it.
// maxRotatedFiles bounds how many rotated files are retained (0 = unlimited);
// the oldest beyond that count are pruned after each successful rotation.
// durable makes Flush force data to stable storage.
//
// Configuration errors are reported before the filesystem is touched.
func NewRotatingFileAppender(path string, maxBytes uint64, durable bool, maxRotatedFiles int) (*RotatingFileAppender, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if maxBytes == 0 {
		return nil, errors.New("log: rotation threshold must be > 0")
	}

	a := &RotatingFileAppender{
		core:            sinkCore{path: path, durable: durable},
		maxBytes:        maxBytes,
		maxRotatedFiles: maxRotatedFiles,
	}
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if err := a.core.openLocked(); err != nil {
		return nil, err
	}
	return a, nil
}

// Write appends one line, rotating first when the projected post-write size
// reaches the threshold. Returns the number of bytes physically written,
// including the implicit newline when one was added. Rotation failures fail
// the write and surface to the caller; nothing is retried.
func (a *RotatingFileAppender) Write(buf []byte) (int, error) {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()

	if a.core.projectedLocked(buf) >= a.maxBytes {
		if err := a.rotateLocked(); err != nil {
			return 0, err
		}
	}
	return a.core.writeLineLocked(buf)
}

// Flush forces buffered data to the OS, and to stable storage when the
// appender was constructed with durable set.
func (a *RotatingFileAppender) Flush() error {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.flushLocked()
}

// Close flushes and releases the file handle. Closing twice is a no-op.
func (a *RotatingFileAppender) Close() error {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	if a.core.writer == nil {
		return nil
	}
	err := a.core.flushLocked()
	a.core.closeLocked()
	return err
}

// rotateLocked performs one rotation: pick a collision-free rotated name,
// flush and close the current file, rename it aside, reopen a fresh file at
// the base path, then prune old rotations. Caller must hold the core mutex.
//
// The name probe runs before any filesystem mutation, so a naming failure
// aborts cleanly with the base file still open and active. A rename or
// reopen failure propagates and leaves the sink closed; continuing silently
// could lose the rotation or double-write.
func (a *RotatingFileAppender) rotateLocked() error {
	rotatedName, err := a.nextRotatedNameLocked()
	if err != nil {
		return err
	}

	if err := a.core.flushLocked(); err != nil {
		return fmt.Errorf("rotate flush: %w", err)
	}
	a.core.closeLocked()

	if err := os.Rename(a.core.path, rotatedName); err != nil {
		return fmt.Errorf("rotate rename: %w", err)
	}

	// The base path no longer exists after the rename, so this creates a
	// fresh file and reseeds the byte counter (normally to zero).
	if err := a.core.openLocked(); err != nil {
		return fmt.Errorf("rotate reopen: %w", err)
	}

	a.rotations.Add(1)
	a.core.metrics.observeRotation()

	a.pruneLocked()
	return nil
}

// nextRotatedNameLocked returns an unused rotated filename for the current
// UTC second, probing .1 .. .9999 suffixes on collision. Caller must hold
// the core mutex; nothing on disk is modified.
func (a *RotatingFileAppender) nextRotatedNameLocked() (string, error) {
	stamp := time.Now().UTC().Format(rotationStampLayout)
	candidate := a.core.path + "." + stamp
	if !fileExists(candidate) {
		return candidate, nil
	}
	for seq := 1; seq <= maxRotationProbes; seq++ {
		candidate = a.core.path + "." + stamp + "." + strconv.Itoa(seq)
		if !fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", ErrRotatedNameExhausted
}

// fileExists reports whether path exists. Errors other than non-existence
// count as existing: renaming over a file we could not stat would silently
// destroy it, so the probe stays conservative.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !os.IsNotExist(err)
}

// Rotations returns how many rotations this appender has performed.
func (a *RotatingFileAppender) Rotations() uint64 {
	return a.rotations.Load()
}

// MaxBytes returns the configured rotation threshold.
func (a *RotatingFileAppender) MaxBytes() uint64 {
	return a.maxBytes
}

// MaxRotatedFiles returns the configured retention limit (0 = unlimited).
func (a *RotatingFileAppender) MaxRotatedFiles() int {
	return a.maxRotatedFiles
}

// Path returns the base path the appender is currently writing to.
func (a *RotatingFileAppender) Path() string {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.path
}

// BytesWritten returns the byte count attributed to the currently open file.
func (a *RotatingFileAppender) BytesWritten() uint64 {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	return a.core.bytesWritten
}

// SetMetrics attaches optional sink metrics. Pass nil to detach. Intended to
// be called before the appender is shared across goroutines.
func (a *RotatingFileAppender) SetMetrics(m *SinkMetrics) {
	a.core.mu.Lock()
	defer a.core.mu.Unlock()
	a.core.metrics = m
}
