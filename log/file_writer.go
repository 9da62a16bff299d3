package log

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Default file permissions for log files and directories.
	defaultFileMode = 0644
	defaultDirMode  = 0755

	_writerBufSize = 4096
)

// appendFileWriter owns one open output file handle together with its write
// buffer. It is the lowest layer of the sink stack and is NOT safe for
// concurrent use; serialization is the job of the sinkCore that owns it.
type appendFileWriter struct {
	fd *os.File
	w  *bufio.Writer
}

// openAppendFile opens path for appending, creating the file and any missing
// parent directories.
func openAppendFile(path string) (*appendFileWriter, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	fd, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, defaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return &appendFileWriter{
		fd: fd,
		w:  bufio.NewWriterSize(fd, _writerBufSize),
	}, nil
}

// write appends all of buf. A short write is fatal for the call: append-mode
// writes of line-sized payloads are expected to be atomic at the OS level, so
// there is no partial-write retry.
func (a *appendFileWriter) write(buf []byte) error {
	n, err := a.w.Write(buf)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(buf))
	}
	return nil
}

// flush pushes buffered data to the OS. When durable is set it additionally
// forces the data to stable storage.
func (a *appendFileWriter) flush(durable bool) error {
	if err := a.w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if durable {
		if err := a.fd.Sync(); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	}
	return nil
}

// close releases the handle. Best-effort: close-time failures must never
// propagate, so errors are suppressed.
func (a *appendFileWriter) close() {
	_ = a.w.Flush()
	_ = a.fd.Close()
}

// size returns the current on-disk byte length of the open file. Best-effort:
// it is used only to seed the bytes-written counter on (re)open and returns 0
// when the size cannot be determined.
func (a *appendFileWriter) size() uint64 {
	fi, err := a.fd.Stat()
	if err != nil || fi.Size() < 0 {
		return 0
	}
	return uint64(fi.Size())
}
