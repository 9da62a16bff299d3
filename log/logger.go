package log

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
)

// SimLogger builds records, renders them through a PatternFormatter, and
// fans them out to the configured appenders, all synchronously on the
// calling goroutine. The minimum level lives behind an atomic so it can be
// raised or lowered mid-run (config hot-reload) without pausing writers.
//
// Logging never terminates the host process: FatalLevel is a severity, not
// an exit. Appender write failures are likewise contained at this layer -
// the logger is the bottom of the stack and has no secondary channel to
// report into. Callers that need write errors surfaced use the appender API
// directly.
type SimLogger struct {
	name              string
	minLevel          *atomic.Int32
	timeSource        TimeSource
	formatter         *PatternFormatter
	appenders         []LogAppender
	tags              []Tag
	enabledCallerInfo bool
	callerSkip        int
	bufPool           *sync.Pool
}

// NewLogger builds a logger from cfg. A nil cfg uses the package defaults
// (console only, Info level). The configuration is validated first; sink
// construction errors (unwritable path, bad threshold) are returned before
// the logger is usable.
func NewLogger(cfg *LogCfg) (*SimLogger, error) {
	if cfg == nil {
		cfg = getDefaultCfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &SimLogger{
		name:              cfg.LoggerName,
		minLevel:          &atomic.Int32{},
		timeSource:        HostTimeSource{},
		formatter:         NewPatternFormatter(cfg.Pattern),
		enabledCallerInfo: cfg.EnabledCallerInfo,
		callerSkip:        cfg.CallerSkip,
		bufPool: &sync.Pool{
			New: func() any {
				buf := &bytes.Buffer{}
				buf.Grow(256)
				return buf
			},
		},
	}
	l.minLevel.Store(int32(cfg.Severity()))

	if cfg.FileAppender {
		var (
			app LogAppender
			err error
		)
		if cfg.MaxBytes > 0 {
			app, err = NewRotatingFileAppender(cfg.LogPath, cfg.MaxBytes, cfg.DurableFlush, cfg.MaxRotatedFiles)
		} else {
			app, err = NewFileAppender(cfg.LogPath, cfg.DurableFlush)
		}
		if err != nil {
			return nil, err
		}
		l.AddAppender(app)
	}
	if cfg.ConsoleAppender {
		l.AddAppender(NewConsoleAppender())
	}

	return l, nil
}

// AddAppender registers an additional output destination. Not safe to call
// concurrently with logging; wire appenders up during initialization.
func (l *SimLogger) AddAppender(appender LogAppender) {
	l.appenders = append(l.appenders, appender)
}

// Appenders returns the registered appenders, e.g. to reach a
// RotatingFileAppender's rotation counter in tests or tooling.
func (l *SimLogger) Appenders() []LogAppender {
	return l.appenders
}

// SetTimeSource replaces the time source stamped onto records, typically
// with the simulation executive's clock. Call during initialization, before
// the logger is shared.
func (l *SimLogger) SetTimeSource(ts TimeSource) {
	if ts != nil {
		l.timeSource = ts
	}
}

// SetLevel adjusts the minimum severity at runtime. Safe under concurrent
// logging.
func (l *SimLogger) SetLevel(lvl Level) {
	l.minLevel.Store(int32(lvl))
}

// Level returns the current minimum severity.
func (l *SimLogger) Level() Level {
	return Level(l.minLevel.Load())
}

// Named returns a child logger whose name extends l's with a dot-separated
// suffix, sharing appenders, level, and time source with its parent.
func (l *SimLogger) Named(name string) *SimLogger {
	child := *l
	if l.name != "" {
		child.name = l.name + "." + name
	} else {
		child.name = name
	}
	return &child
}

// With returns a child logger that stamps the given tags on every record, in
// addition to any tags passed at the call site.
func (l *SimLogger) With(tags ...Tag) *SimLogger {
	child := *l
	child.tags = append(append([]Tag(nil), l.tags...), tags...)
	return &child
}

// Debug logs a message at DebugLevel.
func (l *SimLogger) Debug(msg string, tags ...Tag) { l.emit(DebugLevel, msg, tags) }

// Info logs a message at InfoLevel.
func (l *SimLogger) Info(msg string, tags ...Tag) { l.emit(InfoLevel, msg, tags) }

// Warn logs a message at WarnLevel.
func (l *SimLogger) Warn(msg string, tags ...Tag) { l.emit(WarnLevel, msg, tags) }

// Error logs a message at ErrorLevel.
func (l *SimLogger) Error(msg string, tags ...Tag) { l.emit(ErrorLevel, msg, tags) }

// Fatal logs a message at FatalLevel. It does not terminate the process;
// deciding to abort a run belongs to the simulation executive, not its
// logger.
func (l *SimLogger) Fatal(msg string, tags ...Tag) { l.emit(FatalLevel, msg, tags) }

// Debugf logs a formatted message at DebugLevel.
func (l *SimLogger) Debugf(format string, args ...any) {
	l.emit(DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted message at InfoLevel.
func (l *SimLogger) Infof(format string, args ...any) {
	l.emit(InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted message at WarnLevel.
func (l *SimLogger) Warnf(format string, args ...any) {
	l.emit(WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted message at ErrorLevel.
func (l *SimLogger) Errorf(format string, args ...any) {
	l.emit(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a formatted message at FatalLevel without terminating the
// process.
func (l *SimLogger) Fatalf(format string, args ...any) {
	l.emit(FatalLevel, fmt.Sprintf(format, args...), nil)
}

// emit builds the record, renders it, and writes it to every appender. The
// rendered line lives in a pooled buffer owned by this call; appenders must
// not retain it.
func (l *SimLogger) emit(level Level, msg string, tags []Tag) {
	if !level.AtLeast(Level(l.minLevel.Load())) {
		return
	}

	rec := Record{
		Level:          level,
		SimTime:        l.timeSource.SimTime(),
		MissionElapsed: l.timeSource.MissionElapsed(),
		WallTimeNS:     l.timeSource.WallTimeNS(),
		LoggerName:     l.name,
		Message:        msg,
	}
	if len(l.tags) > 0 || len(tags) > 0 {
		rec.Tags = append(append([]Tag(nil), l.tags...), tags...)
	}
	if l.enabledCallerInfo {
		// Frames: callSite, emit, leveled method, then the caller.
		rec.File, rec.Line, rec.Function = callSite(3 + l.callerSkip)
	}

	buf := l.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	l.formatter.Format(&rec, buf)

	for _, app := range l.appenders {
		_, _ = app.Write(buf.Bytes())
	}

	// Keep oversized buffers out of the pool.
	if buf.Cap() <= 4096 {
		l.bufPool.Put(buf)
	}
}

// Flush flushes every appender, returning the first error while still
// flushing the rest.
func (l *SimLogger) Flush() error {
	var firstErr error
	for _, app := range l.appenders {
		if err := app.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close flushes and closes every appender. It should be called at shutdown
// to avoid losing buffered lines.
func (l *SimLogger) Close() error {
	var firstErr error
	for _, app := range l.appenders {
		if err := app.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _defaultLogger *SimLogger

func init() {
	// Console-only default so logging works before Initialize is called.
	_defaultLogger, _ = NewLogger(nil)
}

// Initialize configures the package-level default logger. If cfg is nil, the
// default configuration is used. Call once at application startup.
func Initialize(cfg *LogCfg) error {
	l, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	SetDefaultLogger(l)
	return nil
}

// SetDefaultLogger replaces the default logger behind the package-level
// functions.
func SetDefaultLogger(logger *SimLogger) {
	if logger != nil {
		_defaultLogger = logger
	}
}

// DefaultLogger returns the logger behind the package-level functions.
func DefaultLogger() *SimLogger {
	return _defaultLogger
}

// Debug logs to the default logger at DebugLevel.
func Debug(msg string, tags ...Tag) { _defaultLogger.Debug(msg, tags...) }

// Info logs to the default logger at InfoLevel.
func Info(msg string, tags ...Tag) { _defaultLogger.Info(msg, tags...) }

// Warn logs to the default logger at WarnLevel.
func Warn(msg string, tags ...Tag) { _defaultLogger.Warn(msg, tags...) }

// Error logs to the default logger at ErrorLevel.
func Error(msg string, tags ...Tag) { _defaultLogger.Error(msg, tags...) }

// Fatal logs to the default logger at FatalLevel without terminating the
// process.
func Fatal(msg string, tags ...Tag) { _defaultLogger.Fatal(msg, tags...) }

// Flush flushes the default logger's appenders.
func Flush() error {
	return _defaultLogger.Flush()
}

// Close flushes and closes the default logger's appenders. Call at
// application shutdown.
func Close() error {
	return _defaultLogger.Close()
}
