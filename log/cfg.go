package log

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// LogCfg is the declarative configuration for a logger and its sinks.
// Instances are immutable once a logger has been constructed from them;
// runtime adjustments go through SimLogger.SetLevel (typically driven by a
// CfgWatcher) rather than by mutating a live LogCfg.
type LogCfg struct {
	// LogPath is the base output file path for file-backed sinks. The
	// file at this path is always the currently active log file; rotated
	// files live next to it with a timestamp suffix.
	LogPath string `mapstructure:"path"`

	// LogLevel is the minimum severity to emit. Accepts canonical names
	// (case-insensitive, "WARNING" allowed) as well as the legacy numeric
	// convention ("0", "2", "10", ...). Empty means Info.
	LogLevel string `mapstructure:"level"`

	// Pattern is the line layout; see PatternFormatter for placeholders.
	// Empty means DefaultPattern.
	Pattern string `mapstructure:"pattern"`

	// MaxBytes is the size-based rotation threshold. 0 disables rotation
	// and produces a plain append-only file sink; any positive value
	// produces a rotating sink that rotates before a write would reach
	// the threshold.
	MaxBytes uint64 `mapstructure:"maxBytes"`

	// MaxRotatedFiles bounds how many rotated files are retained
	// (0 = unlimited). Only meaningful when MaxBytes > 0.
	MaxRotatedFiles int `mapstructure:"maxRotatedFiles"`

	// DurableFlush makes Flush force data to stable storage (fsync)
	// rather than only to the OS.
	DurableFlush bool `mapstructure:"durableFlush"`

	// FileAppender / ConsoleAppender select the output destinations. At
	// least one must be enabled.
	FileAppender    bool `mapstructure:"fileAppender"`
	ConsoleAppender bool `mapstructure:"consoleAppender"`

	// LoggerName is the hierarchical name stamped on records,
	// e.g. "vehicle1.propulsion".
	LoggerName string `mapstructure:"name"`

	// EnabledCallerInfo captures file/line/function of the call site.
	EnabledCallerInfo bool `mapstructure:"enabledCallerInfo"`

	// CallerSkip is the number of extra stack frames to skip when
	// capturing caller information, for wrapper layers.
	CallerSkip int `mapstructure:"callerSkip"`
}

// Severity resolves the configured level string. Unset resolves to Info;
// call Validate first to reject unparseable values.
func (cfg *LogCfg) Severity() Level {
	if cfg.LogLevel == "" {
		return InfoLevel
	}
	if lvl, ok := ParseLevel(cfg.LogLevel); ok {
		return lvl
	}
	if n, err := strconv.Atoi(cfg.LogLevel); err == nil {
		if lvl, ok := ParseLevelInt(n); ok {
			return lvl
		}
	}
	return InfoLevel
}

// Validate checks the configuration for correctness and normalizes paths.
// Configuration errors are reported here, before any file is touched.
func (cfg *LogCfg) Validate() error {
	if !cfg.FileAppender && !cfg.ConsoleAppender {
		return fmt.Errorf("at least one appender (file or console) must be enabled")
	}

	if cfg.FileAppender {
		if cfg.LogPath == "" {
			return fmt.Errorf("log path cannot be empty when file appender is enabled")
		}
		cfg.LogPath = filepath.Clean(cfg.LogPath)
	}

	if cfg.MaxRotatedFiles < 0 {
		return fmt.Errorf("max rotated files must be non-negative, got %d", cfg.MaxRotatedFiles)
	}

	if cfg.CallerSkip < 0 {
		return fmt.Errorf("caller skip must be non-negative, got %d", cfg.CallerSkip)
	}

	if cfg.LogLevel != "" {
		if _, ok := ParseLevel(cfg.LogLevel); !ok {
			n, err := strconv.Atoi(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("unrecognized log level %q", cfg.LogLevel)
			}
			if _, ok := ParseLevelInt(n); !ok {
				return fmt.Errorf("unsupported numeric log level %d", n)
			}
		}
	}

	return nil
}

var _defaultCfg = &LogCfg{
	LogLevel:          "INFO",
	ConsoleAppender:   true,
	LoggerName:        "simlog",
	EnabledCallerInfo: true,
	CallerSkip:        1,
}

func getDefaultCfg() *LogCfg {
	cfg := *_defaultCfg
	return &cfg
}
