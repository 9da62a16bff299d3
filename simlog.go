// Package simlog bundles a configured simulation logger with optional
// configuration hot-reload. Most code logs through the log subpackage
// directly; this facade exists for applications that want one object to
// construct at startup and stop at shutdown.
package simlog

import (
	"github.com/linchenxuan/simlog/log"
)

// Simlog is the application-facing bundle: a ready logger plus the optional
// watcher that keeps its level in sync with a configuration file.
type Simlog struct {
	Logger *log.SimLogger

	watcher *log.CfgWatcher
}

// New creates a Simlog instance from cfg. A nil cfg yields the console-only
// default. The created logger also becomes the package-level default in the
// log subpackage for convenient access.
func New(cfg *log.LogCfg) (*Simlog, error) {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	log.SetDefaultLogger(logger)

	return &Simlog{Logger: logger}, nil
}

// NewFromFile loads a YAML or JSON configuration file and creates a Simlog
// instance from it. When watch is true the file is additionally monitored
// and a successful reload adjusts the live logger's minimum level; sink
// topology changes require a restart.
func NewFromFile(path string, watch bool) (*Simlog, error) {
	cfg, err := log.LoadCfgFile(path)
	if err != nil {
		return nil, err
	}

	s, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if watch {
		watcher, err := log.WatchCfgFile(path, func(reloaded *log.LogCfg, err error) {
			if err != nil {
				// The previous configuration stays in effect.
				return
			}
			s.Logger.SetLevel(reloaded.Severity())
		})
		if err != nil {
			_ = s.Logger.Close()
			return nil, err
		}
		s.watcher = watcher
	}

	return s, nil
}

// Stop halts configuration watching and flushes and closes the logger's
// appenders. Call at application shutdown.
func (s *Simlog) Stop() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.Logger.Close()
}
