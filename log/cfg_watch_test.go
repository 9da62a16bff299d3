package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCfgWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: DEBUG\n"), 0644))

	reloads := make(chan *LogCfg, 4)
	watcher, err := WatchCfgFile(path, func(cfg *LogCfg, err error) {
		if err == nil {
			reloads <- cfg
		}
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte("level: ERROR\n"), 0644))

	select {
	case cfg := <-reloads:
		assert.Equal(t, ErrorLevel, cfg.Severity())
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed after config change")
	}
}

func TestCfgWatcherReportsReloadFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: DEBUG\n"), 0644))

	failures := make(chan error, 4)
	watcher, err := WatchCfgFile(path, func(cfg *LogCfg, err error) {
		if err != nil {
			failures <- err
		}
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte("level: NOISY\n"), 0644))

	select {
	case err := <-failures:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("invalid config change not reported")
	}
}

func TestCfgWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: DEBUG\n"), 0644))

	reloads := make(chan struct{}, 4)
	watcher, err := WatchCfgFile(path, func(cfg *LogCfg, err error) {
		reloads <- struct{}{}
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("level: ERROR\n"), 0644))

	select {
	case <-reloads:
		t.Fatal("sibling file change must not trigger a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestCfgWatcherStopTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: DEBUG\n"), 0644))

	watcher, err := WatchCfgFile(path, func(cfg *LogCfg, err error) {})
	require.NoError(t, err)

	watcher.Stop()
	watcher.Stop()
}
