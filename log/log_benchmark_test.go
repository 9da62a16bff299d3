package log

import (
	"path/filepath"
	"testing"
)

// BenchmarkFileLogging measures the cost of a synchronous log call through
// the formatter and the plain file sink.
func BenchmarkFileLogging(b *testing.B) {
	logger, err := NewLogger(&LogCfg{
		LogPath:      filepath.Join(b.TempDir(), "bench.log"),
		LogLevel:     "DEBUG",
		Pattern:      DefaultPattern,
		FileAppender: true,
	})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", Str("subsystem", "GNC"))
	}
}

// BenchmarkFilteredLogging measures the fast path where the record is
// rejected by the level check before any formatting work happens.
func BenchmarkFilteredLogging(b *testing.B) {
	logger, err := NewLogger(&LogCfg{
		LogPath:      filepath.Join(b.TempDir(), "bench.log"),
		LogLevel:     "ERROR",
		Pattern:      DefaultPattern,
		FileAppender: true,
	})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("benchmark message")
	}
}

// BenchmarkRotatingSink measures logging through the rotating sink with a
// threshold large enough that rotation itself never triggers.
func BenchmarkRotatingSink(b *testing.B) {
	logger, err := NewLogger(&LogCfg{
		LogPath:      filepath.Join(b.TempDir(), "bench.log"),
		LogLevel:     "DEBUG",
		Pattern:      DefaultPattern,
		MaxBytes:     1 << 40,
		FileAppender: true,
	})
	if err != nil {
		b.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message")
	}
}
