package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRotationSuffix(t *testing.T) {
	cases := []struct {
		filename string
		stamp    string
		seq      int
		ok       bool
	}{
		{"sim.log.20240131_235959", "20240131_235959", 0, true},
		{"sim.log.20240131_235959.1", "20240131_235959", 1, true},
		{"sim.log.20240131_235959.9999", "20240131_235959", 9999, true},

		{"sim.log", "", 0, false},                      // base file itself
		{"sim.log.bak", "", 0, false},                  // shares prefix, wrong shape
		{"sim.log.2024013_235959", "", 0, false},       // short date
		{"sim.log.20240131-235959", "", 0, false},      // wrong separator
		{"sim.log.20240131_23595a", "", 0, false},      // non-digit in time
		{"sim.log.20240131_235959.", "", 0, false},     // empty sequence
		{"sim.log.20240131_235959.x", "", 0, false},    // non-numeric sequence
		{"sim.log.20240131_235959.-1", "", 0, false},   // signed sequence
		{"sim.log.20240131_235959.1.2", "", 0, false},  // extra component
		{"other.log.20240131_235959", "", 0, false},    // different base
		{"sim.log.20240131_2359591", "", 0, false},     // trailing digit glued on
		{"sim.logx.20240131_235959", "", 0, false},     // prefix without dot boundary
	}

	for _, c := range cases {
		stamp, seq, ok := parseRotationSuffix(c.filename, "sim.log")
		assert.Equalf(t, c.ok, ok, "filename %q", c.filename)
		if c.ok {
			assert.Equal(t, c.stamp, stamp)
			assert.Equal(t, c.seq, seq)
		}
	}
}

func TestPruneIgnoresNonCandidates(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sim.log")

	// Rotation-suffix candidates, oldest first.
	candidates := []string{
		"sim.log.20200101_000000",
		"sim.log.20200101_000000.1",
		"sim.log.20200102_000000",
	}
	// Lookalikes that share the prefix but must never be deleted.
	bystanders := []string{
		"sim.log.bak",
		"sim.log.20200101",
		"sim.log.notes.txt",
		"other.log.20200101_000000",
	}
	for _, name := range append(append([]string{}, candidates...), bystanders...) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}

	sink, err := NewRotatingFileAppender(base, 1<<20, false, 1)
	require.NoError(t, err)
	defer sink.Close()

	sink.core.mu.Lock()
	sink.pruneLocked()
	sink.core.mu.Unlock()

	remaining := listRotatedFiles(t, base)
	require.Len(t, remaining, 1)
	assert.Equal(t, filepath.Join(dir, "sim.log.20200102_000000"), remaining[0],
		"the newest candidate survives")

	for _, name := range bystanders {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoErrorf(t, err, "bystander %q must not be deleted", name)
	}
}

func TestPruneOrdersSameSecondBySequence(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sim.log")

	names := []string{
		"sim.log.20200101_000000",   // oldest: no sequence sorts first
		"sim.log.20200101_000000.1",
		"sim.log.20200101_000000.2",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}

	sink, err := NewRotatingFileAppender(base, 1<<20, false, 2)
	require.NoError(t, err)
	defer sink.Close()

	sink.core.mu.Lock()
	sink.pruneLocked()
	sink.core.mu.Unlock()

	remaining := listRotatedFiles(t, base)
	require.Len(t, remaining, 2)
	assert.NotContains(t, remaining, filepath.Join(dir, names[0]))
}

func TestPruneDisabledWhenUnlimited(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sim.log")

	for _, name := range []string{
		"sim.log.20200101_000000",
		"sim.log.20200102_000000",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0644))
	}

	sink, err := NewRotatingFileAppender(base, 1<<20, false, 0)
	require.NoError(t, err)
	defer sink.Close()

	sink.core.mu.Lock()
	sink.pruneLocked()
	sink.core.mu.Unlock()

	assert.Len(t, listRotatedFiles(t, base), 2)
}
