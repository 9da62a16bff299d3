package log

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// rotatedFile is one retention candidate, recomputed from the filesystem on
// every pruning pass. No index is kept across calls.
type rotatedFile struct {
	name  string
	stamp string
	seq   int
}

// pruneLocked deletes the oldest rotated siblings of the base file beyond
// the retention limit. It runs only immediately after a successful rotation
// and is entirely best-effort: listing or deletion failures are absorbed and
// never affect the write that triggered the rotation. The only cost of a
// failed prune is rotated-file count growth until the next successful one.
//
// Caller must hold the core mutex.
func (a *RotatingFileAppender) pruneLocked() {
	if a.maxRotatedFiles <= 0 {
		return
	}

	dir := filepath.Dir(a.core.path)
	baseName := filepath.Base(a.core.path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var candidates []rotatedFile
	for _, ent := range entries {
		if !ent.Type().IsRegular() {
			continue
		}
		stamp, seq, ok := parseRotationSuffix(ent.Name(), baseName)
		if !ok {
			continue
		}
		candidates = append(candidates, rotatedFile{name: ent.Name(), stamp: stamp, seq: seq})
	}

	if len(candidates) <= a.maxRotatedFiles {
		return
	}

	// Fixed-width stamps sort lexicographically in chronological order;
	// the sequence number breaks same-second ties.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].stamp != candidates[j].stamp {
			return candidates[i].stamp < candidates[j].stamp
		}
		return candidates[i].seq < candidates[j].seq
	})

	removed := 0
	for _, c := range candidates[:len(candidates)-a.maxRotatedFiles] {
		if os.Remove(filepath.Join(dir, c.name)) == nil {
			removed++
		}
	}
	a.core.metrics.observePruned(removed)
}

// parseRotationSuffix reports whether filename is a rotated sibling of
// baseName, i.e. matches
//
//	<baseName>.<YYYYMMDD_HHMMSS>          or
//	<baseName>.<YYYYMMDD_HHMMSS>.<seq>
//
// with a strictly shaped timestamp (8 digits, underscore, 6 digits) and a
// non-negative integer sequence. Anything else - including files that merely
// share the base prefix - is not a pruning candidate.
func parseRotationSuffix(filename, baseName string) (stamp string, seq int, ok bool) {
	prefix := baseName + "."
	if !strings.HasPrefix(filename, prefix) {
		return "", 0, false
	}

	rest := filename[len(prefix):]
	if len(rest) < len(rotationStampLayout) {
		return "", 0, false
	}
	stamp = rest[:len(rotationStampLayout)]
	if !validStamp(stamp) {
		return "", 0, false
	}

	rest = rest[len(rotationStampLayout):]
	if rest == "" {
		return stamp, 0, true
	}
	if rest[0] != '.' || len(rest) == 1 {
		return "", 0, false
	}

	seq, err := strconv.Atoi(rest[1:])
	if err != nil || seq < 0 || !allDigits(rest[1:]) {
		return "", 0, false
	}
	return stamp, seq, true
}

// validStamp checks the fixed 15-character YYYYMMDD_HHMMSS shape.
func validStamp(s string) bool {
	if len(s) != 15 || s[8] != '_' {
		return false
	}
	return allDigits(s[:8]) && allDigits(s[9:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
