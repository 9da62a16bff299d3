package log

import (
	"bytes"
	"strconv"
	"strings"
)

// DefaultPattern is the line layout used when a configuration does not
// specify one.
const DefaultPattern = "[{level}] sim={sim} {logger}: {msg}"

// Placeholder names recognized by PatternFormatter.
//
//	{level}   canonical uppercase severity
//	{msg}     message text
//	{sim}     simulation time, seconds, three decimals
//	{met}     mission elapsed time, seconds, three decimals
//	{wall}    monotonic host timestamp in nanoseconds
//	{logger}  hierarchical logger name
//	{file}    caller file
//	{line}    caller line
//	{func}    caller function
//	{tags}    space-separated key=value pairs
//
// Unrecognized placeholders are emitted literally, so a stray "{...}" in a
// pattern never breaks rendering.
type fieldKind int

const (
	fieldLiteral fieldKind = iota
	fieldLevel
	fieldMsg
	fieldSim
	fieldMet
	fieldWall
	fieldLogger
	fieldFile
	fieldLine
	fieldFunc
	fieldTags
)

var fieldNames = map[string]fieldKind{
	"level":  fieldLevel,
	"msg":    fieldMsg,
	"sim":    fieldSim,
	"met":    fieldMet,
	"wall":   fieldWall,
	"logger": fieldLogger,
	"file":   fieldFile,
	"line":   fieldLine,
	"func":   fieldFunc,
	"tags":   fieldTags,
}

type segment struct {
	kind    fieldKind
	literal string // set when kind == fieldLiteral
}

// PatternFormatter renders a Record into a single text line according to a
// placeholder pattern. The pattern is compiled once at construction into a
// segment list, so per-record rendering is a straight walk with no parsing
// and no intermediate allocations beyond the output buffer.
//
// A PatternFormatter is immutable after construction and safe for concurrent
// use.
type PatternFormatter struct {
	segments []segment
}

// NewPatternFormatter compiles the given pattern. An empty pattern compiles
// to DefaultPattern.
func NewPatternFormatter(pattern string) *PatternFormatter {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &PatternFormatter{segments: compilePattern(pattern)}
}

// compilePattern splits a pattern into literal and field segments. Adjacent
// literals are merged so rendering touches as few segments as possible.
func compilePattern(pattern string) []segment {
	var segs []segment
	appendLiteral := func(s string) {
		if s == "" {
			return
		}
		if n := len(segs); n > 0 && segs[n-1].kind == fieldLiteral {
			segs[n-1].literal += s
			return
		}
		segs = append(segs, segment{kind: fieldLiteral, literal: s})
	}

	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			appendLiteral(rest)
			return segs
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			appendLiteral(rest)
			return segs
		}
		close += open

		name := rest[open+1 : close]
		kind, ok := fieldNames[name]
		if !ok {
			// Unknown placeholder: keep it literally, including braces.
			appendLiteral(rest[:close+1])
			rest = rest[close+1:]
			continue
		}
		appendLiteral(rest[:open])
		segs = append(segs, segment{kind: kind})
		rest = rest[close+1:]
	}
}

// Format renders rec into buf. The buffer is not reset first, so callers can
// compose prefixes if they need to. No trailing newline is added; appenders
// own line termination.
func (f *PatternFormatter) Format(rec *Record, buf *bytes.Buffer) {
	for _, seg := range f.segments {
		switch seg.kind {
		case fieldLiteral:
			buf.WriteString(seg.literal)
		case fieldLevel:
			buf.WriteString(rec.Level.String())
		case fieldMsg:
			buf.WriteString(rec.Message)
		case fieldSim:
			appendSeconds(buf, rec.SimTime)
		case fieldMet:
			appendSeconds(buf, rec.MissionElapsed)
		case fieldWall:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), rec.WallTimeNS, 10))
		case fieldLogger:
			buf.WriteString(rec.LoggerName)
		case fieldFile:
			buf.WriteString(rec.File)
		case fieldLine:
			buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Line), 10))
		case fieldFunc:
			buf.WriteString(rec.Function)
		case fieldTags:
			appendTags(buf, rec.Tags)
		}
	}
}

// FormatLine renders rec into a freshly allocated byte slice. Convenience
// wrapper for callers that do not pool buffers.
func (f *PatternFormatter) FormatLine(rec *Record) []byte {
	var buf bytes.Buffer
	buf.Grow(128)
	f.Format(rec, &buf)
	return buf.Bytes()
}

// appendSeconds writes a seconds value with millisecond precision, the
// conventional resolution for simulation timestamps in log output.
func appendSeconds(buf *bytes.Buffer, v float64) {
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), v, 'f', 3, 64))
}

// appendTags writes tags as space-separated key=value pairs.
func appendTags(buf *bytes.Buffer, tags []Tag) {
	for i, tag := range tags {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(tag.Key)
		buf.WriteByte('=')
		buf.WriteString(tag.Value)
	}
}
