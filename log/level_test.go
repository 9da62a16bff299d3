package log

import "testing"

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		DebugLevel: "DEBUG",
		InfoLevel:  "INFO",
		WarnLevel:  "WARN",
		ErrorLevel: "ERROR",
		FatalLevel: "FATAL",
		Level(0):   "UNKNOWN",
	}
	for lvl, want := range cases {
		if got := lvl.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", lvl, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"DEBUG", DebugLevel, true},
		{"debug", DebugLevel, true},
		{"Info", InfoLevel, true},
		{"WARN", WarnLevel, true},
		{"warning", WarnLevel, true},
		{"WaRn", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"FATAL", FatalLevel, true},
		{"", InfoLevel, false},
		{"VERBOSE", InfoLevel, false},
		{"TRACE", InfoLevel, false},
	}
	for _, c := range cases {
		got, ok := ParseLevel(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseLevelInt(t *testing.T) {
	accepted := map[int]Level{
		0:  InfoLevel,
		1:  InfoLevel,
		2:  WarnLevel,
		3:  ErrorLevel,
		10: DebugLevel,
	}
	for in, want := range accepted {
		got, ok := ParseLevelInt(in)
		if !ok || got != want {
			t.Errorf("ParseLevelInt(%d) = (%v, %v), want (%v, true)", in, got, ok, want)
		}
	}

	for _, in := range []int{-1, 4, 9, 11} {
		if _, ok := ParseLevelInt(in); ok {
			t.Errorf("ParseLevelInt(%d) accepted, want rejection", in)
		}
	}
}

func TestLevelAtLeast(t *testing.T) {
	if !WarnLevel.AtLeast(WarnLevel) {
		t.Error("threshold comparison must be inclusive")
	}
	if !ErrorLevel.AtLeast(WarnLevel) {
		t.Error("ERROR should pass a WARN threshold")
	}
	if InfoLevel.AtLeast(WarnLevel) {
		t.Error("INFO should not pass a WARN threshold")
	}
}
