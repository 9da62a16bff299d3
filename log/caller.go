package log

import (
	"runtime"
	"strings"
)

const _unknownCaller = "unknown"

// callSite resolves the file, line, and function of the frame skip levels
// above the caller. File and function are trimmed to their last path element
// to keep log lines short.
func callSite(skip int) (file string, line int, function string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return _unknownCaller, 0, _unknownCaller
	}

	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}

	function = _unknownCaller
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if i := strings.LastIndexByte(function, '/'); i >= 0 {
			function = function[i+1:]
		}
	}
	return file, line, function
}
