package log

// Tag is a simple key/value annotation attached to a log record, carrying
// contextual information such as vehicle ID, subsystem, or scenario.
type Tag struct {
	Key   string
	Value string
}

// Str builds a Tag. It exists purely to keep call sites short.
func Str(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// Record is the fully materialized representation of a single log entry,
// captured after all metadata has been collected. It is a data object only:
// formatting, filtering, and sink routing are handled elsewhere in the
// pipeline.
//
// A Record must not be modified once handed to a formatter or appender. This
// keeps records safe to share across goroutines without synchronization.
type Record struct {
	// Level is the severity of the message.
	Level Level

	// SimTime is the simulation time in seconds, as reported by the
	// configured time source. Zero in stand-alone runs.
	SimTime float64

	// MissionElapsed is the mission elapsed time (MET) in seconds since
	// scenario start. Zero in stand-alone runs.
	MissionElapsed float64

	// WallTimeNS is a monotonically increasing host timestamp in
	// nanoseconds, used for stable ordering and correlation across
	// goroutines. It does not represent time-of-day.
	WallTimeNS int64

	// File, Line and Function identify the call site when caller capture
	// is enabled; empty otherwise.
	File     string
	Line     int
	Function string

	// LoggerName is the hierarchical name of the emitting logger,
	// e.g. "vehicle1.propulsion".
	LoggerName string

	// Tags holds optional contextual annotations in emission order.
	Tags []Tag

	// Message is the final message text.
	Message string
}
