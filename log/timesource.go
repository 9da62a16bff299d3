package log

import "time"

// TimeSource supplies the time values stamped onto log records. Simulation
// executives provide simulation time and MET; stand-alone runs and unit tests
// use the implementations below. The interface is intentionally small so any
// environment can implement it without pulling in framework headers.
//
// Note that rotated-file naming does NOT go through a TimeSource: rotation
// names embed the host's UTC wall-clock time so that on-disk ordering stays
// meaningful across runs regardless of the simulation clock.
type TimeSource interface {
	// SimTime returns the current simulation time in seconds.
	SimTime() float64

	// MissionElapsed returns the mission elapsed time (MET) in seconds.
	MissionElapsed() float64

	// WallTimeNS returns a monotonically increasing host timestamp in
	// nanoseconds, suitable for ordering messages across goroutines. It is
	// not time-of-day.
	WallTimeNS() int64
}

// hostEpoch anchors HostTimeSource timestamps. time.Since reads the monotonic
// clock, so values never go backwards even across NTP corrections.
var hostEpoch = time.Now()

// HostTimeSource is the stand-alone time source used when no simulation
// executive is available. Simulation time and MET are reported as zero rather
// than inventing semantics that could conflict with a real executive.
type HostTimeSource struct{}

// SimTime always returns 0 in stand-alone use.
func (HostTimeSource) SimTime() float64 { return 0 }

// MissionElapsed always returns 0 in stand-alone use.
func (HostTimeSource) MissionElapsed() float64 { return 0 }

// WallTimeNS returns nanoseconds elapsed since process start, read from the
// monotonic clock.
func (HostTimeSource) WallTimeNS() int64 {
	return time.Since(hostEpoch).Nanoseconds()
}

// ManualTimeSource is a deterministic time source for tests and replay tools.
// All values are fixed at construction and move only through Advance. It is
// not safe for concurrent use with Advance; tests drive it from one
// goroutine.
type ManualTimeSource struct {
	simTime    float64
	met        float64
	wallTimeNS int64
}

// NewManualTimeSource creates a ManualTimeSource with the given initial
// values.
func NewManualTimeSource(simTime, met float64, wallTimeNS int64) *ManualTimeSource {
	return &ManualTimeSource{
		simTime:    simTime,
		met:        met,
		wallTimeNS: wallTimeNS,
	}
}

// SimTime returns the current simulated simulation time.
func (m *ManualTimeSource) SimTime() float64 { return m.simTime }

// MissionElapsed returns the current simulated MET.
func (m *ManualTimeSource) MissionElapsed() float64 { return m.met }

// WallTimeNS returns the current simulated host timestamp.
func (m *ManualTimeSource) WallTimeNS() int64 { return m.wallTimeNS }

// Advance moves all three clocks forward by the given deltas.
func (m *ManualTimeSource) Advance(simDelta, metDelta float64, wallDeltaNS int64) {
	m.simTime += simDelta
	m.met += metDelta
	m.wallTimeNS += wallDeltaNS
}
