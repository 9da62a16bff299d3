package log

import (
	"testing"
	"time"
)

func TestHostTimeSourceMonotonic(t *testing.T) {
	var ts HostTimeSource

	t1 := ts.WallTimeNS()
	time.Sleep(time.Millisecond)
	t2 := ts.WallTimeNS()

	if t2 <= t1 {
		t.Errorf("WallTimeNS went backwards: %d then %d", t1, t2)
	}
}

func TestHostTimeSourceStandaloneZeroes(t *testing.T) {
	var ts HostTimeSource

	if ts.SimTime() != 0 {
		t.Errorf("SimTime() = %v, want 0 in stand-alone use", ts.SimTime())
	}
	if ts.MissionElapsed() != 0 {
		t.Errorf("MissionElapsed() = %v, want 0 in stand-alone use", ts.MissionElapsed())
	}
}

func TestManualTimeSourceFixedValues(t *testing.T) {
	ts := NewManualTimeSource(12.5, 3.0, 1_000_000)

	if ts.SimTime() != 12.5 || ts.MissionElapsed() != 3.0 || ts.WallTimeNS() != 1_000_000 {
		t.Errorf("unexpected initial values: sim=%v met=%v wall=%d",
			ts.SimTime(), ts.MissionElapsed(), ts.WallTimeNS())
	}
}

func TestManualTimeSourceAdvance(t *testing.T) {
	ts := NewManualTimeSource(0, 0, 0)
	ts.Advance(1.5, 2.0, 500)

	if ts.SimTime() != 1.5 || ts.MissionElapsed() != 2.0 || ts.WallTimeNS() != 500 {
		t.Errorf("Advance produced sim=%v met=%v wall=%d, want 1.5 2.0 500",
			ts.SimTime(), ts.MissionElapsed(), ts.WallTimeNS())
	}
}
