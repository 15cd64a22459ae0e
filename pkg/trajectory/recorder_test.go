package trajectory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gwillem/armctl/pkg/robot"
)

func testArm(sim *robot.SimTransport) *robot.Arm {
	return robot.NewArm(sim, robot.ArmConfig{
		CommandGap: time.Millisecond,
		Settle:     time.Millisecond,
	})
}

func TestManualRecorderNominalTimestamps(t *testing.T) {
	sim := robot.NewSimTransport()
	arm := testArm(sim)
	rec := NewManualRecorder(arm, 500*time.Millisecond)
	ctx := context.Background()

	if err := rec.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	// Torque must be off for hand guiding.
	for id := 1; id <= robot.NumJoints; id++ {
		if sim.Torque[id] {
			t.Fatalf("servo %d torque still enabled during recording", id)
		}
	}

	for i := 0; i < 3; i++ {
		sim.Positions[1] = 2048 + i*10
		if _, err := rec.Sample(ctx); err != nil {
			t.Fatal(err)
		}
	}

	traj := rec.End(ctx)
	if traj.Len() != 3 {
		t.Fatalf("captured %d waypoints, want 3", traj.Len())
	}

	// Timestamps are a nominal counter, not wall-clock time.
	for i, wp := range traj.Waypoints {
		want := int64(i) * 500
		if wp.OffsetMs != want {
			t.Errorf("waypoint %d offset = %dms, want %dms", i, wp.OffsetMs, want)
		}
	}
	if traj.Waypoints[2].Positions[0] != 2068 {
		t.Errorf("waypoint 2 base position = %d, want 2068", traj.Waypoints[2].Positions[0])
	}

	// Torque restored when the session ends.
	for id := 1; id <= robot.NumJoints; id++ {
		if !sim.Torque[id] {
			t.Errorf("servo %d torque not restored after recording", id)
		}
	}
}

func TestManualRecorderEmptySession(t *testing.T) {
	sim := robot.NewSimTransport()
	arm := testArm(sim)
	rec := NewManualRecorder(arm, time.Second)
	ctx := context.Background()

	if err := rec.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if traj := rec.End(ctx); traj != nil {
		t.Errorf("empty session should yield nil, got %d waypoints", traj.Len())
	}
	// Even an empty session restores torque.
	for id := 1; id <= robot.NumJoints; id++ {
		if !sim.Torque[id] {
			t.Errorf("servo %d torque not restored", id)
		}
	}
}

func TestManualRecorderFailedSample(t *testing.T) {
	sim := robot.NewSimTransport()
	sim.FailRead = map[int]bool{4: true}
	arm := testArm(sim)
	rec := NewManualRecorder(arm, time.Second)
	ctx := context.Background()

	if err := rec.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Sample(ctx); err == nil {
		t.Fatal("expected sample failure")
	}
	// The failed sample appended nothing; the session stays usable.
	if rec.Count() != 0 {
		t.Errorf("count = %d, want 0", rec.Count())
	}
	sim.FailRead = nil
	if _, err := rec.Sample(ctx); err != nil {
		t.Fatal(err)
	}
	if traj := rec.End(ctx); traj.Len() != 1 {
		t.Errorf("captured %d waypoints, want 1", traj.Len())
	}
}

func TestContinuousRecorderWallClock(t *testing.T) {
	sim := robot.NewSimTransport()
	arm := testArm(sim)
	rec := NewContinuousRecorder(arm, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	traj, err := rec.Record(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if traj.Len() < 2 {
		t.Fatalf("captured %d waypoints, want at least 2", traj.Len())
	}

	// The clock starts at the first sample.
	if traj.Waypoints[0].OffsetMs != 0 {
		t.Errorf("first waypoint offset = %dms, want 0", traj.Waypoints[0].OffsetMs)
	}

	// Measured timestamps are non-decreasing and strictly wall-clock.
	var prev int64 = -1
	for i, wp := range traj.Waypoints {
		if wp.OffsetMs < prev {
			t.Fatalf("waypoint %d offset %dms precedes %dms", i, wp.OffsetMs, prev)
		}
		prev = wp.OffsetMs
		if len(wp.Positions) != robot.NumJoints {
			t.Fatalf("waypoint %d has %d positions", i, len(wp.Positions))
		}
	}

	// Torque restored after the session.
	for id := 1; id <= robot.NumJoints; id++ {
		if !sim.Torque[id] {
			t.Errorf("servo %d torque not restored", id)
		}
	}
}

// The first sample is taken on entry, not one interval in: a session
// shorter than the tick still captures the starting pose at offset 0.
func TestContinuousRecorderSamplesImmediately(t *testing.T) {
	sim := robot.NewSimTransport()
	arm := testArm(sim)
	rec := NewContinuousRecorder(arm, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	traj, err := rec.Record(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if traj.Len() != 1 {
		t.Fatalf("captured %d waypoints, want 1 (the immediate sample)", traj.Len())
	}
	if traj.Waypoints[0].OffsetMs != 0 {
		t.Errorf("first waypoint offset = %dms, want 0", traj.Waypoints[0].OffsetMs)
	}
}

// flakyTransport fails the first few position reads, then recovers.
type flakyTransport struct {
	*robot.SimTransport
	failures int
}

func (f *flakyTransport) ReadPosition(ctx context.Context, id int) (int, error) {
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("servo busy")
	}
	return f.SimTransport.ReadPosition(ctx, id)
}

// A failing first tick must not skew the clock: offsets are rebased to
// the first waypoint actually captured.
func TestContinuousRecorderRebasesAfterFailedStart(t *testing.T) {
	flaky := &flakyTransport{SimTransport: robot.NewSimTransport(), failures: 1}
	arm := robot.NewArm(flaky, robot.ArmConfig{
		CommandGap: time.Millisecond,
		Settle:     time.Millisecond,
	})
	rec := NewContinuousRecorder(arm, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	traj, err := rec.Record(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if traj.Len() == 0 {
		t.Fatal("expected waypoints once reads recover")
	}
	if traj.Waypoints[0].OffsetMs != 0 {
		t.Errorf("first captured waypoint offset = %dms, want 0", traj.Waypoints[0].OffsetMs)
	}
}

func TestContinuousRecorderAllTicksFailing(t *testing.T) {
	sim := robot.NewSimTransport()
	sim.FailRead = map[int]bool{6: true}
	arm := testArm(sim)
	rec := NewContinuousRecorder(arm, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	traj, err := rec.Record(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if traj != nil {
		t.Errorf("session with no complete samples should yield nil, got %d", traj.Len())
	}
}
