package trajectory

import (
	"context"
	"testing"
	"time"

	"github.com/gwillem/armctl/pkg/robot"
)

func TestSegmentParams(t *testing.T) {
	tests := []struct {
		delta     time.Duration
		final     bool
		wantSpeed int
		wantAccel int
	}{
		{300 * time.Millisecond, false, 1200, 80}, // long gap: brisk
		{150 * time.Millisecond, false, 800, 120},
		{50 * time.Millisecond, false, 600, 150}, // short gap: smooth stop
		{0, true, 400, 150},                      // gentle arrival
		{time.Hour, true, 400, 150},              // final wins regardless of gap
	}

	for _, tt := range tests {
		speed, accel := segmentParams(tt.delta, tt.final)
		if speed != tt.wantSpeed || accel != tt.wantAccel {
			t.Errorf("segmentParams(%v, %v) = (%d, %d), want (%d, %d)",
				tt.delta, tt.final, speed, accel, tt.wantSpeed, tt.wantAccel)
		}
	}
}

func playbackTrajectory() *Trajectory {
	return &Trajectory{Waypoints: []Waypoint{
		{Positions: []int{2048, 2048, 2048, 2048, 2048, 2048, 2048}, OffsetMs: 0},
		{Positions: []int{2100, 2000, 2100, 2048, 2048, 2048, 2048}, OffsetMs: 10},
		{Positions: []int{2150, 1950, 2150, 2048, 2048, 2048, 2048}, OffsetMs: 20},
	}}
}

func TestPlayerIssuesAllWaypoints(t *testing.T) {
	for _, pacing := range []Pacing{PaceSleep, PacePoll} {
		sim := robot.NewSimTransport()
		arm := testArm(sim)
		player := NewPlayer(arm, pacing)

		var progress []int
		player.Progress = func(i, n int) { progress = append(progress, i) }

		traj := playbackTrajectory()
		if err := player.Play(context.Background(), traj, false); err != nil {
			t.Fatalf("pacing %v: %v", pacing, err)
		}

		if want := traj.Len() * robot.NumJoints; len(sim.Writes) != want {
			t.Errorf("pacing %v: %d writes, want %d", pacing, len(sim.Writes), want)
		}
		if len(progress) != traj.Len() {
			t.Errorf("pacing %v: %d progress callbacks, want %d", pacing, len(progress), traj.Len())
		}

		// Torque enabled once, before playback.
		for id := 1; id <= robot.NumJoints; id++ {
			if !sim.Torque[id] {
				t.Errorf("pacing %v: servo %d torque not enabled", pacing, id)
			}
		}

		// The last waypoint always gets the gentle-arrival parameters.
		last := sim.Writes[len(sim.Writes)-1]
		if last.Speed != 400 || last.Accel != 150 {
			t.Errorf("pacing %v: final write (%d, %d), want (400, 150)", pacing, last.Speed, last.Accel)
		}

		// Earlier segments use the short-gap smoothing profile.
		first := sim.Writes[0]
		if first.Speed != 600 || first.Accel != 150 {
			t.Errorf("pacing %v: first write (%d, %d), want (600, 150)", pacing, first.Speed, first.Accel)
		}

		// Final pose reached.
		if sim.Positions[1] != 2150 {
			t.Errorf("pacing %v: base ended at %d, want 2150", pacing, sim.Positions[1])
		}
	}
}

func TestPlayerEmptyTrajectory(t *testing.T) {
	sim := robot.NewSimTransport()
	player := NewPlayer(testArm(sim), PaceSleep)
	if err := player.Play(context.Background(), &Trajectory{}, false); err == nil {
		t.Fatal("expected an error for an empty trajectory")
	}
	if len(sim.Writes) != 0 {
		t.Error("no writes should be issued")
	}
}

func TestPlayerLoopConfirm(t *testing.T) {
	sim := robot.NewSimTransport()
	player := NewPlayer(testArm(sim), PacePoll)

	runs := 0
	player.Confirm = func() bool {
		runs++
		return runs < 2 // play twice, then stop at the checkpoint
	}

	traj := playbackTrajectory()
	if err := player.Play(context.Background(), traj, true); err != nil {
		t.Fatal(err)
	}
	if want := 2 * traj.Len() * robot.NumJoints; len(sim.Writes) != want {
		t.Errorf("%d writes, want %d (two full passes)", len(sim.Writes), want)
	}
}

func TestPlayerCancellation(t *testing.T) {
	sim := robot.NewSimTransport()
	player := NewPlayer(testArm(sim), PaceSleep)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	traj := playbackTrajectory()
	if err := player.Play(ctx, traj, true); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
