package trajectory

import (
	"context"
	"fmt"
	"time"

	"github.com/gwillem/armctl/pkg/robot"
)

// Pacing selects how the player waits between waypoints.
type Pacing int

const (
	// PaceSleep sleeps out each recorded inter-waypoint delta. Suits
	// sparse, deliberately paced recordings.
	PaceSleep Pacing = iota
	// PacePoll drives a tight loop comparing elapsed playback time
	// against each waypoint's recorded offset, so cancellation is
	// checked at millisecond granularity. Suits dense recordings.
	PacePoll
)

// pollTick is the PacePoll loop resolution.
const pollTick = time.Millisecond

// Player replays a recorded trajectory with torque enabled, deriving
// per-segment motion dynamics from the recorded inter-waypoint timing.
type Player struct {
	arm    *robot.Arm
	pacing Pacing

	// Confirm, when set, is asked between loop repeats; returning
	// false stops the loop. Nil means repeat without a checkpoint.
	Confirm func() bool
	// Progress, when set, is called once per issued waypoint.
	Progress func(i, n int)
}

// NewPlayer creates a player with the given pacing strategy.
func NewPlayer(arm *robot.Arm, pacing Pacing) *Player {
	return &Player{arm: arm, pacing: pacing}
}

// segmentParams maps the time gap to the next waypoint onto servo
// speed and acceleration. Long gaps get a brisker move, short gaps a
// slow one with heavy acceleration smoothing to avoid overshoot. The
// final waypoint always gets the gentlest arrival.
func segmentParams(delta time.Duration, final bool) (speed, accel int) {
	switch {
	case final:
		return 400, 150
	case delta > 200*time.Millisecond:
		return 1200, 80
	case delta > 100*time.Millisecond:
		return 800, 120
	default:
		return 600, 150
	}
}

// Play replays the trajectory once, or until cancelled when loop is
// true. Torque is enabled once on all joints before the first
// waypoint.
func (p *Player) Play(ctx context.Context, t *Trajectory, loop bool) error {
	if t.Len() == 0 {
		return fmt.Errorf("no trajectory to play")
	}
	if err := p.arm.EnableAll(ctx); err != nil {
		return fmt.Errorf("enable torque: %w", err)
	}

	for {
		if err := p.playOnce(ctx, t); err != nil {
			return err
		}
		if !loop {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if p.Confirm != nil && !p.Confirm() {
			return nil
		}
	}
}

func (p *Player) playOnce(ctx context.Context, t *Trajectory) error {
	if p.pacing == PacePoll {
		return p.playPolled(ctx, t)
	}

	n := t.Len()
	for i, wp := range t.Waypoints {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var delta time.Duration
		final := i == n-1
		if !final {
			delta = time.Duration(t.Waypoints[i+1].OffsetMs-wp.OffsetMs) * time.Millisecond
		}
		speed, accel := segmentParams(delta, final)
		// Best effort: remaining waypoints are still played.
		_ = p.arm.WriteSteps(ctx, wp.Positions, speed, accel)
		p.report(i, n)

		if final {
			// Pause at the end so the arm settles on the last pose.
			sleepCtx(ctx, time.Second)
		} else if delta > 0 {
			sleepCtx(ctx, delta)
		}
	}
	return nil
}

// playPolled issues each waypoint as soon as playback time passes its
// recorded offset, checking for cancellation every tick.
func (p *Player) playPolled(ctx context.Context, t *Trajectory) error {
	n := t.Len()
	start := time.Now()
	next := 0

	for next < n {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		elapsed := time.Since(start)
		for next < n && time.Duration(t.Waypoints[next].OffsetMs)*time.Millisecond <= elapsed {
			wp := t.Waypoints[next]
			var delta time.Duration
			final := next == n-1
			if !final {
				delta = time.Duration(t.Waypoints[next+1].OffsetMs-wp.OffsetMs) * time.Millisecond
			}
			speed, accel := segmentParams(delta, final)
			_ = p.arm.WriteSteps(ctx, wp.Positions, speed, accel)
			p.report(next, n)
			next++
		}
		sleepCtx(ctx, pollTick)
	}
	return nil
}

func (p *Player) report(i, n int) {
	if p.Progress != nil {
		p.Progress(i, n)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
