package trajectory

import (
	"context"
	"fmt"
	"time"

	"github.com/gwillem/armctl/pkg/robot"
)

// DefaultSampleInterval is the continuous recorder's tick.
const DefaultSampleInterval = 100 * time.Millisecond

// ManualRecorder captures one waypoint per operator confirmation while
// the arm is torque-free for hand guiding. Waypoint timestamps are a
// running counter of the nominal interval, not measured wall-clock
// time: the recording sets deliberate pacing, replay reproduces it.
type ManualRecorder struct {
	arm      *robot.Arm
	interval time.Duration
	traj     *Trajectory
	started  bool
}

// NewManualRecorder creates a manual recorder with the given nominal
// per-waypoint interval.
func NewManualRecorder(arm *robot.Arm, interval time.Duration) *ManualRecorder {
	if interval <= 0 {
		interval = time.Second
	}
	return &ManualRecorder{arm: arm, interval: interval}
}

// Begin disables torque on all joints so the arm can be moved by hand.
func (r *ManualRecorder) Begin(ctx context.Context) error {
	if r.started {
		return fmt.Errorf("recording already started")
	}
	if err := r.arm.DisableAll(ctx); err != nil {
		return fmt.Errorf("disable torque: %w", err)
	}
	r.traj = &Trajectory{}
	r.started = true
	return nil
}

// Sample reads all joints and appends exactly one waypoint. A failed
// read appends nothing and reports the error; the session continues.
func (r *ManualRecorder) Sample(ctx context.Context) (Waypoint, error) {
	if !r.started {
		return Waypoint{}, fmt.Errorf("recording not started")
	}
	steps, err := r.arm.ReadSteps(ctx)
	if err != nil {
		return Waypoint{}, err
	}
	offset := int64(r.traj.Len()) * r.interval.Milliseconds()
	r.traj.append(steps, offset)
	return r.traj.Waypoints[r.traj.Len()-1], nil
}

// Count returns the number of waypoints captured so far.
func (r *ManualRecorder) Count() int {
	return r.traj.Len()
}

// End restores torque on all joints unconditionally, even after an
// aborted session, and returns the captured trajectory. An empty
// session returns nil: a legal no-op, not an error.
func (r *ManualRecorder) End(ctx context.Context) *Trajectory {
	if !r.started {
		return nil
	}
	r.started = false
	_ = r.arm.EnableAll(ctx)
	if r.traj.Len() == 0 {
		return nil
	}
	return r.traj
}

// Sample is one continuous-recorder status update, for live display.
type Sample struct {
	Index   int
	Steps   []int
	Elapsed time.Duration
	Err     error
}

// ContinuousRecorder samples all joints at a fixed wall-clock interval
// until the context is cancelled. Timestamps are measured elapsed time
// since the first sample. A joint failing to respond aborts only that
// tick; the partial waypoint is discarded and sampling continues.
type ContinuousRecorder struct {
	arm      *robot.Arm
	interval time.Duration
	samples  chan Sample
}

// NewContinuousRecorder creates a fixed-rate recorder.
func NewContinuousRecorder(arm *robot.Arm, interval time.Duration) *ContinuousRecorder {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &ContinuousRecorder{
		arm:      arm,
		interval: interval,
		samples:  make(chan Sample, 1),
	}
}

// Samples returns a channel receiving one update per tick, for a live
// view. Updates are dropped, not buffered, when the consumer lags.
func (r *ContinuousRecorder) Samples() <-chan Sample {
	return r.samples
}

// Record runs the sampling loop until ctx is cancelled, then restores
// torque on all joints and returns the trajectory. Fewer than one
// captured sample yields nil.
func (r *ContinuousRecorder) Record(ctx context.Context) (*Trajectory, error) {
	if err := r.arm.DisableAll(ctx); err != nil {
		return nil, fmt.Errorf("disable torque: %w", err)
	}
	defer r.arm.EnableAll(context.Background())

	traj := &Trajectory{}

	// The clock starts at the first captured sample, so the first
	// waypoint carries offset 0 and later offsets measure elapsed
	// time since it.
	var start time.Time
	capture := func() {
		var elapsed time.Duration
		if !start.IsZero() {
			elapsed = time.Since(start)
		}
		steps, err := r.arm.ReadSteps(ctx)
		if err != nil {
			// Tick discarded, session continues.
			r.publish(Sample{Index: traj.Len(), Elapsed: elapsed, Err: err})
			return
		}
		if start.IsZero() {
			start = time.Now()
		}
		traj.append(steps, elapsed.Milliseconds())
		r.publish(Sample{Index: traj.Len(), Steps: steps, Elapsed: elapsed})
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Sample immediately; the first tick only fires one interval in.
	capture()

	for {
		select {
		case <-ctx.Done():
			if traj.Len() == 0 {
				return nil, nil
			}
			return traj, nil
		case <-ticker.C:
			capture()
		}
	}
}

func (r *ContinuousRecorder) publish(s Sample) {
	select {
	case r.samples <- s:
	default:
		select {
		case <-r.samples:
		default:
		}
		r.samples <- s
	}
}
