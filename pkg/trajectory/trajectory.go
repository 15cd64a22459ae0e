// Package trajectory records, replays and persists full-arm waypoint
// sequences sampled during manual teaching.
package trajectory

import (
	"time"

	"github.com/gwillem/armctl/pkg/robot"
)

// Waypoint is one full-arm pose in raw servo steps plus the elapsed
// time since the first waypoint of its trajectory. Waypoints are
// immutable once appended and ordered by non-decreasing offset.
type Waypoint struct {
	Positions []int // raw steps, bus order (servo IDs 1..NumJoints)
	OffsetMs  int64
}

// Trajectory is an ordered waypoint sequence representing one recorded
// motion. It is never mutated after recording ends; re-record to
// replace it.
type Trajectory struct {
	Waypoints []Waypoint
}

// Len returns the number of waypoints.
func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Waypoints)
}

// Duration returns the recorded span from first to last waypoint.
func (t *Trajectory) Duration() time.Duration {
	if t.Len() == 0 {
		return 0
	}
	return time.Duration(t.Waypoints[len(t.Waypoints)-1].OffsetMs) * time.Millisecond
}

// SampleRate returns the mean sample frequency in Hz.
func (t *Trajectory) SampleRate() float64 {
	d := t.Duration()
	if d <= 0 {
		return 0
	}
	return float64(t.Len()) / d.Seconds()
}

func (t *Trajectory) append(steps []int, offsetMs int64) {
	positions := make([]int, len(steps))
	copy(positions, steps)
	t.Waypoints = append(t.Waypoints, Waypoint{Positions: positions, OffsetMs: offsetMs})
}

// jointCount is the number of per-waypoint position values.
const jointCount = robot.NumJoints
