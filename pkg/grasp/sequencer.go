// Package grasp implements a staged approach and grasp-verification
// sequence for picking up a detected object.
package grasp

import (
	"context"
	"fmt"

	"github.com/gwillem/armctl/pkg/robot"
)

// State is one stage of the approach sequence.
type State string

const (
	StateAlignBase     State = "ALIGN_BASE"
	StatePartialExtend State = "PARTIAL_EXTEND"
	StateFullExtend    State = "FULL_EXTEND"
	StateFineAdjust    State = "FINE_ADJUST"
	StateGrasp         State = "GRASP"
	StateVerify        State = "VERIFY"
	StateSuccess       State = "SUCCESS"
	StateRetry         State = "RETRY"
	StateFailed        State = "FAILED"
)

// Target is the commanded approach pose: base rotation plus the two
// extension joints, in logical degrees.
type Target struct {
	BaseDeg     float64
	ShoulderDeg float64
	ElbowDeg    float64
}

// Gripper close command and the verification threshold. The gripper is
// driven toward closeDeg; if it stalls before reaching verifyDeg,
// something obstructed full closure, which is read as "object held".
// This is a heuristic with no force-sensing fallback.
const (
	closeDeg  = -30.0
	verifyDeg = -25.0

	partialFraction = 0.7
	fineStepDeg     = 3.0
	liftDeg         = 10.0
)

// DefaultMaxAttempts bounds the retry loop.
const DefaultMaxAttempts = 3

// attempt is the ephemeral record of one approach run.
type attempt struct {
	number    int
	target    Target
	succeeded bool
}

// Sequencer runs the approach state machine against one arm.
type Sequencer struct {
	arm         *robot.Arm
	MaxAttempts int

	// Logf, when set, receives one status line per stage.
	Logf func(format string, args ...any)
}

// NewSequencer creates a sequencer with the default attempt bound.
func NewSequencer(arm *robot.Arm) *Sequencer {
	return &Sequencer{arm: arm, MaxAttempts: DefaultMaxAttempts}
}

func (s *Sequencer) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Approach runs up to MaxAttempts staged approaches toward the target
// and returns whether an object was grasped. Exhausting all attempts
// is a defined outcome, not an error; the arm is left re-homed either
// way. The returned error reports only cancellation or a transport
// failure during verification.
func (s *Sequencer) Approach(ctx context.Context, target Target) (bool, error) {
	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for n := 1; n <= maxAttempts; n++ {
		at := attempt{number: n, target: target}
		ok, err := s.runAttempt(ctx, &at)
		if err != nil {
			return false, err
		}
		if ok {
			s.logf("object grasped on attempt %d", n)
			// Lift to a safe carry pose with the object.
			s.moveAndSettle(ctx, robot.Shoulder, 0, 300)
			s.moveAndSettle(ctx, robot.Elbow, 0, 300)
			return true, nil
		}
		s.logf("attempt %d failed", n)
		s.enter(StateRetry)
		s.rehome(ctx)
	}

	s.enter(StateFailed)
	s.logf("no grasp after %d attempts", maxAttempts)
	return false, nil
}

func (s *Sequencer) runAttempt(ctx context.Context, at *attempt) (bool, error) {
	state := StateAlignBase
	for {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		switch state {
		case StateAlignBase:
			s.enter(state)
			s.moveAndSettle(ctx, robot.Base, at.target.BaseDeg, 400)
			state = StatePartialExtend

		case StatePartialExtend:
			s.enter(state)
			s.moveAndSettle(ctx, robot.Shoulder, at.target.ShoulderDeg*partialFraction, 400)
			s.moveAndSettle(ctx, robot.Elbow, at.target.ElbowDeg*partialFraction, 400)
			state = StateFullExtend

		case StateFullExtend:
			s.enter(state)
			s.moveAndSettle(ctx, robot.Shoulder, at.target.ShoulderDeg, 300)
			s.moveAndSettle(ctx, robot.Elbow, at.target.ElbowDeg, 300)
			if at.number > 1 {
				state = StateFineAdjust
			} else {
				state = StateGrasp
			}

		case StateFineAdjust:
			s.enter(state)
			offset := float64(at.number-1) * fineStepDeg
			s.moveAndSettle(ctx, robot.Shoulder, at.target.ShoulderDeg+offset, 200)
			s.moveAndSettle(ctx, robot.Elbow, at.target.ElbowDeg+offset, 200)
			state = StateGrasp

		case StateGrasp:
			s.enter(state)
			s.moveAndSettle(ctx, robot.Gripper, closeDeg, 300)
			// Lift slightly so a missed grasp slips free before the check.
			s.moveAndSettle(ctx, robot.Shoulder, at.target.ShoulderDeg-liftDeg, 200)
			state = StateVerify

		case StateVerify:
			s.enter(state)
			held, err := s.verify(ctx)
			if err != nil {
				return false, err
			}
			if held {
				at.succeeded = true
				s.enter(StateSuccess)
				return true, nil
			}
			// Release before the retry re-home.
			s.moveAndSettle(ctx, robot.Gripper, 0, 300)
			return false, nil

		default:
			return false, fmt.Errorf("unexpected state %s", state)
		}
	}
}

// verify reads the gripper's final angle. Stopping short of the
// commanded closed angle means the jaws hit something: object held.
func (s *Sequencer) verify(ctx context.Context) (bool, error) {
	step, err := s.arm.Transport().ReadPosition(ctx, robot.GripperID)
	if err != nil {
		return false, &robot.FeedbackError{Joint: robot.Gripper, Err: err}
	}
	angle := robot.StepsToDegrees(step)
	s.logf("gripper settled at %.1f°", angle)
	return angle > verifyDeg, nil
}

func (s *Sequencer) enter(state State) {
	s.logf("state %s", state)
}

func (s *Sequencer) moveAndSettle(ctx context.Context, joint robot.JointName, deg float64, speed int) {
	if err := s.arm.MoveJoint(ctx, joint, deg, speed, robot.DefaultAccel); err != nil {
		// Best effort: the verification stage decides the outcome.
		s.logf("%v", err)
	}
	s.arm.AwaitSettled(ctx)
}

func (s *Sequencer) rehome(ctx context.Context) {
	if _, err := s.arm.Home(ctx); err != nil {
		s.logf("re-home: %v", err)
	}
}
