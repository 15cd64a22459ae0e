package robot

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Motion defaults, matching the servo's comfortable operating range.
const (
	DefaultSpeed = 600  // steps/s
	DefaultAccel = 50   // acceleration register units
	HomeSpeed    = 1000 // capped below 150 deg/s

	// DefaultCommandGap spaces successive commands so the half-duplex
	// bus is never saturated. It serializes bus access, not motion.
	DefaultCommandGap = 50 * time.Millisecond

	// DefaultSettle is the fixed worst-case wait for a commanded motion
	// to physically complete before a position read-back is trusted.
	DefaultSettle = 2 * time.Second
)

// ArmConfig holds the mechanical parameters of one arm.
type ArmConfig struct {
	// BaseOffsetDeg is added to every commanded base angle before
	// clamping, compensating the mount rotation relative to the
	// external (camera) reference frame.
	BaseOffsetDeg float64
	Limits        LimitTable
	CommandGap    time.Duration
	Settle        time.Duration
}

// Arm coordinates motion across all joints of one servo arm. It owns
// no hardware itself; the Transport is injected and released by the
// caller.
type Arm struct {
	transport  Transport
	limits     LimitTable
	baseOffset float64
	gap        time.Duration
	settle     time.Duration
}

// NewArm creates an arm on an already-open transport.
func NewArm(t Transport, cfg ArmConfig) *Arm {
	if cfg.Limits == nil {
		cfg.Limits = DefaultLimits()
	}
	if cfg.CommandGap <= 0 {
		cfg.CommandGap = DefaultCommandGap
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	return &Arm{
		transport:  t,
		limits:     cfg.Limits,
		baseOffset: cfg.BaseOffsetDeg,
		gap:        cfg.CommandGap,
		settle:     cfg.Settle,
	}
}

// Connect opens the serial bus and creates an arm on it. The returned
// arm owns the transport; call Close to release the port.
func Connect(port string, baud int, cfg ArmConfig) (*Arm, error) {
	t, err := OpenBus(port, baud)
	if err != nil {
		return nil, err
	}
	return NewArm(t, cfg), nil
}

// Close releases the underlying transport.
func (a *Arm) Close() error {
	return a.transport.Close()
}

// Transport returns the injected transport, for direct feedback reads.
func (a *Arm) Transport() Transport {
	return a.transport
}

// Limits returns the arm's joint limit table.
func (a *Arm) Limits() LimitTable {
	return a.limits
}

// Target computes the raw step a command for the given joint and angle
// resolves to: base offset, then clamp, then conversion.
func (a *Arm) Target(name JointName, deg float64) int {
	if name == Base {
		deg += a.baseOffset
	}
	deg = a.limits.Clamp(name, deg)
	return DegreesToSteps(deg)
}

// MoveJoint commands a single joint to the given logical angle. It
// enables torque, issues one position write and returns without
// waiting for the motion to finish. Write failures are returned as an
// ActuationError; retrying is the caller's decision.
func (a *Arm) MoveJoint(ctx context.Context, name JointName, deg float64, speed, accel int) error {
	id := JointID(name)
	if id == 0 {
		return fmt.Errorf("unknown joint %q", name)
	}
	step := a.Target(name, deg)

	if err := a.transport.SetTorque(ctx, id, true); err != nil {
		return &ActuationError{Joint: name, Err: fmt.Errorf("enable torque: %w", err)}
	}
	if err := a.transport.WritePosition(ctx, id, step, speed, accel); err != nil {
		return &ActuationError{Joint: name, Err: err}
	}
	return nil
}

// MoveTo commands every joint named in pose, in ascending servo ID
// order, with a fixed gap between commands. Joints are fire-and-forget;
// the gap protects the shared bus, it does not sequence motion. Write
// failures are logged and the remaining joints are still commanded;
// the last failure is returned.
func (a *Arm) MoveTo(ctx context.Context, pose map[JointName]float64, speed, accel int) error {
	var lastErr error
	for i, name := range AllJoints() {
		deg, ok := pose[name]
		if !ok {
			continue
		}
		if i > 0 {
			a.pause(ctx)
		}
		if err := a.MoveJoint(ctx, name, deg, speed, accel); err != nil {
			log.Printf("%v", err)
			lastErr = err
		}
	}
	return lastErr
}

// MoveAll commands every joint to the same logical angle.
func (a *Arm) MoveAll(ctx context.Context, deg float64, speed, accel int) error {
	pose := make(map[JointName]float64, NumJoints)
	for _, name := range AllJoints() {
		pose[name] = deg
	}
	return a.MoveTo(ctx, pose, speed, accel)
}

// Home drives every joint to 0 degrees logical, waits out the settle
// time, then reads back final positions for verification. Read-back
// failures are reported per joint but never abort the pass.
func (a *Arm) Home(ctx context.Context) (map[JointName]float64, error) {
	if err := a.MoveTo(ctx, zeroPose(), HomeSpeed, DefaultAccel); err != nil {
		log.Printf("homing: %v", err)
	}
	a.AwaitSettled(ctx)
	return a.ReadPositions(ctx), nil
}

// AwaitSettled blocks for the fixed settle delay, or until ctx is
// cancelled. The policy is a fixed wait for now; callers depending on
// it keep working if it is later upgraded to poll the moving flag.
func (a *Arm) AwaitSettled(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(a.settle):
	}
}

// ReadPositions reads the current logical angle of every joint. Joints
// that fail to respond are logged and omitted from the result.
func (a *Arm) ReadPositions(ctx context.Context) map[JointName]float64 {
	positions := make(map[JointName]float64, NumJoints)
	for i, name := range AllJoints() {
		step, err := a.transport.ReadPosition(ctx, i+1)
		if err != nil {
			log.Printf("%v", &FeedbackError{Joint: name, Err: err})
			continue
		}
		positions[name] = StepsToDegrees(step)
	}
	return positions
}

// ReadSteps reads the current raw step position of every joint, in bus
// order. A failed read returns a FeedbackError for that joint and a nil
// slice; partial poses are never returned.
func (a *Arm) ReadSteps(ctx context.Context) ([]int, error) {
	steps := make([]int, NumJoints)
	for i, name := range AllJoints() {
		step, err := a.transport.ReadPosition(ctx, i+1)
		if err != nil {
			return nil, &FeedbackError{Joint: name, Err: err}
		}
		steps[i] = step
	}
	return steps, nil
}

// WriteSteps commands every joint to a raw step position, in bus
// order, back to back. Used for trajectory replay, where positions
// were physically reached during recording and need no clamping. Write
// failures are logged and the remaining joints are still commanded.
func (a *Arm) WriteSteps(ctx context.Context, steps []int, speed, accel int) error {
	var lastErr error
	for i, name := range AllJoints() {
		if i >= len(steps) {
			break
		}
		if err := a.transport.WritePosition(ctx, i+1, steps[i], speed, accel); err != nil {
			lastErr = &ActuationError{Joint: name, Err: err}
			log.Printf("%v", lastErr)
		}
	}
	return lastErr
}

// EnableAll enables torque on every joint, with the usual bus gap.
func (a *Arm) EnableAll(ctx context.Context) error {
	return a.setTorqueAll(ctx, true)
}

// DisableAll disables torque on every joint so the arm can be moved by
// hand.
func (a *Arm) DisableAll(ctx context.Context) error {
	return a.setTorqueAll(ctx, false)
}

func (a *Arm) setTorqueAll(ctx context.Context, enabled bool) error {
	var lastErr error
	for i, name := range AllJoints() {
		if i > 0 {
			a.pause(ctx)
		}
		if err := a.transport.SetTorque(ctx, i+1, enabled); err != nil {
			log.Printf("set torque %s: %v", name, err)
			lastErr = err
		}
	}
	return lastErr
}

func (a *Arm) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(a.gap):
	}
}

func zeroPose() map[JointName]float64 {
	pose := make(map[JointName]float64, NumJoints)
	for _, name := range AllJoints() {
		pose[name] = 0
	}
	return pose
}
