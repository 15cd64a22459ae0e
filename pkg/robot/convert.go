package robot

import "math"

// Servo position encoding: 12-bit steps, 0-4095, with 2048 at the
// mechanical center (0 degrees). One full turn spans 4096 steps.
const (
	StepsPerTurn = 4096
	CenterStep   = 2048
)

// DegreesToSteps converts a joint angle in degrees (0 = center) to the
// servo's raw step encoding. Out-of-range angles wrap modulo one turn;
// the result is always in [0, 4095].
func DegreesToSteps(deg float64) int {
	steps := float64(CenterStep) + deg/360.0*float64(StepsPerTurn)
	steps = math.Mod(steps, StepsPerTurn)
	if steps < 0 {
		steps += StepsPerTurn
	}
	step := int(math.Floor(steps + 0.5))
	// Rounding 4095.5+ lands back on the wrap point.
	if step >= StepsPerTurn {
		step -= StepsPerTurn
	}
	return step
}

// StepsToDegrees converts a raw step value to a joint angle in degrees,
// normalized to (-180, 180].
func StepsToDegrees(step int) float64 {
	deg := float64(step-CenterStep) / StepsPerTurn * 360.0
	if deg > 180 {
		deg -= 360
	}
	if deg <= -180 {
		deg += 360
	}
	return deg
}
