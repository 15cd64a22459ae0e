package robot

import "log"

// JointLimits is an asymmetric per-joint angle bound in degrees.
type JointLimits struct {
	MinDeg float64 `json:"min_deg"`
	MaxDeg float64 `json:"max_deg"`
}

// LimitTable holds the mechanical limits for every joint, keyed by name.
type LimitTable map[JointName]JointLimits

// DefaultLimits returns the limit table for the stock 7-DOF arm.
func DefaultLimits() LimitTable {
	return LimitTable{
		Base:      {MinDeg: -165, MaxDeg: 165},
		Shoulder:  {MinDeg: -125, MaxDeg: 125},
		Elbow:     {MinDeg: -140, MaxDeg: 140},
		WristTilt: {MinDeg: -140, MaxDeg: 140},
		WristFlex: {MinDeg: -140, MaxDeg: 140},
		WristRoll: {MinDeg: -175, MaxDeg: 175},
		Gripper:   {MinDeg: -180, MaxDeg: 180},
	}
}

// Clamp returns deg bounded to the joint's limits. A clamped command
// means the caller asked for an unreachable pose, so the correction is
// logged, but clamping itself never fails.
func (t LimitTable) Clamp(name JointName, deg float64) float64 {
	lim, ok := t[name]
	if !ok {
		return deg
	}
	if deg < lim.MinDeg {
		log.Printf("joint %s clamped: %.1f° -> %.1f°", name, deg, lim.MinDeg)
		return lim.MinDeg
	}
	if deg > lim.MaxDeg {
		log.Printf("joint %s clamped: %.1f° -> %.1f°", name, deg, lim.MaxDeg)
		return lim.MaxDeg
	}
	return deg
}
