// Package robot provides abstractions for controlling serial-bus servo arms.
package robot

// JointName identifies a joint in the arm.
type JointName string

// Joint names for the 7-DOF arm (6 joints + gripper).
const (
	Base      JointName = "base"
	Shoulder  JointName = "shoulder"
	Elbow     JointName = "elbow"
	WristTilt JointName = "wrist_tilt"
	WristFlex JointName = "wrist_flex"
	WristRoll JointName = "wrist_roll"
	Gripper   JointName = "gripper"
)

// Servo bus IDs for well-known joints.
const (
	BaseID    = 1
	GripperID = 7
)

// AllJoints returns all joint names in bus order (matching servo IDs 1-7).
func AllJoints() []JointName {
	return []JointName{
		Base,
		Shoulder,
		Elbow,
		WristTilt,
		WristFlex,
		WristRoll,
		Gripper,
	}
}

// NumJoints is the number of servos on the bus.
const NumJoints = 7

// JointID returns the servo bus ID for a joint name, or 0 if unknown.
func JointID(name JointName) int {
	for i, n := range AllJoints() {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// JointByID returns the joint name for a servo bus ID.
func JointByID(id int) (JointName, bool) {
	joints := AllJoints()
	if id < 1 || id > len(joints) {
		return "", false
	}
	return joints[id-1], true
}
