// Package armctl provides motion and trajectory control for 6/7-DOF robot
// arms built from daisy-chained Feetech serial bus servos.
//
// The module covers angle/step conversion, per-joint limit enforcement,
// coordinated multi-joint moves, teach-mode trajectory recording and
// replay, geometric path generation, and a staged grasp-verification
// sequence. The servo wire protocol itself is handled by the
// hipsterbrown/feetech-servo library.
//
// # Installation
//
//	go install github.com/gwillem/armctl/cmd/armctl@latest
//
// # Usage
//
// Scan for a connected arm and drive it home:
//
//	armctl scan
//	armctl home
//
// Record a trajectory by hand and replay it:
//
//	armctl teach
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/armctl: CLI with scan, home, move, teach, play, shapes and grasp commands
//   - cmd/arm-info: per-servo feedback diagnostics
//   - pkg/robot: joint model, conversion, limits, transport and arm control
//   - pkg/trajectory: waypoint recording, playback and persistence
//   - pkg/path: circle and polygon path generators
//   - pkg/grasp: approach and grasp-verification sequencer
package armctl
