package robot

import "fmt"

// DefaultPresets returns the built-in named poses.
func DefaultPresets() map[string]map[JointName]float64 {
	return map[string]map[JointName]float64{
		"home": {
			Base: 0, Shoulder: 0, Elbow: 0,
			WristTilt: 0, WristFlex: 0, WristRoll: 0, Gripper: 0,
		},
		"rest": {
			Base: 0, Shoulder: -90, Elbow: 120,
			WristTilt: 60, WristFlex: 0, WristRoll: 0, Gripper: 0,
		},
		"ready": {
			Base: 0, Shoulder: 35, Elbow: 35,
			WristTilt: 0, WristFlex: 0, WristRoll: 0, Gripper: 0,
		},
	}
}

// GridPose is one stop of the workspace scan sweep.
type GridPose struct {
	Label string
	Pose  map[JointName]float64
}

// ScanGrid returns the workspace sweep used for external-frame
// calibration: base rotations from -60 to 60 degrees crossed with
// close, medium and far reach configurations, starting from home.
func ScanGrid() []GridPose {
	grid := []GridPose{{Label: "home", Pose: DefaultPresets()["home"]}}

	baseAngles := []float64{-60, -30, 0, 30, 60}
	reaches := []struct {
		label    string
		shoulder float64
		elbow    float64
	}{
		{"close", 20, 20},
		{"medium", 35, 35},
		{"far", 50, 50},
	}

	for _, b := range baseAngles {
		for _, r := range reaches {
			grid = append(grid, GridPose{
				Label: fmt.Sprintf("base=%.0f reach=%s", b, r.label),
				Pose: map[JointName]float64{
					Base:     b,
					Shoulder: r.shoulder,
					Elbow:    r.elbow,
				},
			})
		}
	}
	return grid
}
