package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwillem/armctl/pkg/robot"
)

type MoveCommand struct {
	CommonOpts
	Joint  string  `long:"joint" short:"j" description:"Joint name (base, shoulder, elbow, wrist_tilt, wrist_flex, wrist_roll, gripper)"`
	Deg    float64 `long:"deg" short:"d" description:"Target angle in degrees"`
	All    bool    `long:"all" description:"Move every joint to --deg"`
	Preset string  `long:"preset" description:"Recall a named preset pose"`
	Grid   bool    `long:"grid" description:"Sweep the workspace scan grid"`
	Speed  int     `long:"speed" default:"600" description:"Speed in steps/s"`
	Accel  int     `long:"accel" default:"50" description:"Acceleration units"`
}

func (c *MoveCommand) Execute(args []string) error {
	arm, cfg := openArm(c.CommonOpts)
	defer arm.Close()

	ctx := context.Background()

	switch {
	case c.Grid:
		return c.runGrid(ctx, arm)

	case c.Preset != "":
		pose, ok := cfg.Presets[c.Preset]
		if !ok {
			names := make([]string, 0, len(cfg.Presets))
			for name := range cfg.Presets {
				names = append(names, name)
			}
			return fmt.Errorf("unknown preset %q (have: %s)", c.Preset, strings.Join(names, ", "))
		}
		fmt.Printf("Recalling preset %q\n", c.Preset)
		if err := arm.MoveTo(ctx, pose, c.Speed, c.Accel); err != nil {
			fmt.Println(warnStyle.Render("Some joints failed; see log."))
		}

	case c.All:
		fmt.Printf("Moving all joints to %.1f°\n", c.Deg)
		if err := arm.MoveAll(ctx, c.Deg, c.Speed, c.Accel); err != nil {
			fmt.Println(warnStyle.Render("Some joints failed; see log."))
		}

	case c.Joint != "":
		name := robot.JointName(c.Joint)
		if robot.JointID(name) == 0 {
			return fmt.Errorf("unknown joint %q", c.Joint)
		}
		fmt.Printf("Moving %s to %.1f°\n", name, c.Deg)
		if err := arm.MoveJoint(ctx, name, c.Deg, c.Speed, c.Accel); err != nil {
			return err
		}

	default:
		return fmt.Errorf("nothing to do: pass --joint, --all, --preset or --grid")
	}

	arm.AwaitSettled(ctx)
	report(arm.ReadPositions(ctx))
	return nil
}

func (c *MoveCommand) runGrid(ctx context.Context, arm *robot.Arm) error {
	grid := robot.ScanGrid()
	fmt.Printf("Sweeping %d grid poses\n\n", len(grid))

	for i, gp := range grid {
		fmt.Printf("[%d/%d] %s\n", i+1, len(grid), gp.Label)
		if err := arm.MoveTo(ctx, gp.Pose, 400, robot.DefaultAccel); err != nil {
			fmt.Println(warnStyle.Render("  some joints failed; continuing"))
		}
		arm.AwaitSettled(ctx)
	}

	fmt.Println()
	fmt.Println("Returning home...")
	if _, err := arm.Home(ctx); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Grid sweep complete."))
	return nil
}

func report(positions map[robot.JointName]float64) {
	var sb strings.Builder
	sb.WriteString("Positions: ")
	for _, name := range robot.AllJoints() {
		if deg, ok := positions[name]; ok {
			fmt.Fprintf(&sb, "%s=%.1f° ", name, deg)
		}
	}
	fmt.Println(dimStyle.Render(sb.String()))
}
