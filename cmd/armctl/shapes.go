package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gwillem/armctl/pkg/path"
	"github.com/gwillem/armctl/pkg/robot"
)

type ShapesCommand struct {
	CommonOpts
	Shape   string  `long:"shape" default:"circle" choice:"circle" choice:"polygon" description:"Shape to trace"`
	Radius  float64 `long:"radius" default:"500" description:"Circle radius in steps"`
	Points  int     `long:"points" default:"36" description:"Points per circle"`
	Loops   int     `long:"loops" default:"1" description:"Circle repetitions"`
	Side    float64 `long:"side" default:"300" description:"Polygon side length in steps"`
	Sides   int     `long:"sides" default:"6" description:"Polygon side count"`
	PerSide int     `long:"per-side" default:"10" description:"Interpolated points per polygon side"`
	Dwell   int     `long:"dwell" default:"150" description:"Per-point dwell in ms"`
	DryRun  bool    `long:"dry-run" description:"Print the generated points without moving"`
}

// The two driven joints: the base sweeps one axis of the plane, the
// shoulder the other.
var (
	shapeJointA = robot.Base
	shapeJointB = robot.Shoulder
)

func (c *ShapesCommand) Execute(args []string) error {
	var points []path.Point
	switch c.Shape {
	case "polygon":
		points = path.Polygon(robot.CenterStep, robot.CenterStep, c.Side, c.Sides, c.PerSide)
	default:
		points = path.Circle(robot.CenterStep, robot.CenterStep, c.Radius, c.Points, c.Loops)
	}
	if len(points) == 0 {
		return fmt.Errorf("no points generated; check parameters")
	}
	fmt.Printf("Generated %d %s points\n", len(points), c.Shape)

	if c.DryRun {
		for i, pt := range points {
			fmt.Printf("%4d: %s=%d %s=%d\n", i, shapeJointA, pt.A, shapeJointB, pt.B)
		}
		return nil
	}

	arm, _ := openArm(c.CommonOpts)
	defer arm.Close()

	ctx := context.Background()
	if err := arm.EnableAll(ctx); err != nil {
		fmt.Println(warnStyle.Render("Torque enable incomplete; continuing."))
	}

	limits := arm.Limits()
	dwell := time.Duration(c.Dwell) * time.Millisecond
	for i, pt := range points {
		stepA := clampStep(limits, shapeJointA, pt.A)
		stepB := clampStep(limits, shapeJointB, pt.B)
		if err := arm.Transport().WritePosition(ctx, robot.JointID(shapeJointA), stepA, 800, 100); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("point %d: %v", i, err)))
		}
		if err := arm.Transport().WritePosition(ctx, robot.JointID(shapeJointB), stepB, 800, 100); err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("point %d: %v", i, err)))
		}
		fmt.Printf("\rPoint %d/%d", i+1, len(points))
		time.Sleep(dwell)
	}
	fmt.Println()
	fmt.Println(successStyle.Render("Shape complete."))
	return nil
}

// clampStep bounds a raw step target to the joint's angular limits.
func clampStep(limits robot.LimitTable, name robot.JointName, step int) int {
	deg := robot.StepsToDegrees(step)
	return robot.DegreesToSteps(limits.Clamp(name, deg))
}
