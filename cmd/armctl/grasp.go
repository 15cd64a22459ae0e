package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gwillem/armctl/pkg/grasp"
)

type GraspCommand struct {
	CommonOpts
	Attempts int `long:"attempts" default:"3" description:"Maximum grasp attempts"`
	Args     struct {
		Base     float64 `positional-arg-name:"base-deg"`
		Shoulder float64 `positional-arg-name:"shoulder-deg"`
		Elbow    float64 `positional-arg-name:"elbow-deg"`
	} `positional-args:"yes" required:"yes"`
}

func (c *GraspCommand) Execute(args []string) error {
	arm, _ := openArm(c.CommonOpts)
	defer arm.Close()

	fmt.Println(headerStyle.Render("Reach and grasp"))
	fmt.Printf("Target: base=%.1f° shoulder=%.1f° elbow=%.1f°  (max %d attempts)\n\n",
		c.Args.Base, c.Args.Shoulder, c.Args.Elbow, c.Attempts)

	ctx := context.Background()

	// Start each run from a known pose.
	fmt.Println("Homing...")
	if _, err := arm.Home(ctx); err != nil {
		return err
	}

	seq := grasp.NewSequencer(arm)
	seq.MaxAttempts = c.Attempts
	seq.Logf = func(format string, args ...any) {
		fmt.Println(dimStyle.Render("  " + fmt.Sprintf(format, args...)))
	}

	ok, err := seq.Approach(ctx, grasp.Target{
		BaseDeg:     c.Args.Base,
		ShoulderDeg: c.Args.Shoulder,
		ElbowDeg:    c.Args.Elbow,
	})
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println(warnStyle.Render(fmt.Sprintf("No grasp after %d attempts.", c.Attempts)))
		os.Exit(1)
	}
	fmt.Println(successStyle.Render("Object grasped."))
	return nil
}
