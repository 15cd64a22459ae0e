package main

import (
	"context"
	"fmt"

	"github.com/gwillem/armctl/pkg/robot"
)

type HomeCommand struct {
	CommonOpts
}

func (c *HomeCommand) Execute(args []string) error {
	arm, _ := openArm(c.CommonOpts)
	defer arm.Close()

	fmt.Println(headerStyle.Render("Homing all joints"))

	ctx := context.Background()
	positions, err := arm.Home(ctx)
	if err != nil {
		return fmt.Errorf("home: %w", err)
	}

	for _, name := range robot.AllJoints() {
		deg, ok := positions[name]
		if !ok {
			fmt.Printf("  %-12s %s\n", name, warnStyle.Render("no response"))
			continue
		}
		fmt.Printf("  %-12s %7.1f°\n", name, deg)
	}

	fmt.Println(successStyle.Render("Done."))
	return nil
}
