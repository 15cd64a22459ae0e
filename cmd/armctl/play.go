package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gwillem/armctl/pkg/trajectory"
)

type PlayCommand struct {
	CommonOpts
	Loop bool `long:"loop" short:"l" description:"Repeat until interrupted"`
	Poll bool `long:"poll" description:"Pace against recorded timestamps instead of sleeping per segment (for dense recordings)"`
	Args struct {
		File string `positional-arg-name:"file" description:"Trajectory file"`
	} `positional-args:"yes" required:"yes"`
}

func (c *PlayCommand) Execute(args []string) error {
	traj, err := trajectory.Load(c.Args.File)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d waypoints (%.1fs) from %s\n", traj.Len(), traj.Duration().Seconds(), c.Args.File)

	arm, _ := openArm(c.CommonOpts)
	defer arm.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pacing := trajectory.PaceSleep
	if c.Poll {
		pacing = trajectory.PacePoll
	}
	player := trajectory.NewPlayer(arm, pacing)
	player.Progress = func(i, n int) {
		fmt.Printf("\rWaypoint %d/%d", i+1, n)
	}

	if err := player.Play(ctx, traj, c.Loop); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nInterrupted.")
			return nil
		}
		return err
	}
	fmt.Println()
	fmt.Println(successStyle.Render("Playback finished."))
	return nil
}
