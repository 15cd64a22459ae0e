package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/armctl/pkg/robot"
	"github.com/gwillem/armctl/pkg/trajectory"
)

type TeachCommand struct {
	CommonOpts
	Continuous bool   `long:"continuous" short:"c" description:"Sample continuously at a fixed rate instead of per-keypress waypoints"`
	Interval   int    `long:"interval" short:"i" description:"Interval in ms (default: 1000 manual, 100 continuous)"`
	File       string `long:"file" short:"f" default:"trajectory.txt" description:"Default trajectory file"`
}

func (c *TeachCommand) interval() time.Duration {
	if c.Interval > 0 {
		return time.Duration(c.Interval) * time.Millisecond
	}
	if c.Continuous {
		return trajectory.DefaultSampleInterval
	}
	return time.Second
}

func (c *TeachCommand) Execute(args []string) error {
	arm, cfg := openArm(c.CommonOpts)
	defer arm.Close()

	if c.Interval == 0 && cfg.SampleIntervalMs > 0 && c.Continuous {
		c.Interval = cfg.SampleIntervalMs
	}

	mode := "manual waypoints"
	if c.Continuous {
		mode = "continuous sampling"
	}
	fmt.Println(headerStyle.Render("Teach mode"))
	fmt.Printf("Port: %s  Interval: %s  Mode: %s\n", cfg.Port, c.interval(), mode)

	var current *trajectory.Trajectory

	for {
		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Teach menu").
					Options(
						huh.NewOption("r - Record new trajectory", "r"),
						huh.NewOption("p - Play once", "p"),
						huh.NewOption("l - Play in a loop", "l"),
						huh.NewOption("s - Save trajectory to file", "s"),
						huh.NewOption("o - Open trajectory from file", "o"),
						huh.NewOption("i - Trajectory info", "i"),
						huh.NewOption("q - Quit", "q"),
					).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			return nil
		}

		switch choice {
		case "r":
			traj, err := c.record(arm)
			if err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("Recording failed: %v", err)))
				continue
			}
			if traj == nil {
				fmt.Println("No waypoints captured.")
				continue
			}
			current = traj
			fmt.Println(successStyle.Render(fmt.Sprintf("Captured %d waypoints.", traj.Len())))

		case "p", "l":
			if current.Len() == 0 {
				fmt.Println(warnStyle.Render("No trajectory to play."))
				continue
			}
			if err := c.play(arm, current, choice == "l"); err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("Playback: %v", err)))
			} else {
				fmt.Println(successStyle.Render("Playback finished."))
			}

		case "s":
			if current.Len() == 0 {
				fmt.Println(warnStyle.Render("No trajectory to save."))
				continue
			}
			path := promptFilename("Save to", c.File)
			if path == "" {
				continue
			}
			if err := trajectory.Save(current, path); err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("Save failed: %v", err)))
				continue
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("Saved %d waypoints to %s", current.Len(), path)))

		case "o":
			path := promptFilename("Load from", c.File)
			if path == "" {
				continue
			}
			traj, err := trajectory.Load(path)
			if err != nil {
				fmt.Println(warnStyle.Render(fmt.Sprintf("Load failed: %v", err)))
				continue
			}
			current = traj
			fmt.Println(successStyle.Render(fmt.Sprintf("Loaded %d waypoints from %s", traj.Len(), path)))

		case "i":
			printInfo(current)

		case "q":
			return nil
		}
	}
}

func (c *TeachCommand) record(arm *robot.Arm) (*trajectory.Trajectory, error) {
	if c.Continuous {
		return recordContinuous(arm, c.interval())
	}
	return recordManual(arm, c.interval())
}

func (c *TeachCommand) play(arm *robot.Arm, traj *trajectory.Trajectory, loop bool) error {
	pacing := trajectory.PaceSleep
	if c.Continuous {
		pacing = trajectory.PacePoll
	}
	player := trajectory.NewPlayer(arm, pacing)
	player.Progress = func(i, n int) {
		fmt.Printf("\rWaypoint %d/%d", i+1, n)
		if i == n-1 {
			fmt.Println()
		}
	}
	if loop {
		player.Confirm = func() bool {
			var again bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Loop complete").
						Affirmative("Play again").
						Negative("Stop").
						Value(&again),
				),
			)
			if err := form.Run(); err != nil {
				return false
			}
			return again
		}
	}

	fmt.Printf("Playing %d waypoints...\n", traj.Len())
	return player.Play(context.Background(), traj, loop)
}

// recordManual captures one waypoint per operator confirmation while
// the arm is torque-free. Torque is restored on every exit path.
func recordManual(arm *robot.Arm, interval time.Duration) (*trajectory.Trajectory, error) {
	rec := trajectory.NewManualRecorder(arm, interval)
	ctx := context.Background()
	if err := rec.Begin(ctx); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Torque disabled. Move the arm by hand.")

	for {
		var action string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Waypoint %d", rec.Count()+1)).
					Description("Move the arm, then save the pose").
					Options(
						huh.NewOption("Save waypoint", "save"),
						huh.NewOption("Finish recording", "done"),
					).
					Value(&action),
			),
		)
		if err := form.Run(); err != nil {
			// Aborted: still restore torque.
			return rec.End(ctx), nil
		}
		if action == "done" {
			return rec.End(ctx), nil
		}

		wp, err := rec.Sample(ctx)
		if err != nil {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Sample failed: %v", err)))
			continue
		}
		fmt.Printf("  Saved waypoint %d at t=%dms  %v\n", rec.Count(), wp.OffsetMs, wp.Positions)
	}
}

func promptFilename(title, def string) string {
	path := def
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&path),
		),
	)
	if err := form.Run(); err != nil {
		return ""
	}
	return path
}

func printInfo(t *trajectory.Trajectory) {
	if t.Len() == 0 {
		fmt.Println(warnStyle.Render("No trajectory loaded."))
		return
	}
	fmt.Println(headerStyle.Render("Trajectory"))
	fmt.Printf("  Waypoints:   %d\n", t.Len())
	fmt.Printf("  Duration:    %.1fs\n", t.Duration().Seconds())
	fmt.Printf("  Sample rate: %.1f Hz\n", t.SampleRate())
}
