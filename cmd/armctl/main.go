package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jessevdk/go-flags"

	"github.com/gwillem/armctl/pkg/robot"
)

type Options struct {
	Scan   ScanCommand   `command:"scan" description:"Scan serial ports for a connected arm"`
	Home   HomeCommand   `command:"home" description:"Drive all joints to their home position"`
	Move   MoveCommand   `command:"move" description:"Move joints to angles, presets or the scan grid"`
	Teach  TeachCommand  `command:"teach" description:"Record and replay trajectories by hand-guiding the arm"`
	Play   PlayCommand   `command:"play" description:"Replay a saved trajectory file"`
	Shapes ShapesCommand `command:"shapes" description:"Trace a circle or polygon with two joints"`
	Grasp  GraspCommand  `command:"grasp" description:"Approach and grasp an object with verification"`
}

// CommonOpts are flags shared by every hardware-touching command.
type CommonOpts struct {
	Port string `long:"port" short:"p" description:"Serial port (default from armctl.json, else /dev/ttyACM0)"`
	Baud int    `long:"baud" description:"Baud rate" default:"1000000"`
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "armctl - motion and trajectory control for serial-bus servo arms"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// openArm loads the config, applies flag overrides and connects.
// A transport init failure is fatal with exit code 1.
func openArm(common CommonOpts) (*robot.Arm, *robot.Config) {
	cfg, err := robot.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if common.Port != "" {
		cfg.Port = common.Port
	}
	if common.Baud > 0 {
		cfg.BaudRate = common.Baud
	}

	arm, err := robot.Connect(cfg.Port, cfg.BaudRate, cfg.ArmConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
	return arm, cfg
}
