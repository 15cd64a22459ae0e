package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"github.com/gwillem/armctl/pkg/robot"
)

type ScanCommand struct {
	CommonOpts
	Save bool `long:"save" description:"Save the detected port to armctl.json"`
}

func (c *ScanCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("armctl scan"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━"))
	fmt.Println()

	ports := candidatePorts(c.Port)
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		os.Exit(1)
	}

	for _, port := range ports {
		servos, ok := probePort(port)
		if !ok {
			continue
		}

		fmt.Printf("Found arm on %s (%d servos)\n\n", port, len(servos))
		printServoTable(servos)

		if c.Save {
			cfg, err := robot.LoadConfig()
			if err != nil {
				cfg = robot.DefaultConfig()
			}
			cfg.Port = port
			if err := cfg.Save(); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
				os.Exit(1)
			}
			fmt.Println()
			fmt.Println(successStyle.Render("Port saved to " + robot.DefaultConfigFile))
		}
		return nil
	}

	fmt.Println("No arm found.")
	fmt.Println("Make sure the arm is connected and powered on.")
	os.Exit(1)
	return nil
}

func candidatePorts(override string) []string {
	if override != "" {
		return []string{override}
	}
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}
	var out []string
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		out = append(out, port)
	}
	return out
}

func probePort(port string) ([]feetech.FoundServo, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: robot.DefaultBaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, false
	}
	defer bus.Close()

	servos, err := bus.Scan(ctx, 1, robot.NumJoints)
	if err != nil || len(servos) == 0 {
		return nil, false
	}
	return servos, true
}

func printServoTable(servos []feetech.FoundServo) {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	jointStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)

	rows := make([][]string, 0, len(servos))
	for _, s := range servos {
		name, _ := robot.JointByID(s.ID)
		model := ""
		if s.Model != nil {
			model = s.Model.Name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			string(name),
			model,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "Joint", "Model").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 1 {
				return jointStyle
			}
			return cellStyle
		})

	fmt.Println(t.Render())
}
