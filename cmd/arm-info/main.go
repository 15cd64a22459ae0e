// Command arm-info dumps a full feedback read of every servo on the
// bus: position, speed, load, voltage, temperature and moving flag.
//
// Usage:
//
//	arm-info [port]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/armctl/pkg/robot"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	cfg, err := robot.LoadConfig()
	if err != nil {
		cfg = robot.DefaultConfig()
	}
	if len(os.Args) >= 2 {
		cfg.Port = os.Args[1]
	}

	fmt.Println(headerStyle.Render("Arm feedback"))
	fmt.Printf("Port: %s\n\n", cfg.Port)

	transport, err := robot.OpenBus(cfg.Port, cfg.BaudRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer transport.Close()

	ctx := context.Background()
	rows := make([][]string, 0, robot.NumJoints)
	for i, name := range robot.AllJoints() {
		id := i + 1
		fb, err := transport.ReadFeedback(ctx, id)
		if err != nil {
			rows = append(rows, []string{
				fmt.Sprintf("%d", id), string(name),
				warnStyle.Render("no response"), "", "", "", "", "",
			})
			continue
		}
		moving := ""
		if fb.Moving {
			moving = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", id),
			string(name),
			fmt.Sprintf("%d", fb.Position),
			fmt.Sprintf("%.1f°", robot.StepsToDegrees(fb.Position)),
			fmt.Sprintf("%d", fb.Speed),
			fmt.Sprintf("%d", fb.Load),
			fmt.Sprintf("%.1fV / %d°C", float64(fb.Voltage)/10, fb.Temperature),
			moving,
		})
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tableHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "Joint", "Steps", "Angle", "Speed", "Load", "Volt/Temp", "Moving").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return cellStyle
		})

	fmt.Println(t.Render())
}
