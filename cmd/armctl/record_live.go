package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/armctl/pkg/robot"
	"github.com/gwillem/armctl/pkg/trajectory"
)

const (
	liveHeaderHeight = 2
	liveLegendHeight = 2
	liveFooterHeight = 3
	liveBorderSize   = 2
)

// Joint colors - distinct colors per trace
var jointColors = map[robot.JointName]string{
	robot.Base:      "196", // red
	robot.Shoulder:  "208", // orange
	robot.Elbow:     "226", // yellow
	robot.WristTilt: "46",  // green
	robot.WristFlex: "51",  // cyan
	robot.WristRoll: "201", // magenta
	robot.Gripper:   "15",  // white
}

var (
	liveTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	liveChartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	liveStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// recordContinuous runs the fixed-rate recorder under a live chart TUI
// until the operator presses q.
func recordContinuous(arm *robot.Arm, interval time.Duration) (*trajectory.Trajectory, error) {
	rec := trajectory.NewContinuousRecorder(arm, interval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		traj *trajectory.Trajectory
		err  error
	}
	done := make(chan result, 1)
	go func() {
		traj, err := rec.Record(ctx)
		done <- result{traj, err}
	}()

	p := tea.NewProgram(newRecordModel(rec, interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("live view: %w", err)
	}
	cancel()

	res := <-done
	return res.traj, res.err
}

type recordModel struct {
	rec      *trajectory.ContinuousRecorder
	interval time.Duration
	chart    *streamlinechart.Model
	width    int
	height   int
	count    int
	elapsed  time.Duration
	lastErr  error
	quitting bool
}

type sampleMsg trajectory.Sample

func waitForSample(rec *trajectory.ContinuousRecorder) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(<-rec.Samples())
	}
}

func newRecordModel(rec *trajectory.ContinuousRecorder, interval time.Duration) recordModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-180, 180),
	)
	for _, name := range robot.AllJoints() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[name]))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}
	return recordModel{rec: rec, interval: interval, chart: &chart}
}

func (m *recordModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - liveBorderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - liveHeaderHeight - liveLegendHeight - liveFooterHeight - liveBorderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m recordModel) Init() tea.Cmd {
	return waitForSample(m.rec)
}

func (m recordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.chartSize()
		m.chart.Resize(w, h)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case sampleMsg:
		s := trajectory.Sample(msg)
		m.elapsed = s.Elapsed
		m.lastErr = s.Err
		if s.Err == nil {
			m.count = s.Index
			for i, name := range robot.AllJoints() {
				if i < len(s.Steps) {
					m.chart.PushDataSet(string(name), robot.StepsToDegrees(s.Steps[i]))
				}
			}
			m.chart.DrawAll()
		}
		return m, waitForSample(m.rec)
	}

	return m, nil
}

func (m recordModel) View() string {
	if m.quitting {
		return "Recording stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(liveTitleStyle.Render("Recording"))
	sb.WriteString(fmt.Sprintf(" - %d samples, %.1fs @ %s", m.count, m.elapsed.Seconds(), m.interval))
	sb.WriteString("\n\n")

	sb.WriteString(liveChartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderJointLegend())
	sb.WriteString("\n")

	if m.lastErr != nil {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("sample dropped: %v", m.lastErr)))
	} else {
		sb.WriteString(liveStatusStyle.Render("Move the arm by hand. Press 'q' to stop."))
	}
	sb.WriteString("\n")

	return sb.String()
}

func renderJointLegend() string {
	var items []string
	for _, name := range robot.AllJoints() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+string(name))
	}
	return strings.Join(items, "  ")
}
