package trajectory

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gwillem/armctl/pkg/robot"
)

// ErrFormat indicates a malformed trajectory file. Load never returns
// a partial trajectory.
var ErrFormat = errors.New("malformed trajectory file")

// Save writes the trajectory as plain text: a waypoint-count header,
// then one line per waypoint with the millisecond offset followed by
// the raw step values in bus order.
func Save(t *Trajectory, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, t.Len())
	for _, wp := range t.Waypoints {
		fmt.Fprint(w, wp.OffsetMs)
		for _, pos := range wp.Positions {
			fmt.Fprintf(w, " %d", pos)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a trajectory saved by Save. It is the exact structural
// inverse: Load(Save(t)) equals t for any non-empty trajectory.
// Positions must lie in the servo's step range, so a loaded trajectory
// can be replayed without further normalization.
func Load(path string) (*Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: %s: missing count header", ErrFormat, path)
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: %s: bad count header %q", ErrFormat, path, scanner.Text())
	}

	t := &Trajectory{Waypoints: make([]Waypoint, 0, count)}
	for i := 0; i < count; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: %s: expected %d waypoints, got %d", ErrFormat, path, count, i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 1+jointCount {
			return nil, fmt.Errorf("%w: %s: line %d has %d fields, want %d",
				ErrFormat, path, i+2, len(fields), 1+jointCount)
		}
		offset, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: %s: line %d: bad timestamp %q", ErrFormat, path, i+2, fields[0])
		}
		positions := make([]int, jointCount)
		for j, field := range fields[1:] {
			positions[j], err = strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: line %d: bad position %q", ErrFormat, path, i+2, field)
			}
			if positions[j] < 0 || positions[j] >= robot.StepsPerTurn {
				return nil, fmt.Errorf("%w: %s: line %d: position %d outside [0,%d]",
					ErrFormat, path, i+2, positions[j], robot.StepsPerTurn-1)
			}
		}
		t.Waypoints = append(t.Waypoints, Waypoint{Positions: positions, OffsetMs: offset})
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			return nil, fmt.Errorf("%w: %s: trailing data after %d waypoints", ErrFormat, path, count)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}
