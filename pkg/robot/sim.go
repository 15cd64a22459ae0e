package robot

import (
	"context"
	"fmt"
)

// SimWrite is one recorded position command.
type SimWrite struct {
	ID    int
	Step  int
	Speed int
	Accel int
}

// SimTransport is an in-memory Transport for tests and dry runs. Writes
// are recorded and, by default, immediately become the servo's position.
type SimTransport struct {
	Positions map[int]int
	Torque    map[int]bool
	Writes    []SimWrite

	// Settle, when set, maps a commanded step to the position the servo
	// actually reaches, e.g. a gripper stalling on an object.
	Settle func(id, step int) int
	// FailWrite and FailRead force per-servo command failures.
	FailWrite map[int]bool
	FailRead  map[int]bool
}

// NewSimTransport creates a simulated bus with every servo at center.
func NewSimTransport() *SimTransport {
	positions := make(map[int]int, NumJoints)
	for id := 1; id <= NumJoints; id++ {
		positions[id] = CenterStep
	}
	return &SimTransport{
		Positions: positions,
		Torque:    make(map[int]bool, NumJoints),
	}
}

func (t *SimTransport) WritePosition(_ context.Context, id, step, speed, accel int) error {
	if t.FailWrite[id] {
		return fmt.Errorf("simulated write failure for servo %d", id)
	}
	t.Writes = append(t.Writes, SimWrite{ID: id, Step: step, Speed: speed, Accel: accel})
	if t.Settle != nil {
		step = t.Settle(id, step)
	}
	t.Positions[id] = step
	return nil
}

func (t *SimTransport) ReadPosition(_ context.Context, id int) (int, error) {
	if t.FailRead[id] {
		return 0, fmt.Errorf("simulated read failure for servo %d", id)
	}
	return t.Positions[id], nil
}

func (t *SimTransport) ReadFeedback(ctx context.Context, id int) (Feedback, error) {
	pos, err := t.ReadPosition(ctx, id)
	if err != nil {
		return Feedback{}, err
	}
	return Feedback{Position: pos, Voltage: 120, Temperature: 32}, nil
}

func (t *SimTransport) Ping(_ context.Context, id int) error {
	if t.FailRead[id] {
		return fmt.Errorf("simulated ping failure for servo %d", id)
	}
	return nil
}

func (t *SimTransport) SetTorque(_ context.Context, id int, enabled bool) error {
	t.Torque[id] = enabled
	return nil
}

func (t *SimTransport) Close() error {
	return nil
}

// LastWrite returns the most recent position command for a servo.
func (t *SimTransport) LastWrite(id int) (SimWrite, bool) {
	for i := len(t.Writes) - 1; i >= 0; i-- {
		if t.Writes[i].ID == id {
			return t.Writes[i], true
		}
	}
	return SimWrite{}, false
}
