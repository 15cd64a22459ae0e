package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Feedback is one full status read of a single servo.
type Feedback struct {
	Position    int
	Speed       int
	Load        int
	Voltage     int
	Temperature int
	Moving      bool
}

// Transport is the serial-bus servo driver consumed by the motion layer.
// The production implementation wraps a feetech bus; tests substitute a
// simulated one. The bus is half-duplex, so calls are inherently
// serialized; implementations need not be safe for concurrent use.
type Transport interface {
	// WritePosition commands one servo to move to a raw step position
	// with the given speed (steps/s) and acceleration. It does not wait
	// for the motion to complete.
	WritePosition(ctx context.Context, id, step, speed, accel int) error
	// ReadPosition returns the servo's current raw step position.
	ReadPosition(ctx context.Context, id int) (int, error)
	// ReadFeedback returns a full status read of one servo.
	ReadFeedback(ctx context.Context, id int) (Feedback, error)
	// Ping verifies a servo responds on the bus.
	Ping(ctx context.Context, id int) error
	// SetTorque enables or disables torque on one servo. Enabling is
	// idempotent and safe to repeat before every move.
	SetTorque(ctx context.Context, id int, enabled bool) error
	Close() error
}

// DefaultBaudRate is the factory configuration of the ST3215 servos.
const DefaultBaudRate = 1_000_000

// BusTransport is a Transport backed by a feetech serial bus.
type BusTransport struct {
	bus    *feetech.Bus
	servos map[int]*feetech.Servo
}

// OpenBus opens the serial port and prepares servo handles for IDs
// 1..NumJoints. Errors wrap ErrTransportInit.
func OpenBus(port string, baud int) (*BusTransport, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: baud,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrTransportInit, port, err)
	}

	servos := make(map[int]*feetech.Servo, NumJoints)
	for id := 1; id <= NumJoints; id++ {
		servos[id] = feetech.NewServo(bus, id, &feetech.ModelSTS3215)
	}

	return &BusTransport{bus: bus, servos: servos}, nil
}

// Close releases the serial port.
func (t *BusTransport) Close() error {
	return t.bus.Close()
}

func (t *BusTransport) servo(id int) (*feetech.Servo, error) {
	s, ok := t.servos[id]
	if !ok {
		return nil, fmt.Errorf("no servo with ID %d", id)
	}
	return s, nil
}

// WritePosition sets the acceleration register, then issues the goal
// position and speed in one command.
func (t *BusTransport) WritePosition(ctx context.Context, id, step, speed, accel int) error {
	s, err := t.servo(id)
	if err != nil {
		return err
	}
	if err := s.WriteRegister(ctx, "acceleration", []byte{byte(accel)}); err != nil {
		return fmt.Errorf("set acceleration: %w", err)
	}
	if err := s.SetPositionWithSpeed(ctx, step, speed); err != nil {
		return fmt.Errorf("set position: %w", err)
	}
	return nil
}

func (t *BusTransport) ReadPosition(ctx context.Context, id int) (int, error) {
	s, err := t.servo(id)
	if err != nil {
		return 0, err
	}
	return s.Position(ctx)
}

func (t *BusTransport) ReadFeedback(ctx context.Context, id int) (Feedback, error) {
	s, err := t.servo(id)
	if err != nil {
		return Feedback{}, err
	}

	var fb Feedback
	if fb.Position, err = s.Position(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read position: %w", err)
	}
	if fb.Speed, err = s.Velocity(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read velocity: %w", err)
	}
	if fb.Load, err = s.Load(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read load: %w", err)
	}
	if fb.Voltage, err = s.Voltage(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read voltage: %w", err)
	}
	if fb.Temperature, err = s.Temperature(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read temperature: %w", err)
	}
	if fb.Moving, err = s.Moving(ctx); err != nil {
		return Feedback{}, fmt.Errorf("read moving: %w", err)
	}
	return fb, nil
}

func (t *BusTransport) Ping(ctx context.Context, id int) error {
	s, err := t.servo(id)
	if err != nil {
		return err
	}
	if _, err := s.Ping(ctx); err != nil {
		return fmt.Errorf("ping servo %d: %w", id, err)
	}
	return nil
}

func (t *BusTransport) SetTorque(ctx context.Context, id int, enabled bool) error {
	s, err := t.servo(id)
	if err != nil {
		return err
	}
	return s.SetTorqueEnabled(ctx, enabled)
}
