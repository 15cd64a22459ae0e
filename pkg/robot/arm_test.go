package robot

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testArm(sim *SimTransport, baseOffset float64) *Arm {
	return NewArm(sim, ArmConfig{
		BaseOffsetDeg: baseOffset,
		CommandGap:    time.Millisecond,
		Settle:        time.Millisecond,
	})
}

func TestMoveJointAppliesOffsetClampConvert(t *testing.T) {
	sim := NewSimTransport()
	arm := testArm(sim, 90)
	ctx := context.Background()

	// Base gets the mounting offset before clamping.
	if err := arm.MoveJoint(ctx, Base, 30, DefaultSpeed, DefaultAccel); err != nil {
		t.Fatal(err)
	}
	w, ok := sim.LastWrite(BaseID)
	if !ok {
		t.Fatal("no write issued for base")
	}
	if want := DegreesToSteps(120); w.Step != want {
		t.Errorf("base write step = %d, want %d (30° + 90° offset)", w.Step, want)
	}
	if !sim.Torque[BaseID] {
		t.Error("torque not enabled before write")
	}

	// Offset pushes past the limit: clamp to base max.
	if err := arm.MoveJoint(ctx, Base, 120, DefaultSpeed, DefaultAccel); err != nil {
		t.Fatal(err)
	}
	w, _ = sim.LastWrite(BaseID)
	if want := DegreesToSteps(165); w.Step != want {
		t.Errorf("clamped base write step = %d, want %d", w.Step, want)
	}

	// Non-base joints get no offset.
	if err := arm.MoveJoint(ctx, Elbow, 45, DefaultSpeed, DefaultAccel); err != nil {
		t.Fatal(err)
	}
	w, _ = sim.LastWrite(JointID(Elbow))
	if want := DegreesToSteps(45); w.Step != want {
		t.Errorf("elbow write step = %d, want %d", w.Step, want)
	}
}

func TestMoveJointActuationError(t *testing.T) {
	sim := NewSimTransport()
	sim.FailWrite = map[int]bool{JointID(Elbow): true}
	arm := testArm(sim, 0)

	err := arm.MoveJoint(context.Background(), Elbow, 10, DefaultSpeed, DefaultAccel)
	var actErr *ActuationError
	if !errors.As(err, &actErr) {
		t.Fatalf("expected ActuationError, got %v", err)
	}
	if actErr.Joint != Elbow {
		t.Errorf("ActuationError.Joint = %s, want elbow", actErr.Joint)
	}
}

// A failed joint must not stop the rest of the batch.
func TestMoveToBestEffort(t *testing.T) {
	sim := NewSimTransport()
	sim.FailWrite = map[int]bool{2: true}
	arm := testArm(sim, 0)

	err := arm.MoveAll(context.Background(), 10, DefaultSpeed, DefaultAccel)
	if err == nil {
		t.Fatal("expected an error for the failed joint")
	}

	// All other joints still received their command.
	for id := 1; id <= NumJoints; id++ {
		_, got := sim.LastWrite(id)
		want := id != 2
		if got != want {
			t.Errorf("servo %d write issued = %v, want %v", id, got, want)
		}
	}
}

func TestHomeTargets(t *testing.T) {
	sim := NewSimTransport()
	arm := testArm(sim, 90)

	if _, err := arm.Home(context.Background()); err != nil {
		t.Fatal(err)
	}

	limits := DefaultLimits()
	for i, name := range AllJoints() {
		w, ok := sim.LastWrite(i + 1)
		if !ok {
			t.Fatalf("no home command for %s", name)
		}
		deg := 0.0
		if name == Base {
			deg = 90 // mounting offset
		}
		want := DegreesToSteps(limits.Clamp(name, deg))
		if w.Step != want {
			t.Errorf("home target for %s = %d, want %d", name, w.Step, want)
		}
	}
}

func TestReadStepsPartialFailure(t *testing.T) {
	sim := NewSimTransport()
	sim.FailRead = map[int]bool{5: true}
	arm := testArm(sim, 0)

	_, err := arm.ReadSteps(context.Background())
	var fbErr *FeedbackError
	if !errors.As(err, &fbErr) {
		t.Fatalf("expected FeedbackError, got %v", err)
	}
	if fbErr.Joint != WristFlex {
		t.Errorf("FeedbackError.Joint = %s, want wrist_flex", fbErr.Joint)
	}
}

func TestReadPositionsSkipsFailedJoints(t *testing.T) {
	sim := NewSimTransport()
	sim.FailRead = map[int]bool{3: true}
	arm := testArm(sim, 0)

	positions := arm.ReadPositions(context.Background())
	if len(positions) != NumJoints-1 {
		t.Fatalf("got %d positions, want %d", len(positions), NumJoints-1)
	}
	if _, ok := positions[Elbow]; ok {
		t.Error("failed joint should be omitted")
	}
}

func TestDisableEnableAll(t *testing.T) {
	sim := NewSimTransport()
	arm := testArm(sim, 0)
	ctx := context.Background()

	if err := arm.DisableAll(ctx); err != nil {
		t.Fatal(err)
	}
	for id := 1; id <= NumJoints; id++ {
		if sim.Torque[id] {
			t.Errorf("servo %d torque still enabled", id)
		}
	}

	if err := arm.EnableAll(ctx); err != nil {
		t.Fatal(err)
	}
	for id := 1; id <= NumJoints; id++ {
		if !sim.Torque[id] {
			t.Errorf("servo %d torque not enabled", id)
		}
	}
}
