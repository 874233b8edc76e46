package mc

import (
	"errors"
	"testing"
)

func TestFullTrajectoryBuilder(t *testing.T) {
	b := NewBuilder(true)

	initial := NewState(Vector{0})
	middle := NewState(Vector{1})
	final := NewState(Vector{2})

	b.AddInitialState(initial)
	b.AddIntermediateState(middle)
	b.AddFinalState(final)
	b.SetHeat(0.5)

	result, err := b.Product()
	if err != nil {
		t.Fatalf("Product: %v", err)
	}

	traj, ok := result.(*Trajectory)
	if !ok {
		t.Fatalf("expected *Trajectory, got %T", result)
	}
	if traj.Len() != 3 {
		t.Errorf("Len = %d, want 3", traj.Len())
	}
	if traj.Initial().Position[0] != 0 || traj.Final().Position[0] != 2 {
		t.Errorf("endpoints: initial %v, final %v", traj.Initial().Position, traj.Final().Position)
	}
	if traj.At(1).Position[0] != 1 {
		t.Errorf("intermediate: got %v", traj.At(1).Position)
	}
	if traj.Heat() != 0.5 {
		t.Errorf("Heat = %g, want 0.5", traj.Heat())
	}
}

func TestFullTrajectoryBuilderOrderIndependent(t *testing.T) {
	// The initial state is always prepended, so builders can receive it
	// after intermediates.
	b := &FullTrajectoryBuilder{}
	b.AddIntermediateState(NewState(Vector{1}))
	b.AddFinalState(NewState(Vector{2}))
	b.AddInitialState(NewState(Vector{0}))

	result, err := b.Product()
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if result.Initial().Position[0] != 0 {
		t.Errorf("initial = %v, want position 0", result.Initial().Position)
	}
}

func TestFullTrajectoryBuilderTooFewStates(t *testing.T) {
	b := NewBuilder(true)
	b.AddInitialState(NewState(Vector{0}))
	if _, err := b.Product(); !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("got %v, want ErrEmptyTrajectory", err)
	}
}

func TestShortTrajectoryBuilder(t *testing.T) {
	b := NewBuilder(false)
	b.AddInitialState(NewState(Vector{0}))
	b.AddIntermediateState(NewState(Vector{1})) // discarded
	b.AddFinalState(NewState(Vector{2}))
	b.SetHeat(1.25)

	result, err := b.Product()
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if _, ok := result.(*EndpointResult); !ok {
		t.Fatalf("expected *EndpointResult, got %T", result)
	}
	if result.Initial().Position[0] != 0 || result.Final().Position[0] != 2 {
		t.Errorf("endpoints: initial %v, final %v", result.Initial().Position, result.Final().Position)
	}
	if result.Heat() != 1.25 {
		t.Errorf("Heat = %g, want 1.25", result.Heat())
	}
}

func TestShortTrajectoryBuilderWrongCount(t *testing.T) {
	b := NewBuilder(false)
	b.AddInitialState(NewState(Vector{0}))
	if _, err := b.Product(); !errors.Is(err, ErrShortTrajectory) {
		t.Errorf("one state: got %v, want ErrShortTrajectory", err)
	}

	b = NewBuilder(false)
	b.AddInitialState(NewState(Vector{0}))
	b.AddFinalState(NewState(Vector{1}))
	b.AddFinalState(NewState(Vector{2}))
	if _, err := b.Product(); !errors.Is(err, ErrShortTrajectory) {
		t.Errorf("three states: got %v, want ErrShortTrajectory", err)
	}
}

func TestBuildersCloneStates(t *testing.T) {
	for _, full := range []bool{true, false} {
		b := NewBuilder(full)
		s := NewState(Vector{0})
		b.AddInitialState(s)
		b.AddFinalState(NewState(Vector{1}))

		s.Position[0] = 99

		result, err := b.Product()
		if err != nil {
			t.Fatalf("full=%v: %v", full, err)
		}
		if result.Initial().Position[0] != 0 {
			t.Errorf("full=%v: builder adopted the caller's state without cloning", full)
		}
	}
}

func TestTrajectoryAccumulators(t *testing.T) {
	traj := NewTrajectory([]*State{NewState(Vector{0}), NewState(Vector{1})}, 0, 0)
	traj.AddHeat(0.5)
	traj.AddHeat(0.25)
	traj.AddWork(-1)
	if traj.Heat() != 0.75 {
		t.Errorf("Heat = %g, want 0.75", traj.Heat())
	}
	if traj.Work() != -1 {
		t.Errorf("Work = %g, want -1", traj.Work())
	}
}
