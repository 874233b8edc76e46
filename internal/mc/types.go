package mc

import "math"

// Vector is a dense coordinate or momentum vector.
type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Add(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] + other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

func (v Vector) Dot(other Vector) float64 {
	sum := 0.0
	for i := range v {
		if i < len(other) {
			sum += v[i] * other[i]
		}
	}
	return sum
}

// State is a phase-space point. Momentum is nil for samplers that do not
// carry one (plain Metropolis chains).
type State struct {
	Position Vector
	Momentum Vector
}

// NewState creates a position-only state.
func NewState(position Vector) *State {
	return &State{Position: position}
}

// NewStateWithMomentum creates a full phase-space state.
func NewStateWithMomentum(position, momentum Vector) *State {
	return &State{Position: position, Momentum: momentum}
}

func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := &State{Position: s.Position.Clone()}
	if s.Momentum != nil {
		c.Momentum = s.Momentum.Clone()
	}
	return c
}

func (s *State) HasMomentum() bool {
	return s != nil && s.Momentum != nil
}

func (s *State) Dim() int {
	if s == nil {
		return 0
	}
	return len(s.Position)
}

// EnsembleState holds one state per chain, in chain order.
type EnsembleState []*State

func (e EnsembleState) Clone() EnsembleState {
	c := make(EnsembleState, len(e))
	for i, s := range e {
		c[i] = s.Clone()
	}
	return c
}

// Positions flattens the ensemble into one position vector per chain.
func (e EnsembleState) Positions() []Vector {
	out := make([]Vector, len(e))
	for i, s := range e {
		out[i] = s.Position.Clone()
	}
	return out
}
