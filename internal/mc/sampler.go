package mc

import "fmt"

// Sampler is the single-chain Monte Carlo contract. One call to Sample
// performs one visible state transition: propose, accept or reject per the
// chain's own criterion, update the current state and return it.
type Sampler interface {
	// Sample draws one new state and makes it current.
	Sample() *State

	// State returns the current state.
	State() *State

	// SetState replaces the current state. Nil states, dimension changes
	// and NaN/Inf components are rejected immediately.
	SetState(s *State) error

	// Energy is the negative log-probability of the current state.
	Energy() float64

	// Temperature is the chain's sampling temperature.
	Temperature() float64

	// Density exposes the target density, so an exchange engine can
	// evaluate this chain's energy at another chain's position.
	Density() Density
}

// CheckState validates a state against a fixed chain dimension. A dim of
// zero accepts any dimensionality (used when adopting the initial state).
func CheckState(s *State, dim int) error {
	if s == nil || s.Position == nil {
		return ErrNilState
	}
	if !s.Position.IsValid() || (s.Momentum != nil && !s.Momentum.IsValid()) {
		return ErrInvalidState
	}
	if dim > 0 && len(s.Position) != dim {
		return fmt.Errorf("%w: have %d, want %d", ErrDimensionMismatch, len(s.Position), dim)
	}
	return nil
}
