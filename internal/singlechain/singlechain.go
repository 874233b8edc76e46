// Package singlechain implements the single-chain Monte Carlo samplers:
// random-walk Metropolis and Hamiltonian Monte Carlo. Both satisfy the
// mc.Sampler contract and keep their own local acceptance statistics.
package singlechain

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/remc/internal/integrators"
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/numeric"
)

type base struct {
	pdf         mc.Density
	state       *mc.State
	dim         int
	temperature float64
	rng         *rand.Rand
	accepted    int
	total       int
}

func newBase(pdf mc.Density, initial *mc.State, temperature float64, rng *rand.Rand) (base, error) {
	if pdf == nil {
		return base{}, fmt.Errorf("singlechain: nil density")
	}
	if err := mc.CheckState(initial, 0); err != nil {
		return base{}, err
	}
	if temperature <= 0 {
		return base{}, fmt.Errorf("singlechain: temperature must be positive, got %g", temperature)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return base{
		pdf:         pdf,
		state:       initial.Clone(),
		dim:         initial.Dim(),
		temperature: temperature,
		rng:         rng,
	}, nil
}

func (b *base) State() *mc.State { return b.state }

func (b *base) SetState(s *mc.State) error {
	if err := mc.CheckState(s, b.dim); err != nil {
		return err
	}
	b.state = s.Clone()
	return nil
}

func (b *base) Energy() float64 {
	return mc.Energy(b.pdf, b.state.Position)
}

func (b *base) Temperature() float64 { return b.temperature }
func (b *base) Density() mc.Density  { return b.pdf }

// AcceptanceRate is the fraction of accepted local moves so far.
func (b *base) AcceptanceRate() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.accepted) / float64(b.total)
}

// RWMCSampler is a random-walk Metropolis sampler: symmetric uniform
// proposals of width stepsize around the current position.
type RWMCSampler struct {
	base
	stepsize float64
}

func NewRWMCSampler(pdf mc.Density, initial *mc.State, temperature, stepsize float64, rng *rand.Rand) (*RWMCSampler, error) {
	b, err := newBase(pdf, initial, temperature, rng)
	if err != nil {
		return nil, err
	}
	if stepsize <= 0 {
		return nil, fmt.Errorf("singlechain: stepsize must be positive, got %g", stepsize)
	}
	return &RWMCSampler{base: b, stepsize: stepsize}, nil
}

func (s *RWMCSampler) Stepsize() float64 { return s.stepsize }

func (s *RWMCSampler) Sample() *mc.State {
	current := s.state.Position
	proposal := make(mc.Vector, len(current))
	for i, x := range current {
		proposal[i] = x + s.stepsize*(2*s.rng.Float64()-1)
	}

	dE := mc.Energy(s.pdf, proposal) - mc.Energy(s.pdf, current)
	s.total++
	if s.rng.Float64() < numeric.Exp(-dE/s.temperature) {
		s.state = mc.NewState(proposal)
		s.accepted++
	}
	return s.state
}

// HMCSampler is a Hamiltonian Monte Carlo sampler: momenta are refreshed
// from the Maxwell distribution each call, the state is driven through a
// short leapfrog trajectory, and the move is corrected by a Metropolis
// test on the total energy.
type HMCSampler struct {
	base
	grad       mc.GradientDensity
	timestep   float64
	trajLength int
	masses     mc.Vector
	integ      integrators.Integrator
}

func NewHMCSampler(pdf mc.GradientDensity, initial *mc.State, temperature, timestep float64, trajLength int, masses mc.Vector, rng *rand.Rand) (*HMCSampler, error) {
	b, err := newBase(pdf, initial, temperature, rng)
	if err != nil {
		return nil, err
	}
	if timestep <= 0 {
		return nil, fmt.Errorf("singlechain: timestep must be positive, got %g", timestep)
	}
	if trajLength < 1 {
		return nil, fmt.Errorf("singlechain: trajectory length must be >= 1, got %d", trajLength)
	}
	return &HMCSampler{
		base:       b,
		grad:       pdf,
		timestep:   timestep,
		trajLength: trajLength,
		masses:     masses,
		integ:      integrators.NewFastLeapFrog(),
	}, nil
}

func (s *HMCSampler) Sample() *mc.State {
	p := numeric.MaxwellDraw(s.rng, s.dim, s.temperature, s.masses)
	init := mc.NewStateWithMomentum(s.state.Position.Clone(), p)

	grad := integrators.GradientFunc(func(q mc.Vector, t float64) mc.Vector {
		return s.grad.Gradient(q)
	})

	final, err := s.integ.Integrate(grad, init, s.masses, s.trajLength, s.timestep, nil)
	s.total++
	if err != nil {
		return s.state
	}

	hOld := mc.Energy(s.pdf, init.Position) + numeric.Kinetic(init.Momentum, s.masses)
	hNew := mc.Energy(s.pdf, final.Position) + numeric.Kinetic(final.Momentum, s.masses)

	if s.rng.Float64() < numeric.Exp(-(hNew-hOld)/s.temperature) {
		s.state = final
		s.accepted++
	}
	return s.state
}
