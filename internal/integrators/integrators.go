// Package integrators implements symplectic integrators for Hamiltonian
// dynamics driven by a (possibly time-dependent) gradient of the potential.
package integrators

import (
	"errors"

	"github.com/san-kum/remc/internal/mc"
)

// Gradient evaluates the gradient of the potential energy at position q
// and time t. Time only matters for interpolated potentials; equilibrium
// gradients ignore it.
type Gradient interface {
	Evaluate(q mc.Vector, t float64) mc.Vector
}

// GradientFunc adapts a plain function to the Gradient interface.
type GradientFunc func(q mc.Vector, t float64) mc.Vector

func (f GradientFunc) Evaluate(q mc.Vector, t float64) mc.Vector { return f(q, t) }

// Observer receives each synchronized intermediate state during an
// integration, in temporal order. The initial and final states are not
// reported; the caller already holds them.
type Observer func(s *mc.State, t float64)

// Integrator advances a phase-space state through a fixed number of steps.
type Integrator interface {
	Integrate(grad Gradient, init *mc.State, masses mc.Vector, steps int, dt float64, obs Observer) (*mc.State, error)
}

var errNoMomentum = errors.New("integrators: initial state carries no momentum")

func checkInit(init *mc.State, steps int, dt float64) error {
	if err := mc.CheckState(init, 0); err != nil {
		return err
	}
	if !init.HasMomentum() {
		return errNoMomentum
	}
	if steps < 1 {
		return errors.New("integrators: steps must be >= 1")
	}
	if dt <= 0 {
		return errors.New("integrators: timestep must be positive")
	}
	return nil
}

func invMass(masses mc.Vector, i int) float64 {
	if masses != nil && i < len(masses) {
		return 1.0 / masses[i]
	}
	return 1.0
}

// LeapFrog is the classic kick-drift-kick leapfrog. Every step yields a
// synchronized (q, p) pair, so it supports full-trajectory observers, at
// the cost of two gradient evaluations per step.
type LeapFrog struct{}

func NewLeapFrog() *LeapFrog { return &LeapFrog{} }

func (l *LeapFrog) Integrate(grad Gradient, init *mc.State, masses mc.Vector, steps int, dt float64, obs Observer) (*mc.State, error) {
	if err := checkInit(init, steps, dt); err != nil {
		return nil, err
	}

	q := init.Position.Clone()
	p := init.Momentum.Clone()
	n := len(q)
	t := 0.0

	for step := 0; step < steps; step++ {
		g := grad.Evaluate(q, t)
		for i := 0; i < n; i++ {
			p[i] -= 0.5 * dt * g[i]
		}
		for i := 0; i < n; i++ {
			q[i] += dt * p[i] * invMass(masses, i)
		}
		t += dt
		g = grad.Evaluate(q, t)
		for i := 0; i < n; i++ {
			p[i] -= 0.5 * dt * g[i]
		}
		if obs != nil && step < steps-1 {
			obs(mc.NewStateWithMomentum(q.Clone(), p.Clone()), t)
		}
	}

	return mc.NewStateWithMomentum(q, p), nil
}

// FastLeapFrog fuses the trailing and leading half-kicks of consecutive
// steps into single full kicks, one gradient evaluation per step. Momenta
// are desynchronized from positions between the endpoints, so intermediate
// states are not observable.
type FastLeapFrog struct{}

func NewFastLeapFrog() *FastLeapFrog { return &FastLeapFrog{} }

func (l *FastLeapFrog) Integrate(grad Gradient, init *mc.State, masses mc.Vector, steps int, dt float64, obs Observer) (*mc.State, error) {
	if err := checkInit(init, steps, dt); err != nil {
		return nil, err
	}
	if obs != nil {
		return nil, errors.New("integrators: FastLeapFrog does not support intermediate observers")
	}

	q := init.Position.Clone()
	p := init.Momentum.Clone()
	n := len(q)
	t := 0.0

	g := grad.Evaluate(q, t)
	for i := 0; i < n; i++ {
		p[i] -= 0.5 * dt * g[i]
	}

	for step := 0; step < steps; step++ {
		for i := 0; i < n; i++ {
			q[i] += dt * p[i] * invMass(masses, i)
		}
		t += dt
		g = grad.Evaluate(q, t)
		kick := dt
		if step == steps-1 {
			kick = 0.5 * dt
		}
		for i := 0; i < n; i++ {
			p[i] -= kick * g[i]
		}
	}

	return mc.NewStateWithMomentum(q, p), nil
}

// VelocityVerlet is equivalent to LeapFrog up to floating-point ordering;
// kept as a distinct name so callers can select it explicitly.
type VelocityVerlet struct{}

func NewVelocityVerlet() *VelocityVerlet { return &VelocityVerlet{} }

func (v *VelocityVerlet) Integrate(grad Gradient, init *mc.State, masses mc.Vector, steps int, dt float64, obs Observer) (*mc.State, error) {
	if err := checkInit(init, steps, dt); err != nil {
		return nil, err
	}

	q := init.Position.Clone()
	p := init.Momentum.Clone()
	n := len(q)
	t := 0.0
	g := grad.Evaluate(q, t)

	for step := 0; step < steps; step++ {
		for i := 0; i < n; i++ {
			p[i] -= 0.5 * dt * g[i]
			q[i] += dt * p[i] * invMass(masses, i)
		}
		t += dt
		g = grad.Evaluate(q, t)
		for i := 0; i < n; i++ {
			p[i] -= 0.5 * dt * g[i]
		}
		if obs != nil && step < steps-1 {
			obs(mc.NewStateWithMomentum(q.Clone(), p.Clone()), t)
		}
	}

	return mc.NewStateWithMomentum(q, p), nil
}
