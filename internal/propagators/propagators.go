// Package propagators generates phase-space trajectories by driving an
// integrator under a given gradient, with optional Andersen thermostatting
// and heat bookkeeping for non-equilibrium switching.
package propagators

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/remc/internal/integrators"
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/numeric"
)

// MDPropagator runs deterministic molecular dynamics. Pure MD produces no
// heat; the trajectory's work shows up later through the endpoint energies.
type MDPropagator struct {
	grad     integrators.Gradient
	timestep float64
	masses   mc.Vector
	integ    integrators.Integrator
}

func NewMDPropagator(grad integrators.Gradient, timestep float64, masses mc.Vector, integ integrators.Integrator) (*MDPropagator, error) {
	if grad == nil {
		return nil, fmt.Errorf("propagators: nil gradient")
	}
	if timestep <= 0 {
		return nil, fmt.Errorf("propagators: timestep must be positive, got %g", timestep)
	}
	if integ == nil {
		integ = integrators.NewFastLeapFrog()
	}
	return &MDPropagator{grad: grad, timestep: timestep, masses: masses, integ: integ}, nil
}

// Generate propagates init over length steps. full retains intermediate
// states, which requires an integrator with synchronized steps.
func (p *MDPropagator) Generate(init *mc.State, length int, full bool) (mc.PropagationResult, error) {
	builder := mc.NewBuilder(full)
	builder.AddInitialState(init)

	var obs integrators.Observer
	if full {
		obs = func(s *mc.State, t float64) { builder.AddIntermediateState(s) }
	}

	final, err := p.integ.Integrate(p.grad, init, p.masses, length, p.timestep, obs)
	if err != nil {
		return nil, err
	}
	builder.AddFinalState(final)
	return builder.Product()
}

// shiftedGradient offsets the time argument so chunked integrations see
// absolute trajectory time.
type shiftedGradient struct {
	inner integrators.Gradient
	t0    float64
}

func (g shiftedGradient) Evaluate(q mc.Vector, t float64) mc.Vector {
	return g.inner.Evaluate(q, g.t0+t)
}

// ThermostattedMDPropagator couples MD to an Andersen thermostat: every
// collision interval, with the configured probability, momenta are redrawn
// from the Maxwell distribution at the (time-dependent) temperature. The
// kinetic energy change of each collision is accumulated as heat in
// reduced units (divided by the temperature at collision time).
type ThermostattedMDPropagator struct {
	grad          integrators.Gradient
	timestep      float64
	temperature   func(t float64) float64
	collisionProb float64
	interval      int
	masses        mc.Vector
	integ         integrators.Integrator
	rng           *rand.Rand
}

func NewThermostattedMDPropagator(grad integrators.Gradient, timestep float64,
	temperature func(t float64) float64, collisionProb float64, interval int,
	masses mc.Vector, integ integrators.Integrator, rng *rand.Rand) (*ThermostattedMDPropagator, error) {

	if grad == nil {
		return nil, fmt.Errorf("propagators: nil gradient")
	}
	if temperature == nil {
		return nil, fmt.Errorf("propagators: nil temperature schedule")
	}
	if timestep <= 0 {
		return nil, fmt.Errorf("propagators: timestep must be positive, got %g", timestep)
	}
	if collisionProb < 0 || collisionProb > 1 {
		return nil, fmt.Errorf("propagators: collision probability must be in [0,1], got %g", collisionProb)
	}
	if interval < 1 {
		return nil, fmt.Errorf("propagators: collision interval must be >= 1, got %d", interval)
	}
	if integ == nil {
		integ = integrators.NewLeapFrog()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ThermostattedMDPropagator{
		grad:          grad,
		timestep:      timestep,
		temperature:   temperature,
		collisionProb: collisionProb,
		interval:      interval,
		masses:        masses,
		integ:         integ,
		rng:           rng,
	}, nil
}

func (p *ThermostattedMDPropagator) Generate(init *mc.State, length int, full bool) (mc.PropagationResult, error) {
	builder := mc.NewBuilder(full)
	builder.AddInitialState(init)

	current := init.Clone()
	heat := 0.0
	step := 0

	for step < length {
		chunk := p.interval
		if step+chunk > length {
			chunk = length - step
		}
		t0 := float64(step) * p.timestep

		var obs integrators.Observer
		if full {
			obs = func(s *mc.State, t float64) { builder.AddIntermediateState(s) }
		}

		next, err := p.integ.Integrate(shiftedGradient{p.grad, t0}, current, p.masses, chunk, p.timestep, obs)
		if err != nil {
			return nil, err
		}
		current = next
		step += chunk

		if step < length {
			if p.rng.Float64() < p.collisionProb {
				tNow := float64(step) * p.timestep
				temp := p.temperature(tNow)
				kOld := numeric.Kinetic(current.Momentum, p.masses)
				current.Momentum = numeric.MaxwellDraw(p.rng, len(current.Momentum), temp, p.masses)
				kNew := numeric.Kinetic(current.Momentum, p.masses)
				heat += (kNew - kOld) / temp
			}
			if full {
				builder.AddIntermediateState(current)
			}
		}
	}

	builder.AddFinalState(current)
	builder.SetHeat(heat)
	return builder.Product()
}
