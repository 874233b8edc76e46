package multichain

import (
	"github.com/san-kum/remc/internal/integrators"
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/numeric"
	"github.com/san-kum/remc/internal/propagators"
)

// MDRENS is replica exchange with non-equilibrium switches (Ballard &
// Jarzynski 2009) driven by deterministic MD trajectories: instead of an
// instant swap, each direction of a pair is advanced through a finite-time
// trajectory under the interpolated potential, and the swap is accepted or
// rejected based on the work done along both directions.
type MDRENS struct {
	*ExchangeMC
	params []*MDRENSSwapParameterInfo
	integ  integrators.Integrator

	// runTraj generates one directional trajectory; the thermostatted
	// variant swaps in its own generator.
	runTraj func(pair int, init *mc.State, reverse bool) (mc.PropagationResult, error)
}

func NewMDRENS(samplers []mc.Sampler, params []*MDRENSSwapParameterInfo, integ integrators.Integrator, seed int64) (*MDRENS, error) {
	pairs := make([][2]mc.Sampler, len(params))
	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
		pairs[i] = [2]mc.Sampler{p.Sampler1, p.Sampler2}
	}
	base, err := newExchangeMC(samplers, pairs, seed)
	if err != nil {
		return nil, err
	}
	if integ == nil {
		integ = integrators.NewFastLeapFrog()
	}
	m := &MDRENS{ExchangeMC: base, params: params, integ: integ}
	m.runTraj = m.runMDTrajectory
	base.strategy = m
	return m, nil
}

// proposeSwap generates the two directional bridging trajectories. A chain
// state without momentum is augmented with a Maxwell draw at the chain's
// own temperature before switching starts.
func (m *MDRENS) proposeSwap(pair int) (*SwapCommunicator, error) {
	p := m.params[pair]

	init12 := m.augment(p.Sampler1.State(), p.Sampler1.Temperature(), p.Masses)
	init21 := m.augment(p.Sampler2.State(), p.Sampler2.Temperature(), p.Masses)

	traj12, err := m.runTraj(pair, init12, false)
	if err != nil {
		return nil, err
	}
	traj21, err := m.runTraj(pair, init21, true)
	if err != nil {
		return nil, err
	}

	return &SwapCommunicator{
		Sampler1: p.Sampler1,
		Sampler2: p.Sampler2,
		Traj12:   traj12,
		Traj21:   traj21,
		Masses:   p.Masses,
	}, nil
}

func (m *MDRENS) augment(s *mc.State, temperature float64, masses mc.Vector) *mc.State {
	if s.HasMomentum() {
		return s.Clone()
	}
	p := numeric.MaxwellDraw(m.rng, s.Dim(), temperature, masses)
	return mc.NewStateWithMomentum(s.Position.Clone(), p)
}

// calcAcceptance applies the non-equilibrium work relation: the reduced
// work of each direction is the total-energy difference of the trajectory
// endpoints over the respective temperatures minus the accumulated heat,
// and p = exp(-(w12 + w21)). For identity trajectories this reduces to the
// plain-exchange Metropolis ratio.
func (m *MDRENS) calcAcceptance(com *SwapCommunicator) float64 {
	t1 := com.Sampler1.Temperature()
	t2 := com.Sampler2.Temperature()

	total1 := func(s *mc.State) float64 {
		return mc.Energy(com.Sampler1.Density(), s.Position) + numeric.Kinetic(s.Momentum, com.Masses)
	}
	total2 := func(s *mc.State) float64 {
		return mc.Energy(com.Sampler2.Density(), s.Position) + numeric.Kinetic(s.Momentum, com.Masses)
	}

	w12 := total2(com.Traj12.Final())/t2 - total1(com.Traj12.Initial())/t1 - com.Traj12.Heat()
	w21 := total1(com.Traj21.Final())/t1 - total2(com.Traj21.Initial())/t2 - com.Traj21.Heat()

	return numeric.Exp(-(w12 + w21))
}

func (m *MDRENS) runMDTrajectory(pair int, init *mc.State, reverse bool) (mc.PropagationResult, error) {
	p := m.params[pair]

	prot := p.protocol()
	if reverse {
		prot = Reverse(prot)
	}
	factory, err := NewInterpolationFactory(prot, p.tau())
	if err != nil {
		return nil, err
	}
	grad, err := factory.BuildGradient(p.Gradient)
	if err != nil {
		return nil, err
	}

	gen, err := propagators.NewMDPropagator(grad, p.Timestep, p.Masses, m.integ)
	if err != nil {
		return nil, err
	}
	return gen.Generate(init, p.TrajectoryLength, false)
}

// ThermostattedMDRENS runs the switching trajectories under an Andersen
// thermostat whose temperature follows the interpolated schedule; the
// thermostat's kinetic-energy exchanges enter the acceptance test through
// the trajectories' heat.
type ThermostattedMDRENS struct {
	*MDRENS
	tparams []*ThermostattedMDRENSSwapParameterInfo
}

func NewThermostattedMDRENS(samplers []mc.Sampler, params []*ThermostattedMDRENSSwapParameterInfo, integ integrators.Integrator, seed int64) (*ThermostattedMDRENS, error) {
	inner := make([]*MDRENSSwapParameterInfo, len(params))
	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}
		inner[i] = &p.MDRENSSwapParameterInfo
	}
	if integ == nil {
		integ = integrators.NewLeapFrog()
	}
	base, err := NewMDRENS(samplers, inner, integ, seed)
	if err != nil {
		return nil, err
	}
	t := &ThermostattedMDRENS{MDRENS: base, tparams: params}
	base.runTraj = t.runThermostattedTrajectory
	return t, nil
}

func (t *ThermostattedMDRENS) runThermostattedTrajectory(pair int, init *mc.State, reverse bool) (mc.PropagationResult, error) {
	p := t.tparams[pair]

	prot := p.protocol()
	if reverse {
		prot = Reverse(prot)
	}
	factory, err := NewInterpolationFactory(prot, p.tau())
	if err != nil {
		return nil, err
	}
	grad, err := factory.BuildGradient(p.Gradient)
	if err != nil {
		return nil, err
	}
	temp, err := factory.BuildTemperature(p.temperature())
	if err != nil {
		return nil, err
	}

	gen, err := propagators.NewThermostattedMDPropagator(grad, p.Timestep, temp,
		p.CollisionProbability, p.CollisionInterval, p.Masses, t.integ, t.rng)
	if err != nil {
		return nil, err
	}
	return gen.Generate(init, p.TrajectoryLength, false)
}
