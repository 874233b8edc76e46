package multichain

import (
	"math"
	"testing"

	"github.com/san-kum/remc/internal/mc"
)

// interpolated blends the gradients of two chains linearly in the work
// parameter, the standard choice for Gaussian ladders.
func interpolated(s1, s2 mc.Sampler) func(q mc.Vector, lambda float64) mc.Vector {
	g1 := s1.Density().(mc.GradientDensity)
	g2 := s2.Density().(mc.GradientDensity)
	return func(q mc.Vector, lambda float64) mc.Vector {
		a := g1.Gradient(q)
		b := g2.Gradient(q)
		out := make(mc.Vector, len(q))
		for i := range out {
			out[i] = (1-lambda)*a[i] + lambda*b[i]
		}
		return out
	}
}

func mdrensPair(t *testing.T, sigma2 float64, seed int64) *MDRENS {
	t.Helper()
	s1 := makeChain(t, 0, 1, 1, -0.5, seed+1)
	s2 := makeChain(t, 0, sigma2, 1, 0.5, seed+2)

	params := []*MDRENSSwapParameterInfo{{
		Sampler1:         s1,
		Sampler2:         s2,
		Timestep:         0.05,
		TrajectoryLength: 10,
		Gradient:         interpolated(s1, s2),
	}}
	m, err := NewMDRENS([]mc.Sampler{s1, s2}, params, nil, seed)
	if err != nil {
		t.Fatalf("NewMDRENS: %v", err)
	}
	return m
}

func TestMDRENSIdenticalChains(t *testing.T) {
	// Identical endpoints mean the switching does no net work beyond the
	// integrator's energy error, so nearly every attempt is accepted.
	m := mdrensPair(t, 1, 42)

	for i := 0; i < 100; i++ {
		if _, err := m.Swap(0); err != nil {
			t.Fatalf("Swap: %v", err)
		}
	}
	if rate := m.AcceptanceRates()[0]; rate < 0.9 {
		t.Errorf("acceptance rate %g, want > 0.9", rate)
	}
}

func TestMDRENSAugmentsMomentum(t *testing.T) {
	m := mdrensPair(t, 2, 7)

	com, err := m.proposeSwap(0)
	if err != nil {
		t.Fatalf("proposeSwap: %v", err)
	}
	if !com.Traj12.Initial().HasMomentum() {
		t.Error("forward trajectory started without momentum")
	}
	if !com.Traj21.Initial().HasMomentum() {
		t.Error("reverse trajectory started without momentum")
	}

	// The chains themselves keep their position-only states until a swap
	// commits.
	if m.Samplers()[0].State().HasMomentum() {
		t.Error("augmentation leaked into the chain's current state")
	}
}

func TestMDRENSPreservesStateWithMomentum(t *testing.T) {
	m := mdrensPair(t, 2, 7)
	s1 := m.Samplers()[0]

	withP := mc.NewStateWithMomentum(mc.Vector{0.3}, mc.Vector{1.5})
	if err := s1.SetState(withP); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	com, err := m.proposeSwap(0)
	if err != nil {
		t.Fatalf("proposeSwap: %v", err)
	}
	if com.Traj12.Initial().Momentum[0] != 1.5 {
		t.Errorf("existing momentum replaced: got %g, want 1.5", com.Traj12.Initial().Momentum[0])
	}
}

func TestMDRENSAcceptanceFinite(t *testing.T) {
	m := mdrensPair(t, 2, 13)

	for i := 0; i < 50; i++ {
		m.Sample()
		if _, err := m.Swap(0); err != nil {
			t.Fatalf("Swap: %v", err)
		}
	}

	rate := m.AcceptanceRates()[0]
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		t.Errorf("acceptance rate %g outside [0,1]", rate)
	}
	if m.Statistics().Attempted(0) != 50 {
		t.Errorf("attempted %d, want 50", m.Statistics().Attempted(0))
	}
}

func TestMDRENSWorkReduction(t *testing.T) {
	// With identity trajectories the work relation must reduce to the
	// plain-exchange Metropolis ratio.
	s1 := makeChain(t, 0, 1, 1, 0.5, 1)
	s2 := makeChain(t, 0, 2, 2, -1.0, 2)

	m := &MDRENS{}
	com := &SwapCommunicator{
		Sampler1: s1,
		Sampler2: s2,
		Traj12:   mc.NewTrajectory([]*mc.State{mc.NewState(mc.Vector{0.5}), mc.NewState(mc.Vector{0.5})}, 0, 0),
		Traj21:   mc.NewTrajectory([]*mc.State{mc.NewState(mc.Vector{-1.0}), mc.NewState(mc.Vector{-1.0})}, 0, 0),
	}
	got := m.calcAcceptance(com)

	e1 := func(x float64) float64 { return -s1.Density().LogProb(mc.Vector{x}) }
	e2 := func(x float64) float64 { return -s2.Density().LogProb(mc.Vector{x}) }
	want := math.Exp(-e1(-1.0)/1 + e1(0.5)/1 - e2(0.5)/2 + e2(-1.0)/2)

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("identity-trajectory acceptance %g, want plain-exchange value %g", got, want)
	}
}

func TestMDRENSValidation(t *testing.T) {
	s1 := makeChain(t, 0, 1, 1, 0, 1)
	s2 := makeChain(t, 0, 1, 1, 0, 2)
	grad := interpolated(s1, s2)

	cases := []struct {
		name string
		p    *MDRENSSwapParameterInfo
	}{
		{"zero timestep", &MDRENSSwapParameterInfo{Sampler1: s1, Sampler2: s2, Timestep: 0, TrajectoryLength: 10, Gradient: grad}},
		{"zero length", &MDRENSSwapParameterInfo{Sampler1: s1, Sampler2: s2, Timestep: 0.1, TrajectoryLength: 0, Gradient: grad}},
		{"nil gradient", &MDRENSSwapParameterInfo{Sampler1: s1, Sampler2: s2, Timestep: 0.1, TrajectoryLength: 10}},
	}
	for _, tc := range cases {
		if _, err := NewMDRENS([]mc.Sampler{s1, s2}, []*MDRENSSwapParameterInfo{tc.p}, nil, 1); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestThermostattedMDRENS(t *testing.T) {
	s1 := makeChain(t, 0, 1, 1, -0.5, 21)
	s2 := makeChain(t, 0, 2, 2, 0.5, 22)

	params := []*ThermostattedMDRENSSwapParameterInfo{{
		MDRENSSwapParameterInfo: MDRENSSwapParameterInfo{
			Sampler1:         s1,
			Sampler2:         s2,
			Timestep:         0.05,
			TrajectoryLength: 10,
			Gradient:         interpolated(s1, s2),
		},
		CollisionProbability: 0.5,
		CollisionInterval:    1,
	}}

	tr, err := NewThermostattedMDRENS([]mc.Sampler{s1, s2}, params, nil, 23)
	if err != nil {
		t.Fatalf("NewThermostattedMDRENS: %v", err)
	}

	for i := 0; i < 50; i++ {
		tr.Sample()
		if _, err := tr.Swap(0); err != nil {
			t.Fatalf("Swap: %v", err)
		}
	}

	rate := tr.AcceptanceRates()[0]
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		t.Errorf("acceptance rate %g outside [0,1]", rate)
	}
}

func TestThermostattedMDRENSValidation(t *testing.T) {
	s1 := makeChain(t, 0, 1, 1, 0, 1)
	s2 := makeChain(t, 0, 1, 1, 0, 2)
	inner := MDRENSSwapParameterInfo{
		Sampler1: s1, Sampler2: s2,
		Timestep: 0.1, TrajectoryLength: 10,
		Gradient: interpolated(s1, s2),
	}

	bad := []*ThermostattedMDRENSSwapParameterInfo{{
		MDRENSSwapParameterInfo: inner,
		CollisionProbability:    1.5,
		CollisionInterval:       1,
	}}
	if _, err := NewThermostattedMDRENS([]mc.Sampler{s1, s2}, bad, nil, 1); err == nil {
		t.Error("expected error for collision probability > 1")
	}

	bad = []*ThermostattedMDRENSSwapParameterInfo{{
		MDRENSSwapParameterInfo: inner,
		CollisionProbability:    0.1,
		CollisionInterval:       0,
	}}
	if _, err := NewThermostattedMDRENS([]mc.Sampler{s1, s2}, bad, nil, 1); err == nil {
		t.Error("expected error for zero collision interval")
	}
}
