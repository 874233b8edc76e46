package multichain

import (
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/numeric"
)

// ReplicaExchangeMC is plain replica exchange (Swendsen & Wang 1986):
// exchange attempts are instantaneous, each chain's proposed target is
// simply the other chain's current state.
type ReplicaExchangeMC struct {
	*ExchangeMC
	params []*RESwapParameterInfo
}

func NewReplicaExchangeMC(samplers []mc.Sampler, params []*RESwapParameterInfo, seed int64) (*ReplicaExchangeMC, error) {
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
	re := &ReplicaExchangeMC{ExchangeMC: base, params: params}
	base.strategy = re
	return re, nil
}

// proposeSwap builds two length-2 identity trajectories: each chain's
// current state repeated as its own trajectory.
func (re *ReplicaExchangeMC) proposeSwap(pair int) (*SwapCommunicator, error) {
	p := re.params[pair]
	s1 := p.Sampler1.State()
	s2 := p.Sampler2.State()
	return &SwapCommunicator{
		Sampler1: p.Sampler1,
		Sampler2: p.Sampler2,
		Traj12:   mc.NewTrajectory([]*mc.State{s1.Clone(), s1.Clone()}, 0, 0),
		Traj21:   mc.NewTrajectory([]*mc.State{s2.Clone(), s2.Clone()}, 0, 0),
	}, nil
}

// calcAcceptance computes the Metropolis ratio
//
//	p = exp(-E1(x2)/T1 + E1(x1)/T1 - E2(x1)/T2 + E2(x2)/T2)
//
// with the exponent clamped; the commit rule saturates p at 1.
func (re *ReplicaExchangeMC) calcAcceptance(com *SwapCommunicator) float64 {
	e1 := func(x mc.Vector) float64 { return mc.Energy(com.Sampler1.Density(), x) }
	e2 := func(x mc.Vector) float64 { return mc.Energy(com.Sampler2.Density(), x) }

	t1 := com.Sampler1.Temperature()
	t2 := com.Sampler2.Temperature()

	x1 := com.Traj12.Initial().Position
	x2 := com.Traj21.Initial().Position

	proposal1 := com.Traj21.Final().Position
	proposal2 := com.Traj12.Final().Position

	return numeric.Exp(-e1(proposal1)/t1 + e1(x1)/t1 - e2(proposal2)/t2 + e2(x2)/t2)
}
