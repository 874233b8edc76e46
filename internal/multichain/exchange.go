package multichain

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/remc/internal/mc"
)

// SwapCommunicator carries everything one swap attempt needs: the two
// chains, the two directional trajectories and the computed acceptance
// probability. It lives for exactly one proposal.
type SwapCommunicator struct {
	Sampler1 mc.Sampler
	Sampler2 mc.Sampler
	// Traj12 drives chain 1's state toward chain 2's potential; Traj21 the
	// reverse. For plain exchange both are identity trajectories.
	Traj12 mc.PropagationResult
	Traj21 mc.PropagationResult

	// Masses weights the kinetic-energy terms of the acceptance test; nil
	// means unit masses.
	Masses mc.Vector

	AcceptanceProbability float64
}

// swapStrategy is what distinguishes plain replica exchange from the RENS
// variants: how a swap is proposed and how its acceptance probability is
// computed.
type swapStrategy interface {
	proposeSwap(pair int) (*SwapCommunicator, error)
	calcAcceptance(com *SwapCommunicator) float64
}

// ExchangeMC orchestrates pairwise exchange attempts between chains. It is
// the only component that reassigns a chain's current state, and it always
// updates both chains of a pair together or neither.
type ExchangeMC struct {
	samplers []mc.Sampler
	pairs    [][2]mc.Sampler
	stats    *mc.SwapStats
	rng      *rand.Rand
	strategy swapStrategy
}

func newExchangeMC(samplers []mc.Sampler, pairs [][2]mc.Sampler, seed int64) (*ExchangeMC, error) {
	if len(samplers) == 0 {
		return nil, fmt.Errorf("multichain: no samplers")
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("multichain: no exchangeable pairs")
	}
	return &ExchangeMC{
		samplers: samplers,
		pairs:    pairs,
		stats:    mc.NewSwapStats(len(pairs)),
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// Sample advances every chain by one local move and returns the resulting
// ensemble state.
func (e *ExchangeMC) Sample() mc.EnsembleState {
	states := make(mc.EnsembleState, len(e.samplers))
	for i, s := range e.samplers {
		states[i] = s.Sample().Clone()
	}
	return states
}

func (e *ExchangeMC) Samplers() []mc.Sampler { return e.samplers }
func (e *ExchangeMC) NumPairs() int          { return len(e.pairs) }

// AcceptanceRates reports accepted/attempted swaps per pair.
func (e *ExchangeMC) AcceptanceRates() []float64 { return e.stats.AcceptanceRates() }

// Statistics exposes the raw swap counters.
func (e *ExchangeMC) Statistics() *mc.SwapStats { return e.stats }

// Swap attempts one exchange on pair i: propose, compute the acceptance
// probability, then commit or discard. Returns whether the swap was
// accepted.
func (e *ExchangeMC) Swap(i int) (bool, error) {
	if i < 0 || i >= len(e.pairs) {
		return false, fmt.Errorf("multichain: pair index %d out of range [0,%d)", i, len(e.pairs))
	}
	com, err := e.strategy.proposeSwap(i)
	if err != nil {
		return false, err
	}
	com.AcceptanceProbability = e.strategy.calcAcceptance(com)

	accepted, err := e.acceptOrReject(com)
	if err != nil {
		return false, err
	}
	e.stats.Update(i, accepted)
	return accepted, nil
}

// acceptOrReject draws u ~ U(0,1) and commits the swap when u < min(p, 1).
// The commit replaces both chains' states together; on a rejected move
// both chains keep their pre-swap states.
func (e *ExchangeMC) acceptOrReject(com *SwapCommunicator) (bool, error) {
	if e.rng.Float64() >= com.AcceptanceProbability {
		return false, nil
	}

	old1 := com.Sampler1.State()
	if err := com.Sampler1.SetState(com.Traj21.Final()); err != nil {
		return false, err
	}
	if err := com.Sampler2.SetState(com.Traj12.Final()); err != nil {
		// Roll back so a half-swapped ensemble is never observable.
		if rerr := com.Sampler1.SetState(old1); rerr != nil {
			return false, fmt.Errorf("multichain: rollback failed: %w", rerr)
		}
		return false, err
	}
	return true, nil
}

// SwapRound attempts every nominated pair of one scheduling round. The
// round must be disjoint: a chain claimed by two pairs is a programming
// error in the scheme and is reported before any swap runs. Because the
// pairs are disjoint and each commit is atomic, every proposal in the
// round sees only pre-round states.
func (e *ExchangeMC) SwapRound(indices []int) error {
	claimed := make(map[mc.Sampler]int, 2*len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(e.pairs) {
			return fmt.Errorf("multichain: pair index %d out of range [0,%d)", idx, len(e.pairs))
		}
		for _, s := range e.pairs[idx] {
			if prev, ok := claimed[s]; ok {
				return fmt.Errorf("multichain: scheduling contract breach: pairs %d and %d claim the same chain", prev, idx)
			}
			claimed[s] = idx
		}
	}
	for _, idx := range indices {
		if _, err := e.Swap(idx); err != nil {
			return err
		}
	}
	return nil
}
