// Package multichain implements extended-ensemble Monte Carlo: replica
// exchange (RE) and replica exchange with non-equilibrium switches (RENS),
// together with the swap-scheduling policies that decide which chain pairs
// attempt an exchange on a given round.
//
// A simulation is built from single-chain samplers and one parameter-info
// value per exchangeable pair. Local moves advance through Sample, swap
// rounds through a SwapScheme:
//
//	alg, _ := multichain.NewReplicaExchangeMC(samplers, params, seed)
//	scheme := multichain.NewAlternatingAdjacentSwapScheme(alg)
//	for i := 0; i < n; i++ {
//		if i%5 == 0 {
//			scheme.SwapAll()
//		}
//		states = append(states, alg.Sample())
//	}
package multichain
