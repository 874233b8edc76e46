package experiment

import (
	"math/rand"

	"github.com/san-kum/remc/internal/config"
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/multichain"
)

// Algorithm is the exchange-engine surface the driving loop needs. All
// multichain algorithms satisfy it through their embedded engine.
type Algorithm interface {
	Sample() mc.EnsembleState
	Samplers() []mc.Sampler
	NumPairs() int
	SwapRound(indices []int) error
	AcceptanceRates() []float64
}

// Registry maps config names to sampler, algorithm and scheme factories.
type Registry struct {
	samplers   map[string]samplerFactory
	algorithms map[string]algorithmFactory
	schemes    map[string]schemeFactory
}

type samplerFactory func(pdf mc.GradientDensity, ch config.ChainConfig, rng *rand.Rand) (mc.Sampler, error)
type algorithmFactory func(cfg *config.Config, samplers []mc.Sampler, pdfs []mc.GradientDensity) (Algorithm, error)
type schemeFactory func(alg multichain.Swapper, seed int64) multichain.SwapScheme

func NewRegistry() *Registry {
	r := &Registry{
		samplers:   make(map[string]samplerFactory),
		algorithms: make(map[string]algorithmFactory),
		schemes:    make(map[string]schemeFactory),
	}

	r.samplers["rwmc"] = buildRWMC
	r.samplers["hmc"] = buildHMC

	r.algorithms["re"] = buildRE
	r.algorithms["mdrens"] = buildMDRENS
	r.algorithms["trens"] = buildThermostattedMDRENS

	r.schemes["alternating"] = func(alg multichain.Swapper, seed int64) multichain.SwapScheme {
		return multichain.NewAlternatingAdjacentSwapScheme(alg)
	}
	r.schemes["random"] = func(alg multichain.Swapper, seed int64) multichain.SwapScheme {
		return multichain.NewRandomAdjacentSwapScheme(alg, seed)
	}

	return r
}

func (r *Registry) ListAlgorithms() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	return names
}

// interpolateGradients linearly mixes two equilibrium gradients in the
// work parameter; the gradient of (1-l)*E1 + l*E2.
func interpolateGradients(pdf1, pdf2 mc.GradientDensity) func(q mc.Vector, lambda float64) mc.Vector {
	return func(q mc.Vector, lambda float64) mc.Vector {
		g1 := pdf1.Gradient(q)
		g2 := pdf2.Gradient(q)
		out := make(mc.Vector, len(q))
		for i := range out {
			out[i] = (1-lambda)*g1[i] + lambda*g2[i]
		}
		return out
	}
}
