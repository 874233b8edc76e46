package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/remc/internal/config"
	"github.com/san-kum/remc/internal/density"
	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/multichain"
	"github.com/san-kum/remc/internal/singlechain"
)

func buildRWMC(pdf mc.GradientDensity, ch config.ChainConfig, rng *rand.Rand) (mc.Sampler, error) {
	initial := mc.NewState(mc.Vector{ch.Position})
	return singlechain.NewRWMCSampler(pdf, initial, ch.Temperature, ch.StepsizeOr(), rng)
}

func buildHMC(pdf mc.GradientDensity, ch config.ChainConfig, rng *rand.Rand) (mc.Sampler, error) {
	initial := mc.NewState(mc.Vector{ch.Position})
	return singlechain.NewHMCSampler(pdf, initial, ch.Temperature, ch.TimestepOr(), config.DefaultHMCLength, nil, rng)
}

func buildRE(cfg *config.Config, samplers []mc.Sampler, pdfs []mc.GradientDensity) (Algorithm, error) {
	params := make([]*multichain.RESwapParameterInfo, len(samplers)-1)
	for i := range params {
		params[i] = &multichain.RESwapParameterInfo{
			Sampler1: samplers[i],
			Sampler2: samplers[i+1],
		}
	}
	return multichain.NewReplicaExchangeMC(samplers, params, cfg.Seed)
}

func buildMDRENS(cfg *config.Config, samplers []mc.Sampler, pdfs []mc.GradientDensity) (Algorithm, error) {
	params := make([]*multichain.MDRENSSwapParameterInfo, len(samplers)-1)
	for i := range params {
		params[i] = &multichain.MDRENSSwapParameterInfo{
			Sampler1:         samplers[i],
			Sampler2:         samplers[i+1],
			Timestep:         cfg.RENS.Timestep,
			TrajectoryLength: cfg.RENS.TrajectoryLength,
			Gradient:         interpolateGradients(pdfs[i], pdfs[i+1]),
		}
	}
	return multichain.NewMDRENS(samplers, params, nil, cfg.Seed)
}

func buildThermostattedMDRENS(cfg *config.Config, samplers []mc.Sampler, pdfs []mc.GradientDensity) (Algorithm, error) {
	params := make([]*multichain.ThermostattedMDRENSSwapParameterInfo, len(samplers)-1)
	for i := range params {
		params[i] = &multichain.ThermostattedMDRENSSwapParameterInfo{
			MDRENSSwapParameterInfo: multichain.MDRENSSwapParameterInfo{
				Sampler1:         samplers[i],
				Sampler2:         samplers[i+1],
				Timestep:         cfg.RENS.Timestep,
				TrajectoryLength: cfg.RENS.TrajectoryLength,
				Gradient:         interpolateGradients(pdfs[i], pdfs[i+1]),
			},
			CollisionProbability: cfg.RENS.CollisionProbability,
			CollisionInterval:    cfg.RENS.CollisionInterval,
		}
	}
	return multichain.NewThermostattedMDRENS(samplers, params, nil, cfg.Seed)
}

// Build assembles a runnable experiment from a validated config.
func (r *Registry) Build(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	makeSampler, ok := r.samplers[cfg.Sampler]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown sampler: %s", cfg.Sampler)
	}
	makeAlgorithm, ok := r.algorithms[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown algorithm: %s", cfg.Algorithm)
	}
	makeScheme, ok := r.schemes[cfg.Scheme]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown scheme: %s", cfg.Scheme)
	}

	pdfs := make([]mc.GradientDensity, len(cfg.Chains))
	samplers := make([]mc.Sampler, len(cfg.Chains))
	for i, ch := range cfg.Chains {
		pdf, err := density.NewNormal(ch.Mu, ch.Sigma)
		if err != nil {
			return nil, err
		}
		pdfs[i] = pdf

		rng := rand.New(rand.NewSource(cfg.Seed + int64(i) + 1))
		s, err := makeSampler(pdf, ch, rng)
		if err != nil {
			return nil, err
		}
		samplers[i] = s
	}

	alg, err := makeAlgorithm(cfg, samplers, pdfs)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		Algorithm:    alg,
		Scheme:       makeScheme(alg.(multichain.Swapper), cfg.Seed),
		Samples:      cfg.Samples,
		SwapInterval: cfg.SwapInterval,
	}, nil
}
