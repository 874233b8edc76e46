package config

// Presets are ready-made simulations keyed by algorithm and name.
var Presets = map[string]map[string]*Config{
	"re": {
		"twin": {
			Algorithm: "re", Sampler: "rwmc", Scheme: "alternating",
			Samples: 5000, SwapInterval: 5, Seed: 42,
			Chains: []ChainConfig{
				{Sigma: 1.0, Temperature: 1.0, Stepsize: 1.0},
				{Sigma: 1.0, Temperature: 1.0, Stepsize: 1.0},
			},
		},
		"ladder": {
			Algorithm: "re", Sampler: "rwmc", Scheme: "alternating",
			Samples: 10000, SwapInterval: 5, Seed: 42,
			Chains: []ChainConfig{
				{Sigma: 1.0, Temperature: 1.0, Stepsize: 1.0},
				{Sigma: 1.0, Temperature: 2.0, Stepsize: 1.5},
				{Sigma: 1.0, Temperature: 4.0, Stepsize: 2.0},
				{Sigma: 1.0, Temperature: 8.0, Stepsize: 3.0},
			},
		},
		"widths": {
			Algorithm: "re", Sampler: "rwmc", Scheme: "alternating",
			Samples: 10000, SwapInterval: 5, Seed: 42,
			Chains: []ChainConfig{
				{Sigma: 1.0, Temperature: 1.0, Stepsize: 1.0},
				{Sigma: 2.0, Temperature: 1.0, Stepsize: 2.0},
			},
		},
	},
	"mdrens": {
		"gaussians": {
			Algorithm: "mdrens", Sampler: "hmc", Scheme: "alternating",
			Samples: 5000, SwapInterval: 5, Seed: 42,
			Chains: []ChainConfig{
				{Sigma: 0.4472, Temperature: 1.0, Timestep: 0.6},
				{Sigma: 0.5774, Temperature: 1.0, Timestep: 0.7},
				{Sigma: 1.0, Temperature: 1.0, Timestep: 0.6},
			},
			RENS: RENSConfig{Timestep: 0.3, TrajectoryLength: 30},
		},
	},
	"trens": {
		"gaussians": {
			Algorithm: "trens", Sampler: "hmc", Scheme: "alternating",
			Samples: 5000, SwapInterval: 5, Seed: 42,
			Chains: []ChainConfig{
				{Sigma: 0.4472, Temperature: 1.0, Timestep: 0.6},
				{Sigma: 0.5774, Temperature: 1.0, Timestep: 0.7},
				{Sigma: 1.0, Temperature: 1.0, Timestep: 0.6},
			},
			RENS: RENSConfig{
				Timestep: 0.3, TrajectoryLength: 30,
				CollisionProbability: 0.1, CollisionInterval: 1,
			},
		},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	return names
}
