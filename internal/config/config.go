package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSamples          = 5000
	DefaultSwapInterval     = 5
	DefaultStepsize         = 1.0
	DefaultTimestep         = 0.3
	DefaultTrajectoryLength = 30
	DefaultHMCLength        = 20
	DefaultCollisionProb    = 0.1
	DefaultCollisionEvery   = 1
)

// Config describes one replica-exchange simulation: the chains, the local
// sampler, the exchange algorithm and the swap schedule.
type Config struct {
	Algorithm    string        `yaml:"algorithm"` // re | mdrens | trens
	Sampler      string        `yaml:"sampler"`   // rwmc | hmc
	Scheme       string        `yaml:"scheme"`    // alternating | random
	Samples      int           `yaml:"samples"`
	SwapInterval int           `yaml:"swap_interval"`
	Seed         int64         `yaml:"seed"`
	Chains       []ChainConfig `yaml:"chains"`
	RENS         RENSConfig    `yaml:"rens"`
}

// ChainConfig is one chain's target density and sampling parameters.
type ChainConfig struct {
	Sigma       float64 `yaml:"sigma"`
	Mu          float64 `yaml:"mu"`
	Temperature float64 `yaml:"temperature"`
	Position    float64 `yaml:"position"`
	Stepsize    float64 `yaml:"stepsize"`
	Timestep    float64 `yaml:"timestep"`
}

// RENSConfig holds the switching-trajectory parameters shared by all pairs.
type RENSConfig struct {
	Timestep             float64 `yaml:"timestep"`
	TrajectoryLength     int     `yaml:"trajectory_length"`
	CollisionProbability float64 `yaml:"collision_probability"`
	CollisionInterval    int     `yaml:"collision_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:    "re",
		Sampler:      "rwmc",
		Scheme:       "alternating",
		Samples:      DefaultSamples,
		SwapInterval: DefaultSwapInterval,
		Seed:         42,
		Chains: []ChainConfig{
			{Sigma: 1.0, Temperature: 1.0, Stepsize: DefaultStepsize},
			{Sigma: 2.0, Temperature: 1.0, Stepsize: DefaultStepsize},
		},
		RENS: RENSConfig{
			Timestep:             DefaultTimestep,
			TrajectoryLength:     DefaultTrajectoryLength,
			CollisionProbability: DefaultCollisionProb,
			CollisionInterval:    DefaultCollisionEvery,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that cannot produce a runnable
// simulation before any sampler is constructed.
func (c *Config) Validate() error {
	if len(c.Chains) < 2 {
		return fmt.Errorf("config: need at least two chains, got %d", len(c.Chains))
	}
	if c.Samples < 1 {
		return fmt.Errorf("config: samples must be >= 1, got %d", c.Samples)
	}
	if c.SwapInterval < 1 {
		return fmt.Errorf("config: swap_interval must be >= 1, got %d", c.SwapInterval)
	}
	for i, ch := range c.Chains {
		if ch.Sigma <= 0 {
			return fmt.Errorf("config: chain %d: sigma must be positive, got %g", i, ch.Sigma)
		}
		if ch.Temperature <= 0 {
			return fmt.Errorf("config: chain %d: temperature must be positive, got %g", i, ch.Temperature)
		}
	}
	return nil
}

// StepsizeOr returns the chain's stepsize or the default.
func (ch ChainConfig) StepsizeOr() float64 {
	if ch.Stepsize > 0 {
		return ch.Stepsize
	}
	return DefaultStepsize
}

// TimestepOr returns the chain's HMC timestep or the default.
func (ch ChainConfig) TimestepOr() float64 {
	if ch.Timestep > 0 {
		return ch.Timestep
	}
	return DefaultTimestep
}
