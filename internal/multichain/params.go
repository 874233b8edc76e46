package multichain

import (
	"fmt"

	"github.com/san-kum/remc/internal/mc"
)

// Protocol maps trajectory time t in [0, tau] to the work parameter
// lambda in [0, 1]. Implementations must satisfy protocol(0, tau) = 0 and
// protocol(tau, tau) = 1; monotonicity is expected but not enforced.
type Protocol func(t, tau float64) float64

// LinearProtocol is the default switching protocol, lambda = t / tau.
func LinearProtocol(t, tau float64) float64 { return t / tau }

// Reverse runs a protocol backwards in time, so a trajectory started from
// the second chain ends under the first chain's potential.
func Reverse(p Protocol) Protocol {
	return func(t, tau float64) float64 { return p(tau-t, tau) }
}

// RESwapParameterInfo configures one exchangeable pair for plain replica
// exchange. No parameters beyond the two chains are needed.
type RESwapParameterInfo struct {
	Sampler1 mc.Sampler
	Sampler2 mc.Sampler
}

func (p *RESwapParameterInfo) validate() error {
	if p.Sampler1 == nil || p.Sampler2 == nil {
		return fmt.Errorf("multichain: pair references a nil sampler")
	}
	if p.Sampler1 == p.Sampler2 {
		return fmt.Errorf("multichain: pair references the same sampler twice")
	}
	return nil
}

// MDRENSSwapParameterInfo configures one pair for MD-driven RENS.
// Gradient(q, lambda) must interpolate the two chains' potential gradients:
// Gradient(q, 0) is chain 1's, Gradient(q, 1) is chain 2's. A nil Protocol
// means LinearProtocol; a nil mass vector means unit masses.
type MDRENSSwapParameterInfo struct {
	Sampler1         mc.Sampler
	Sampler2         mc.Sampler
	Timestep         float64
	TrajectoryLength int
	Gradient         func(q mc.Vector, lambda float64) mc.Vector
	Masses           mc.Vector
	Protocol         Protocol
}

func (p *MDRENSSwapParameterInfo) validate() error {
	if p.Sampler1 == nil || p.Sampler2 == nil {
		return fmt.Errorf("multichain: pair references a nil sampler")
	}
	if p.Sampler1 == p.Sampler2 {
		return fmt.Errorf("multichain: pair references the same sampler twice")
	}
	if p.Timestep <= 0 {
		return fmt.Errorf("multichain: timestep must be positive, got %g", p.Timestep)
	}
	if p.TrajectoryLength < 1 {
		return fmt.Errorf("multichain: trajectory length must be >= 1, got %d", p.TrajectoryLength)
	}
	if p.Gradient == nil {
		return fmt.Errorf("multichain: nil interpolation gradient")
	}
	return nil
}

func (p *MDRENSSwapParameterInfo) protocol() Protocol {
	if p.Protocol == nil {
		return LinearProtocol
	}
	return p.Protocol
}

func (p *MDRENSSwapParameterInfo) tau() float64 {
	return float64(p.TrajectoryLength) * p.Timestep
}

// ThermostattedMDRENSSwapParameterInfo extends the MD-RENS parameters with
// an Andersen thermostat. A nil Temperature schedule linearly interpolates
// the two chains' temperatures in the work parameter.
type ThermostattedMDRENSSwapParameterInfo struct {
	MDRENSSwapParameterInfo
	Temperature          func(lambda float64) float64
	CollisionProbability float64
	CollisionInterval    int
}

func (p *ThermostattedMDRENSSwapParameterInfo) validate() error {
	if err := p.MDRENSSwapParameterInfo.validate(); err != nil {
		return err
	}
	if p.CollisionProbability < 0 || p.CollisionProbability > 1 {
		return fmt.Errorf("multichain: collision probability must be in [0,1], got %g", p.CollisionProbability)
	}
	if p.CollisionInterval < 1 {
		return fmt.Errorf("multichain: collision interval must be >= 1, got %d", p.CollisionInterval)
	}
	return nil
}

func (p *ThermostattedMDRENSSwapParameterInfo) temperature() func(float64) float64 {
	if p.Temperature != nil {
		return p.Temperature
	}
	t1 := p.Sampler1.Temperature()
	t2 := p.Sampler2.Temperature()
	return func(lambda float64) float64 { return (1-lambda)*t1 + lambda*t2 }
}
