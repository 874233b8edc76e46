package multichain

import (
	"fmt"

	"github.com/san-kum/remc/internal/mc"
)

// InterpolationFactory turns a switching protocol and a total switching
// time into the time-dependent functions a non-equilibrium trajectory runs
// under.
type InterpolationFactory struct {
	protocol Protocol
	tau      float64
}

func NewInterpolationFactory(protocol Protocol, tau float64) (*InterpolationFactory, error) {
	if protocol == nil {
		return nil, fmt.Errorf("multichain: nil protocol")
	}
	if tau <= 0 {
		return nil, fmt.Errorf("multichain: switching time must be positive, got %g", tau)
	}
	return &InterpolationFactory{protocol: protocol, tau: tau}, nil
}

func (f *InterpolationFactory) Protocol() Protocol { return f.protocol }
func (f *InterpolationFactory) Tau() float64       { return f.tau }

// BuildGradient wraps gradient(q, lambda), with gradient(q, 0) = grad E1(q)
// and gradient(q, 1) = grad E2(q), into a time-dependent gradient
// G(q, t) = gradient(q, protocol(t, tau)).
func (f *InterpolationFactory) BuildGradient(gradient func(q mc.Vector, lambda float64) mc.Vector) (*Gradient, error) {
	if gradient == nil {
		return nil, fmt.Errorf("multichain: nil gradient")
	}
	return &Gradient{gradient: gradient, protocol: f.protocol, tau: f.tau}, nil
}

// BuildTemperature wraps temperature(lambda), with temperature(0) = T1 and
// temperature(1) = T2, into a time-dependent schedule T(t).
func (f *InterpolationFactory) BuildTemperature(temperature func(lambda float64) float64) (func(t float64) float64, error) {
	if temperature == nil {
		return nil, fmt.Errorf("multichain: nil temperature")
	}
	return func(t float64) float64 {
		return temperature(f.protocol(t, f.tau))
	}, nil
}

// Gradient is a time-dependent potential gradient built from an
// interpolation protocol. It satisfies integrators.Gradient.
type Gradient struct {
	gradient func(q mc.Vector, lambda float64) mc.Vector
	protocol Protocol
	tau      float64
}

func (g *Gradient) Evaluate(q mc.Vector, t float64) mc.Vector {
	return g.gradient(q, g.protocol(t, g.tau))
}
