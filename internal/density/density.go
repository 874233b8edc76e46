// Package density provides the analytic probability densities used by the
// samplers. Parameter domains are validated at assignment time so a bad
// scale never reaches a sampling step.
package density

import (
	"fmt"
	"math"

	"github.com/san-kum/remc/internal/mc"
)

const log2Pi = 1.8378770664093453

// Normal is a one-dimensional Gaussian density N(mu, sigma^2).
type Normal struct {
	mu    float64
	sigma float64
}

func NewNormal(mu, sigma float64) (*Normal, error) {
	n := &Normal{mu: mu, sigma: 1}
	if err := n.SetSigma(sigma); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Normal) Mu() float64    { return n.mu }
func (n *Normal) Sigma() float64 { return n.sigma }

func (n *Normal) SetMu(mu float64) { n.mu = mu }

func (n *Normal) SetSigma(sigma float64) error {
	if sigma <= 0 {
		return fmt.Errorf("density: sigma must be positive, got %g", sigma)
	}
	n.sigma = sigma
	return nil
}

func (n *Normal) LogProb(x mc.Vector) float64 {
	lp := 0.0
	for _, xi := range x {
		z := (xi - n.mu) / n.sigma
		lp += -0.5*z*z - math.Log(n.sigma) - 0.5*log2Pi
	}
	return lp
}

// Gradient returns the gradient of the negative log-probability.
func (n *Normal) Gradient(x mc.Vector) mc.Vector {
	g := make(mc.Vector, len(x))
	inv := 1.0 / (n.sigma * n.sigma)
	for i, xi := range x {
		g[i] = (xi - n.mu) * inv
	}
	return g
}

// MultivariateGaussian is a Gaussian with diagonal covariance.
type MultivariateGaussian struct {
	mu     mc.Vector
	sigmas mc.Vector
}

func NewMultivariateGaussian(mu, sigmas mc.Vector) (*MultivariateGaussian, error) {
	if len(mu) != len(sigmas) {
		return nil, fmt.Errorf("density: mean and sigma dimensions differ (%d vs %d)", len(mu), len(sigmas))
	}
	for i, s := range sigmas {
		if s <= 0 {
			return nil, fmt.Errorf("density: sigma[%d] must be positive, got %g", i, s)
		}
	}
	return &MultivariateGaussian{mu: mu.Clone(), sigmas: sigmas.Clone()}, nil
}

func (g *MultivariateGaussian) Dim() int { return len(g.mu) }

func (g *MultivariateGaussian) LogProb(x mc.Vector) float64 {
	lp := 0.0
	for i, xi := range x {
		z := (xi - g.mu[i]) / g.sigmas[i]
		lp += -0.5*z*z - math.Log(g.sigmas[i]) - 0.5*log2Pi
	}
	return lp
}

func (g *MultivariateGaussian) Gradient(x mc.Vector) mc.Vector {
	out := make(mc.Vector, len(x))
	for i, xi := range x {
		out[i] = (xi - g.mu[i]) / (g.sigmas[i] * g.sigmas[i])
	}
	return out
}
