// Package numeric provides clamped exponentials and small math helpers
// shared by the samplers. Exponent arguments are saturated to the range
// representable by float64 so that acceptance probabilities stay finite
// even for pathological energy differences.
package numeric

import (
	"math"
	"math/rand"
)

const (
	// ExpMax is the largest exponent fed to math.Exp before clamping.
	ExpMax = 709.0
	// ExpMin mirrors ExpMax on the negative side.
	ExpMin = -709.0

	// LogFloor replaces log(x) for x at or below zero.
	LogFloor = -708.0
)

// Exp computes exp(x) with the argument clamped to [ExpMin, ExpMax].
func Exp(x float64) float64 {
	if x > ExpMax {
		x = ExpMax
	} else if x < ExpMin {
		x = ExpMin
	}
	return math.Exp(x)
}

// Log computes log(x), clamped so non-positive inputs yield LogFloor
// instead of -Inf or NaN.
func Log(x float64) float64 {
	if x <= 0 {
		return LogFloor
	}
	return math.Log(x)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Kinetic returns the kinetic energy 0.5 * sum(p_i^2 / m_i). A nil mass
// vector means unit masses.
func Kinetic(momentum, masses []float64) float64 {
	if momentum == nil {
		return 0
	}
	k := 0.0
	for i, p := range momentum {
		m := 1.0
		if masses != nil && i < len(masses) {
			m = masses[i]
		}
		k += 0.5 * p * p / m
	}
	return k
}

// MaxwellDraw samples a momentum vector from the Maxwell distribution at
// temperature T: p_i ~ N(0, sqrt(m_i * T)).
func MaxwellDraw(rng *rand.Rand, dim int, temperature float64, masses []float64) []float64 {
	p := make([]float64, dim)
	for i := range p {
		m := 1.0
		if masses != nil && i < len(masses) {
			m = masses[i]
		}
		p[i] = rng.NormFloat64() * math.Sqrt(m*temperature)
	}
	return p
}
