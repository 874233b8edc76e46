package mc

// Density is the probability density a chain samples from. Implementations
// live outside the core; the engine only ever evaluates log-probabilities.
type Density interface {
	LogProb(position Vector) float64
}

// GradientDensity additionally exposes the gradient of the negative
// log-probability, as required by dynamics-based samplers.
type GradientDensity interface {
	Density
	Gradient(position Vector) Vector
}

// Energy is the negative log-probability of a position under a density.
func Energy(d Density, position Vector) float64 {
	return -d.LogProb(position)
}
