// Package optim tunes sampler parameters by exhaustive grid search, e.g.
// picking a Metropolis stepsize whose local acceptance rate lands near a
// target.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/remc/internal/experiment"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Objective scores a finished run; lower is better.
type Objective func(result *experiment.Result) float64

// TargetAcceptance scores by distance of the mean local acceptance rate
// from a target (0.5 is a common choice for random-walk chains).
func TargetAcceptance(target float64) Objective {
	return func(result *experiment.Result) float64 {
		if len(result.LocalRates) == 0 {
			return math.Inf(1)
		}
		sum := 0.0
		for _, r := range result.LocalRates {
			sum += r
		}
		return math.Abs(sum/float64(len(result.LocalRates)) - target)
	}
}

func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	objective Objective,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, objective, &best, &bestParams)

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val := objective(result)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.searchRecursive(ctx, depth+1, newParams, buildExperiment, objective, best, bestParams)
	}
}
