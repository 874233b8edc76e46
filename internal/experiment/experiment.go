// Package experiment assembles samplers, exchange algorithms and swap
// schemes from a config and drives the simulation loop.
package experiment

import (
	"context"

	"github.com/san-kum/remc/internal/mc"
	"github.com/san-kum/remc/internal/metrics"
	"github.com/san-kum/remc/internal/multichain"
)

// Experiment is one runnable simulation: local sampling on every chain,
// with a scheduled swap round every SwapInterval-th step.
type Experiment struct {
	Algorithm    Algorithm
	Scheme       multichain.SwapScheme
	Samples      int
	SwapInterval int
	Metrics      []metrics.Metric
	Observers    []Observer
}

// Observer is called after every sampling step with the fresh ensemble
// state.
type Observer func(states mc.EnsembleState, step int)

// Result collects the outcome of a finished run.
type Result struct {
	States          []mc.EnsembleState
	AcceptanceRates []float64
	LocalRates      []float64
	Metrics         map[string]float64
	StepsTaken      int
}

func (e *Experiment) AddMetric(m metrics.Metric) { e.Metrics = append(e.Metrics, m) }
func (e *Experiment) AddObserver(o Observer)     { e.Observers = append(e.Observers, o) }

type localRateReporter interface {
	AcceptanceRate() float64
}

// Run executes the driving loop: every SwapInterval-th step performs a
// scheduled swap round before the local moves, so chains mix both within
// and across replicas.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		States:  make([]mc.EnsembleState, 0, e.Samples),
		Metrics: make(map[string]float64),
	}

	for _, m := range e.Metrics {
		m.Reset()
	}

	for i := 0; i < e.Samples; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if i%e.SwapInterval == 0 {
			if err := e.Scheme.SwapAll(); err != nil {
				return result, err
			}
		}

		states := e.Algorithm.Sample()
		result.States = append(result.States, states)
		result.StepsTaken++

		for _, m := range e.Metrics {
			m.Observe(states, i)
		}
		for _, o := range e.Observers {
			o(states, i)
		}
	}

	result.AcceptanceRates = e.Algorithm.AcceptanceRates()
	for _, s := range e.Algorithm.Samplers() {
		if r, ok := s.(localRateReporter); ok {
			result.LocalRates = append(result.LocalRates, r.AcceptanceRate())
		}
	}
	for _, m := range e.Metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
