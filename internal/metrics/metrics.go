// Package metrics collects running diagnostics over a multi-chain sample
// stream.
package metrics

import (
	"math"

	"github.com/san-kum/remc/internal/mc"
)

type Metric interface {
	Name() string
	Observe(states mc.EnsembleState, step int)
	Value() float64
	Reset()
}

// ChainMean tracks the running mean of one coordinate of one chain.
type ChainMean struct {
	name  string
	chain int
	coord int
	sum   float64
	count int
}

func NewChainMean(name string, chain, coord int) *ChainMean {
	return &ChainMean{name: name, chain: chain, coord: coord}
}

func (m *ChainMean) Name() string { return m.name }

func (m *ChainMean) Observe(states mc.EnsembleState, step int) {
	if m.chain >= len(states) || m.coord >= states[m.chain].Dim() {
		return
	}
	m.sum += states[m.chain].Position[m.coord]
	m.count++
}

func (m *ChainMean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *ChainMean) Reset() {
	m.sum = 0
	m.count = 0
}

// ChainVariance tracks the running variance of one coordinate of one chain
// using Welford's algorithm.
type ChainVariance struct {
	name  string
	chain int
	coord int
	count int
	mean  float64
	m2    float64
}

func NewChainVariance(name string, chain, coord int) *ChainVariance {
	return &ChainVariance{name: name, chain: chain, coord: coord}
}

func (m *ChainVariance) Name() string { return m.name }

func (m *ChainVariance) Observe(states mc.EnsembleState, step int) {
	if m.chain >= len(states) || m.coord >= states[m.chain].Dim() {
		return
	}
	x := states[m.chain].Position[m.coord]
	m.count++
	delta := x - m.mean
	m.mean += delta / float64(m.count)
	m.m2 += delta * (x - m.mean)
}

func (m *ChainVariance) Value() float64 {
	if m.count < 2 {
		return 0
	}
	return m.m2 / float64(m.count-1)
}

func (m *ChainVariance) Stddev() float64 { return math.Sqrt(m.Value()) }

func (m *ChainVariance) Reset() {
	m.count = 0
	m.mean = 0
	m.m2 = 0
}

// SwapRate reports the mean pairwise exchange acceptance rate; the rates
// come from the exchange engine's own counters.
type SwapRate struct {
	name  string
	rates func() []float64
}

func NewSwapRate(rates func() []float64) *SwapRate {
	return &SwapRate{name: "swap_rate", rates: rates}
}

func (m *SwapRate) Name() string { return m.name }

func (m *SwapRate) Observe(states mc.EnsembleState, step int) {}

func (m *SwapRate) Value() float64 {
	rates := m.rates()
	if len(rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

func (m *SwapRate) Reset() {}
