// Package viz renders sample traces and histograms for the terminal.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// Trace plots one chain's sampled coordinate against the step index.
func Trace(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Histogram renders a horizontal-bar histogram of the samples.
func Histogram(data []float64, bins, width int, caption string) string {
	if len(data) == 0 || bins < 1 {
		return ""
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	counts := make([]int, bins)
	binWidth := (hi - lo) / float64(bins)
	for _, v := range data {
		b := int((v - lo) / binWidth)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	var sb strings.Builder
	for i, c := range counts {
		center := lo + (float64(i)+0.5)*binWidth
		n := 0
		if max > 0 {
			n = c * width / max
		}
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%8.2f ", center)))
		sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
		sb.WriteString("\n")
	}
	sb.WriteString(captionStyle.Render(caption))
	return sb.String()
}

// RateBar renders per-pair swap acceptance rates as labelled bars.
func RateBar(rates []float64, width int) string {
	var sb strings.Builder
	for i, r := range rates {
		n := int(r * float64(width))
		sb.WriteString(labelStyle.Render(fmt.Sprintf("pair %d ", i)))
		sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
		sb.WriteString(captionStyle.Render(fmt.Sprintf(" %.3f", r)))
		sb.WriteString("\n")
	}
	return sb.String()
}
