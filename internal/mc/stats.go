package mc

// SwapStats tracks accepted/attempted exchange counts per configured pair.
type SwapStats struct {
	attempted []int
	accepted  []int
}

func NewSwapStats(pairs int) *SwapStats {
	return &SwapStats{
		attempted: make([]int, pairs),
		accepted:  make([]int, pairs),
	}
}

// Update records one swap attempt for pair i.
func (s *SwapStats) Update(i int, accepted bool) {
	s.attempted[i]++
	if accepted {
		s.accepted[i]++
	}
}

func (s *SwapStats) Attempted(i int) int { return s.attempted[i] }
func (s *SwapStats) Accepted(i int) int  { return s.accepted[i] }

// AcceptanceRates returns accepted/attempted per pair; pairs with no
// attempts report zero.
func (s *SwapStats) AcceptanceRates() []float64 {
	rates := make([]float64, len(s.attempted))
	for i := range rates {
		if s.attempted[i] > 0 {
			rates[i] = float64(s.accepted[i]) / float64(s.attempted[i])
		}
	}
	return rates
}

func (s *SwapStats) Reset() {
	for i := range s.attempted {
		s.attempted[i] = 0
		s.accepted[i] = 0
	}
}
