package multichain

import "math/rand"

// Swapper is the slice of the exchange engine a scheduling policy needs.
type Swapper interface {
	NumPairs() int
	SwapRound(indices []int) error
}

// SwapScheme decides which chain pairs attempt an exchange on each round.
type SwapScheme interface {
	// SwapAll attempts every pair nominated by the current schedule and
	// advances the schedule for the next call.
	SwapAll() error
}

// AlternatingAdjacentSwapScheme arranges the pairs along a line and
// alternates between the even-offset pairs (0, 2, 4, ...) and the
// odd-offset pairs (1, 3, 5, ...) on successive calls, so chains 1-2, 3-4,
// ... swap on one round and 2-3, 4-5, ... on the next. Within one round no
// chain index appears twice. With a single configured pair both rounds
// attempt that pair.
type AlternatingAdjacentSwapScheme struct {
	algorithm Swapper
	even      []int
	odd       []int
	useEven   bool
}

func NewAlternatingAdjacentSwapScheme(algorithm Swapper) *AlternatingAdjacentSwapScheme {
	s := &AlternatingAdjacentSwapScheme{algorithm: algorithm, useEven: true}
	n := algorithm.NumPairs()
	if n == 1 {
		s.even = []int{0}
		s.odd = []int{0}
		return s
	}
	for i := 0; i < n; i += 2 {
		s.even = append(s.even, i)
	}
	for i := 1; i < n; i += 2 {
		s.odd = append(s.odd, i)
	}
	return s
}

func (s *AlternatingAdjacentSwapScheme) SwapAll() error {
	indices := s.odd
	if s.useEven {
		indices = s.even
	}
	s.useEven = !s.useEven
	return s.algorithm.SwapRound(indices)
}

// RandomAdjacentSwapScheme picks one of the two disjoint adjacent-pair
// sets at random on each call.
type RandomAdjacentSwapScheme struct {
	inner *AlternatingAdjacentSwapScheme
	rng   *rand.Rand
}

func NewRandomAdjacentSwapScheme(algorithm Swapper, seed int64) *RandomAdjacentSwapScheme {
	return &RandomAdjacentSwapScheme{
		inner: NewAlternatingAdjacentSwapScheme(algorithm),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (s *RandomAdjacentSwapScheme) SwapAll() error {
	s.inner.useEven = s.rng.Intn(2) == 0
	return s.inner.SwapAll()
}
