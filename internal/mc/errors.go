package mc

import "errors"

// Contract errors for sampler and trajectory operations.
var (
	// ErrNilState indicates a nil state where a valid one is required.
	ErrNilState = errors.New("mc: nil state")

	// ErrDimensionMismatch indicates a state whose dimensionality differs
	// from the chain's fixed dimension.
	ErrDimensionMismatch = errors.New("mc: state dimension mismatch")

	// ErrInvalidState indicates NaN or Inf components in a state.
	ErrInvalidState = errors.New("mc: invalid state (NaN or Inf detected)")

	// ErrShortTrajectory indicates a short trajectory builder finalized
	// with a state count other than two.
	ErrShortTrajectory = errors.New("mc: short trajectory requires exactly two states")

	// ErrEmptyTrajectory indicates a completed trajectory with fewer than
	// two states.
	ErrEmptyTrajectory = errors.New("mc: trajectory requires at least initial and final state")
)
