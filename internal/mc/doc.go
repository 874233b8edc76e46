// Package mc defines the core value types and contracts for Monte Carlo
// equilibrium sampling:
//
//   - [Vector]: dense coordinate/momentum vector
//   - [State]: phase-space point (position, optional momentum)
//   - [EnsembleState]: one state per chain of a multi-chain simulation
//   - [Density]: log-probability a chain samples from
//   - [Sampler]: single-chain sampler contract
//   - [Trajectory], [TrajectoryBuilder]: phase-space trajectories with
//     heat/work bookkeeping
//
// States and trajectories are immutable by convention: a sampler replaces
// its current state rather than mutating it, and trajectory builders clone
// every state they are handed, so a finished trajectory never aliases a
// live chain state.
package mc
