package mc

// PropagationResult describes the outcome of a deterministic or stochastic
// propagation of a state.
type PropagationResult interface {
	Initial() *State
	Final() *State
	// Heat produced during the propagation, in reduced units (energy over
	// temperature).
	Heat() float64
}

// EndpointResult is a propagation result keeping only the endpoints.
type EndpointResult struct {
	initial *State
	final   *State
	heat    float64
}

func NewEndpointResult(initial, final *State, heat float64) (*EndpointResult, error) {
	if err := CheckState(initial, 0); err != nil {
		return nil, err
	}
	if err := CheckState(final, 0); err != nil {
		return nil, err
	}
	return &EndpointResult{initial: initial, final: final, heat: heat}, nil
}

func (r *EndpointResult) Initial() *State { return r.initial }
func (r *EndpointResult) Final() *State   { return r.final }
func (r *EndpointResult) Heat() float64   { return r.heat }

// Trajectory is an ordered, append-only sequence of states in temporal
// order, plus heat and work accumulated along the way. A completed
// trajectory has at least the initial and final state.
type Trajectory struct {
	states []*State
	heat   float64
	work   float64
}

// NewTrajectory builds a trajectory from states in temporal order. The
// states are adopted as-is; callers that need isolation clone first (the
// builders do).
func NewTrajectory(states []*State, heat, work float64) *Trajectory {
	return &Trajectory{states: states, heat: heat, work: work}
}

func (t *Trajectory) Len() int           { return len(t.states) }
func (t *Trajectory) At(i int) *State    { return t.states[i] }
func (t *Trajectory) Initial() *State    { return t.states[0] }
func (t *Trajectory) Final() *State      { return t.states[len(t.states)-1] }
func (t *Trajectory) Heat() float64      { return t.heat }
func (t *Trajectory) Work() float64      { return t.work }
func (t *Trajectory) SetHeat(h float64)  { t.heat = h }
func (t *Trajectory) SetWork(w float64)  { t.work = w }
func (t *Trajectory) AddHeat(dh float64) { t.heat += dh }
func (t *Trajectory) AddWork(dw float64) { t.work += dw }

// TrajectoryBuilder accumulates states in temporal order and yields the
// finished result. Implementations clone every incoming state.
type TrajectoryBuilder interface {
	AddInitialState(s *State)
	AddIntermediateState(s *State)
	AddFinalState(s *State)
	SetHeat(heat float64)
	Product() (PropagationResult, error)
}

// NewBuilder is the trajectory builder factory. full selects a builder
// retaining every intermediate state; otherwise only the endpoints are
// kept, which saves memory on long switching trajectories.
func NewBuilder(full bool) TrajectoryBuilder {
	if full {
		return &FullTrajectoryBuilder{}
	}
	return &ShortTrajectoryBuilder{}
}

// FullTrajectoryBuilder keeps the complete state sequence.
type FullTrajectoryBuilder struct {
	states []*State
	heat   float64
}

func (b *FullTrajectoryBuilder) AddInitialState(s *State) {
	b.states = append([]*State{s.Clone()}, b.states...)
}

func (b *FullTrajectoryBuilder) AddIntermediateState(s *State) {
	b.states = append(b.states, s.Clone())
}

func (b *FullTrajectoryBuilder) AddFinalState(s *State) {
	b.states = append(b.states, s.Clone())
}

func (b *FullTrajectoryBuilder) SetHeat(heat float64) { b.heat = heat }

func (b *FullTrajectoryBuilder) Product() (PropagationResult, error) {
	if len(b.states) < 2 {
		return nil, ErrEmptyTrajectory
	}
	return NewTrajectory(b.states, b.heat, 0), nil
}

// ShortTrajectoryBuilder discards intermediate states and requires exactly
// an initial and a final state at finalize time.
type ShortTrajectoryBuilder struct {
	states []*State
	heat   float64
}

func (b *ShortTrajectoryBuilder) AddInitialState(s *State) {
	b.states = append([]*State{s.Clone()}, b.states...)
}

func (b *ShortTrajectoryBuilder) AddIntermediateState(s *State) {}

func (b *ShortTrajectoryBuilder) AddFinalState(s *State) {
	b.states = append(b.states, s.Clone())
}

func (b *ShortTrajectoryBuilder) SetHeat(heat float64) { b.heat = heat }

func (b *ShortTrajectoryBuilder) Product() (PropagationResult, error) {
	if len(b.states) != 2 {
		return nil, ErrShortTrajectory
	}
	return NewEndpointResult(b.states[0], b.states[1], b.heat)
}
