package astar

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Truncated bool
	Path      []NodeType
	StepIndex int
}

// Stepper runs the same search as Search one expansion at a time, for UIs
// and debugging tools. It is not safe for concurrent use.
type Stepper[NodeType comparable] struct {
	state         *search[NodeType]
	maxExpansions int
	stepCount     int
}

// NewStepper creates a stepper positioned before the first expansion.
// Only WithMaxExpansions is honoured.
func NewStepper[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	opts := applyOptions(options)
	return &Stepper[NodeType]{
		state:         newSearch(graph, startNode, goalNode, heuristic),
		maxExpansions: opts.MaxExpansions,
	}
}

// Step advances the search by one node expansion and returns a snapshot.
// StepIndex counts expansions, so the call that finds the open set empty
// does not advance it.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper[NodeType]) Step() StepSnapshot[NodeType] {
	state := s.state
	if !state.done && state.overLimit(s.maxExpansions) {
		state.truncate()
	}
	if state.done {
		return s.snapshot(-1)
	}

	current, ok := state.expand()
	if !ok {
		return s.snapshot(-1)
	}
	s.stepCount++
	return s.snapshot(current)
}

// Result returns what Search would have returned at this point.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	return s.state.result()
}

func (s *Stepper[NodeType]) snapshot(current int32) StepSnapshot[NodeType] {
	state := s.state
	snap := StepSnapshot[NodeType]{
		Open:      make(map[NodeType]bool),
		Closed:    make(map[NodeType]bool),
		CameFrom:  make(map[NodeType]NodeType),
		Done:      state.done,
		Found:     state.found,
		Truncated: state.truncated,
		StepIndex: s.stepCount,
	}
	if current >= 0 {
		snap.Current = state.nodes[current].id
	}
	for _, n := range state.nodes {
		if n.closed {
			snap.Closed[n.id] = true
		} else {
			snap.Open[n.id] = true
		}
		if n.parent >= 0 {
			snap.CameFrom[n.id] = state.nodes[n.parent].id
		}
	}
	if state.found {
		snap.Path = state.result().Path
	}
	return snap
}
