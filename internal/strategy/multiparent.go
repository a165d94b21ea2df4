package strategy

import "github.com/spatialkit/anchorage/pkg/types"

// Candidate is one parent a multi-parent strategy may hang its frame from:
// a reference (not ownership) to another frame, the base-relative offset of
// this frame under that parent, and an optional admission requirement.
type Candidate struct {
	Frame  *types.Frame
	Offset types.Offset

	// MinAccuracy is the loosest admissible drift bound for this parent.
	// A resolved parent reporting a larger bound is filtered out of
	// selection. AccuracyUnknown disables the requirement.
	MinAccuracy types.Accuracy
}

// candidateSnap is one candidate's state captured at the start of an
// evaluation pass, so the whole pass sees a consistent picture even if a
// candidate flips mid-pass.
type candidateSnap struct {
	state    types.State
	accuracy types.Accuracy
	pose     types.Pose
	hasPose  bool
}

// MultiParent selects, among its candidate parents, the resolved one with
// the tightest drift bound and derives its frame's pose from it. Selection
// re-runs on every candidate notification. Ties go to the currently active
// parent if it is tied for best, otherwise to the first-listed candidate;
// both rules are deterministic, so re-evaluating an unchanged graph never
// hops.
type MultiParent struct {
	machine    *types.Machine
	candidates []Candidate

	active   int // index into candidates, -1 when no parent qualifies
	pose     types.Pose
	hasPose  bool
	accuracy types.Accuracy

	evaluating bool
}

// NewMultiParent builds a multi-parent strategy over the given candidates
// and subscribes to each candidate frame's strategy. Zero candidates is a
// configuration error (ErrNoCandidates); a nil candidate frame is
// ErrNilFrame. The initial selection pass runs before returning.
func NewMultiParent(candidates []Candidate) (*MultiParent, error) {
	if len(candidates) == 0 {
		return nil, types.ErrNoCandidates
	}
	for _, c := range candidates {
		if c.Frame == nil {
			return nil, types.ErrNilFrame
		}
	}

	s := &MultiParent{
		machine:    types.NewMachine(),
		candidates: append([]Candidate(nil), candidates...),
		active:     -1,
		accuracy:   types.AccuracyUnknown,
	}
	for _, c := range s.candidates {
		c.Frame.Strategy().Subscribe(func(types.State) { s.Evaluate() })
	}
	s.Evaluate()
	return s, nil
}

// Candidates returns a copy of the candidate list in declaration order.
func (s *MultiParent) Candidates() []Candidate {
	return append([]Candidate(nil), s.candidates...)
}

// Active returns the currently selected parent frame, or false when no
// candidate qualifies.
func (s *MultiParent) Active() (*types.Frame, bool) {
	if s.active < 0 {
		return nil, false
	}
	return s.candidates[s.active].Frame, true
}

// Evaluate runs one selection pass over a consistent snapshot of all
// candidates. It either adopts the best qualifying parent (hopping if the
// winner changed), refreshes the pose under an unchanged winner, or
// degrades toward lost with the last pose retained stale.
func (s *MultiParent) Evaluate() {
	if s.evaluating {
		// A notification fired by our own publish; the outer pass already
		// sees the final snapshot.
		return
	}
	s.evaluating = true
	defer func() { s.evaluating = false }()

	snaps := make([]candidateSnap, len(s.candidates))
	for i, c := range s.candidates {
		st := c.Frame.Strategy()
		sn := candidateSnap{state: st.State(), accuracy: st.Accuracy()}
		if p, err := st.Pose(); err == nil {
			sn.pose = p
			sn.hasPose = true
		}
		snaps[i] = sn
	}

	qualifies := func(i int) bool {
		sn := snaps[i]
		if sn.state != types.StateResolved || !sn.accuracy.Known() || !sn.hasPose {
			return false
		}
		if min := s.candidates[i].MinAccuracy; min.Known() && sn.accuracy > min {
			return false
		}
		return true
	}

	best := -1
	for i := range snaps {
		if !qualifies(i) {
			continue
		}
		if best == -1 || snaps[i].accuracy < snaps[best].accuracy {
			best = i
		}
	}

	if best == -1 {
		s.degrade(snaps)
		return
	}

	// An equally-good result never triggers a hop away from the current
	// parent; only a strictly tighter bound does.
	if s.active >= 0 && s.active != best && qualifies(s.active) &&
		snaps[s.active].accuracy == snaps[best].accuracy {
		best = s.active
	}

	pose := s.candidates[best].Offset.Apply(snaps[best].pose)
	changed := best != s.active || pose != s.pose || snaps[best].accuracy != s.accuracy

	s.active = best
	s.pose = pose
	s.hasPose = true
	s.accuracy = snaps[best].accuracy

	switch s.machine.State() {
	case types.StateUnresolved:
		_ = s.machine.Transition(types.StateResolving)
		_ = s.machine.Transition(types.StateResolved)
	case types.StateResolved:
		if changed {
			s.machine.Republish()
		}
	default:
		_ = s.machine.Transition(types.StateResolved)
	}
}

// degrade handles a pass with no qualifying candidate: accuracy becomes
// unknown, the last pose stays stale, and the machine mirrors the
// candidates' situation, going lost from resolved or starting to resolve
// from unresolved once any candidate is searching.
func (s *MultiParent) degrade(snaps []candidateSnap) {
	s.active = -1
	s.accuracy = types.AccuracyUnknown

	switch s.machine.State() {
	case types.StateResolved:
		_ = s.machine.Transition(types.StateLost)
	case types.StateUnresolved:
		for _, sn := range snaps {
			if sn.state != types.StateUnresolved {
				_ = s.machine.Transition(types.StateResolving)
				break
			}
		}
	}
}

// Kind returns the multi-parent discriminator.
func (s *MultiParent) Kind() string { return KindMultiParent }

// State returns the current alignment state.
func (s *MultiParent) State() types.State { return s.machine.State() }

// Subscribe registers a state-change observer.
func (s *MultiParent) Subscribe(fn types.StateFunc) { s.machine.Subscribe(fn) }

// Accuracy returns the adopted parent's drift bound, Known only while
// resolved. The bound is adopted as-is, not inflated by the hop.
func (s *MultiParent) Accuracy() types.Accuracy {
	if s.machine.State() != types.StateResolved {
		return types.AccuracyUnknown
	}
	return s.accuracy
}

// Pose returns the pose derived from the active parent, stale after all
// parents degrade, or ErrPoseUnresolved before any parent ever resolved.
func (s *MultiParent) Pose() (types.Pose, error) {
	if !s.hasPose {
		return types.Pose{}, types.ErrPoseUnresolved
	}
	return s.pose, nil
}
