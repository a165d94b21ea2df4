package strategy

import "github.com/spatialkit/anchorage/pkg/types"

// Registered strategy kind discriminators.
const (
	KindStationary   = "stationary"
	KindRayRefined   = "ray_refined"
	KindNudgeRefined = "nudge_refined"
	KindNativeAnchor = "native_anchor"
	KindMultiParent  = "multi_parent"
)

// Stationary is the simplest alignment strategy: a fixed pose placed once by
// the application. It never loses tracking.
type Stationary struct {
	machine  *types.Machine
	pose     types.Pose
	accuracy types.Accuracy
}

// NewStationary returns an unresolved stationary strategy. Call Place to
// resolve it.
func NewStationary() *Stationary {
	return &Stationary{machine: types.NewMachine(), accuracy: types.AccuracyUnknown}
}

// Place fixes the strategy at pose with the given drift bound and resolves
// it. Re-placing a resolved strategy updates the pose and republishes.
func (s *Stationary) Place(pose types.Pose, accuracy types.Accuracy) error {
	s.pose = pose
	s.accuracy = accuracy

	switch s.machine.State() {
	case types.StateUnresolved:
		if err := s.machine.Transition(types.StateResolving); err != nil {
			return err
		}
		return s.machine.Transition(types.StateResolved)
	case types.StateResolved:
		s.machine.Republish()
		return nil
	default:
		return s.machine.Transition(types.StateResolved)
	}
}

// Kind returns the stationary discriminator.
func (s *Stationary) Kind() string { return KindStationary }

// State returns the current alignment state.
func (s *Stationary) State() types.State { return s.machine.State() }

// Subscribe registers a state-change observer.
func (s *Stationary) Subscribe(fn types.StateFunc) { s.machine.Subscribe(fn) }

// Accuracy returns the drift bound, Known only while resolved.
func (s *Stationary) Accuracy() types.Accuracy {
	if s.machine.State() != types.StateResolved {
		return types.AccuracyUnknown
	}
	return s.accuracy
}

// Pose returns the placed pose, or ErrPoseUnresolved before placement.
func (s *Stationary) Pose() (types.Pose, error) {
	if s.machine.State() == types.StateUnresolved {
		return types.Pose{}, types.ErrPoseUnresolved
	}
	return s.pose, nil
}
