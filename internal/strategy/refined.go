package strategy

import "github.com/spatialkit/anchorage/pkg/types"

// Refiner is implemented by strategies that accept a corrective offset from
// a refinement controller. The offset is base-relative and composed on top
// of the strategy's raw output, always in base-then-offset order.
type Refiner interface {
	SetOffset(types.Offset)
	Offset() types.Offset
}

// refined is the shared core of the refinement-backed strategies: a placed
// base pose plus a corrective offset written by a controller.
type refined struct {
	machine  *types.Machine
	base     types.Pose
	accuracy types.Accuracy
	offset   types.Offset
}

func newRefined() refined {
	return refined{
		machine:  types.NewMachine(),
		accuracy: types.AccuracyUnknown,
		offset:   types.IdentityOffset(),
	}
}

// Place fixes the base pose with the given drift bound and resolves the
// strategy. The committed offset is preserved across re-placement.
func (s *refined) Place(base types.Pose, accuracy types.Accuracy) error {
	s.base = base
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

// SetOffset replaces the corrective offset. Resolved strategies republish so
// consumers pick up the corrected pose.
func (s *refined) SetOffset(o types.Offset) {
	s.offset = o
	if s.machine.State() == types.StateResolved {
		s.machine.Republish()
	}
}

// Offset returns the current corrective offset.
func (s *refined) Offset() types.Offset { return s.offset }

// Base returns the raw base pose without the offset applied.
func (s *refined) Base() types.Pose { return s.base }

// State returns the current alignment state.
func (s *refined) State() types.State { return s.machine.State() }

// Subscribe registers a state-change observer.
func (s *refined) Subscribe(fn types.StateFunc) { s.machine.Subscribe(fn) }

// Accuracy returns the drift bound, Known only while resolved.
func (s *refined) Accuracy() types.Accuracy {
	if s.machine.State() != types.StateResolved {
		return types.AccuracyUnknown
	}
	return s.accuracy
}

// Pose returns the base pose with the corrective offset applied, or
// ErrPoseUnresolved before placement.
func (s *refined) Pose() (types.Pose, error) {
	if s.machine.State() == types.StateUnresolved {
		return types.Pose{}, types.ErrPoseUnresolved
	}
	return s.offset.Apply(s.base), nil
}

// RayRefined is a placed strategy corrected by ray-pair refinement.
type RayRefined struct {
	refined
}

// NewRayRefined returns an unresolved ray-refined strategy.
func NewRayRefined() *RayRefined {
	return &RayRefined{refined: newRefined()}
}

// Kind returns the ray-refined discriminator.
func (s *RayRefined) Kind() string { return KindRayRefined }

// NudgeRefined is a placed strategy corrected by accumulated nudge steps.
type NudgeRefined struct {
	refined
}

// NewNudgeRefined returns an unresolved nudge-refined strategy.
func NewNudgeRefined() *NudgeRefined {
	return &NudgeRefined{refined: newRefined()}
}

// Kind returns the nudge-refined discriminator.
func (s *NudgeRefined) Kind() string { return KindNudgeRefined }
