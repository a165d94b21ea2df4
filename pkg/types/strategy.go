package types

import (
	"context"
	"errors"
)

// Accuracy is the maximum expected positional drift of a resolved strategy,
// in meters. Smaller is better. AccuracyUnknown marks a strategy whose drift
// bound is undefined, which is every strategy outside the resolved state.
type Accuracy float64

// AccuracyUnknown is the sentinel for an undefined drift bound.
const AccuracyUnknown Accuracy = -1

// Known reports whether a carries a meaningful drift bound. Accuracy values
// of non-resolved strategies are never Known and must not be compared.
func (a Accuracy) Known() bool {
	return a >= 0
}

// Strategy errors.
var (
	ErrPoseUnresolved  = errors.New("pose requested while unresolved")
	ErrUnknownAccuracy = errors.New("tracked sample must carry a known accuracy")
	ErrNilStrategy     = errors.New("strategy must not be nil")
	ErrNoCandidates    = errors.New("multi-parent strategy has no candidates")
	ErrStepTooLarge    = errors.New("nudge step exceeds bound")
	ErrNoAnchorID      = errors.New("native strategy has no anchor ID")
	ErrAnchorNotFound  = errors.New("anchor not found")
	ErrNilNativeStore  = errors.New("native store must not be nil")
	ErrDegenerateRay   = errors.New("ray direction must not be zero")
)

// Strategy computes and maintains one frame's pose. Implementations are
// polymorphic over this capability set; the frame owns exactly one.
type Strategy interface {
	// Kind returns the registered discriminator for this strategy type.
	Kind() string

	// State returns the current alignment state.
	State() State

	// Accuracy returns the drift bound in meters. It is Known if and only
	// if State is resolved.
	Accuracy() Accuracy

	// Pose returns the strategy's current pose. While unresolved the pose
	// is undefined and ErrPoseUnresolved is returned. A lost strategy
	// returns its last resolved pose, stale but not discarded.
	Pose() (Pose, error)

	// Subscribe registers a state-change observer. Consumers re-evaluate
	// on notification rather than polling.
	Subscribe(fn StateFunc)
}

// NativePersister is implemented by strategies whose durable state lives in
// an external tracking store rather than in the structural document. The
// persistence store calls SaveNative before finalizing a document and
// LoadNative after the whole graph is structurally present, exactly once
// per strategy per cycle.
type NativePersister interface {
	Strategy

	// SaveNative persists the strategy's durable external state. Idempotent:
	// re-saving the same anchor overwrites, never duplicates.
	SaveNative(ctx context.Context) error

	// LoadNative re-acquires durable external state using the anchor ID
	// carried in the document.
	LoadNative(ctx context.Context) error
}

// NativeStore is the durable external anchor store collaborator. The device
// world-tracking backend is opaque; implementations only honor this contract.
// SaveAnchor must be idempotent per anchor so a retried save converges
// rather than accumulating, and a save cancelled before it runs leaves the
// prior durable state untouched.
type NativeStore interface {
	SaveAnchor(ctx context.Context, anchorID string, pose Pose, accuracy Accuracy) error
	LoadAnchor(ctx context.Context, anchorID string) (Pose, Accuracy, error)
}

// TrackingSample is one push-style update from a tracking subsystem: a raw
// pose plus a drift bound, or a loss report.
type TrackingSample struct {
	Pose     Pose
	Accuracy Accuracy
	Tracked  bool
}

// TransformSink is the host scene-graph boundary. The driving loop writes
// every frame's derived pose through it once per evaluation pass.
type TransformSink interface {
	SetPose(frameID string, pose Pose)
}
