package strategy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spatialkit/anchorage/pkg/types"
)

// NativeAnchor aligns a frame to an externally tracked anchor. The durable
// anchor state lives in a native store outside the structural document; the
// document only carries the anchor ID. Tracking input arrives push-style
// through UpdateTracking.
type NativeAnchor struct {
	machine  *types.Machine
	store    types.NativeStore
	anchorID string

	pose     types.Pose
	hasPose  bool
	accuracy types.Accuracy
}

// NewNativeAnchor returns an unresolved native-anchor strategy with no
// anchor ID yet; an ID is minted on first native save.
func NewNativeAnchor(store types.NativeStore) (*NativeAnchor, error) {
	if store == nil {
		return nil, types.ErrNilNativeStore
	}
	return &NativeAnchor{
		machine:  types.NewMachine(),
		store:    store,
		accuracy: types.AccuracyUnknown,
	}, nil
}

// RestoreNativeAnchor returns an unresolved native-anchor strategy carrying
// an anchor ID from a persisted document. LoadNative re-acquires the
// durable state.
func RestoreNativeAnchor(store types.NativeStore, anchorID string) (*NativeAnchor, error) {
	if anchorID == "" {
		return nil, types.ErrNoAnchorID
	}
	s, err := NewNativeAnchor(store)
	if err != nil {
		return nil, err
	}
	s.anchorID = anchorID
	return s, nil
}

// AnchorID returns the native store ID, empty until the first save.
func (s *NativeAnchor) AnchorID() string { return s.anchorID }

// BeginSearch moves the strategy into resolving when the tracking subsystem
// starts looking for the anchor.
func (s *NativeAnchor) BeginSearch() error {
	return s.machine.Transition(types.StateResolving)
}

// UpdateTracking feeds one raw tracking sample into the state machine.
// A tracked sample resolves the strategy and publishes pose and accuracy;
// a loss report freezes the pose stale and drops accuracy to unknown.
// A tracked sample without a known accuracy is rejected: resolved implies
// a defined drift bound, so such a sample must never resolve the strategy.
func (s *NativeAnchor) UpdateTracking(sample types.TrackingSample) error {
	if sample.Tracked {
		if !sample.Accuracy.Known() {
			return types.ErrUnknownAccuracy
		}
		if s.machine.State() == types.StateUnresolved {
			if err := s.machine.Transition(types.StateResolving); err != nil {
				return err
			}
		}
		s.pose = sample.Pose
		s.hasPose = true
		s.accuracy = sample.Accuracy
		if s.machine.State() == types.StateResolved {
			s.machine.Republish()
			return nil
		}
		return s.machine.Transition(types.StateResolved)
	}

	// Loss only demotes a resolved strategy. A searching strategy just
	// keeps searching. The last accuracy is kept internally as the bound
	// to persist; the Accuracy getter hides it outside resolved.
	if s.machine.State() != types.StateResolved {
		return nil
	}
	return s.machine.Transition(types.StateLost)
}

// SaveNative persists the anchor's durable state to the native store,
// minting an anchor ID on first save. Requires a pose to have been tracked
// at least once. Saves are idempotent per anchor ID.
func (s *NativeAnchor) SaveNative(ctx context.Context) error {
	if !s.hasPose {
		return fmt.Errorf("save anchor: %w", types.ErrPoseUnresolved)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.anchorID == "" {
		s.anchorID = uuid.NewString()
	}
	if err := s.store.SaveAnchor(ctx, s.anchorID, s.pose, s.accuracy); err != nil {
		return fmt.Errorf("save anchor %s: %w", s.anchorID, err)
	}
	return nil
}

// LoadNative re-acquires the anchor's durable state from the native store
// using the persisted anchor ID, resolving the strategy on success.
func (s *NativeAnchor) LoadNative(ctx context.Context) error {
	if s.anchorID == "" {
		return types.ErrNoAnchorID
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	pose, accuracy, err := s.store.LoadAnchor(ctx, s.anchorID)
	if err != nil {
		return fmt.Errorf("load anchor %s: %w", s.anchorID, err)
	}
	if err := s.UpdateTracking(types.TrackingSample{Pose: pose, Accuracy: accuracy, Tracked: true}); err != nil {
		return fmt.Errorf("load anchor %s: %w", s.anchorID, err)
	}
	return nil
}

// Kind returns the native-anchor discriminator.
func (s *NativeAnchor) Kind() string { return KindNativeAnchor }

// State returns the current alignment state.
func (s *NativeAnchor) State() types.State { return s.machine.State() }

// Subscribe registers a state-change observer.
func (s *NativeAnchor) Subscribe(fn types.StateFunc) { s.machine.Subscribe(fn) }

// Accuracy returns the drift bound, Known only while resolved.
func (s *NativeAnchor) Accuracy() types.Accuracy {
	if s.machine.State() != types.StateResolved {
		return types.AccuracyUnknown
	}
	return s.accuracy
}

// Pose returns the last tracked pose, stale while lost, or
// ErrPoseUnresolved before the first sample. A strategy searching for an
// anchor it has never tracked has no pose to report.
func (s *NativeAnchor) Pose() (types.Pose, error) {
	if !s.hasPose {
		return types.Pose{}, types.ErrPoseUnresolved
	}
	return s.pose, nil
}
