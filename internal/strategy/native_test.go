package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialkit/anchorage/pkg/types"
)

// memStore is an in-memory NativeStore for strategy tests.
type memStore struct {
	anchors map[string]memAnchor
	saves   int
	loads   int
	failOn  error
}

type memAnchor struct {
	pose     types.Pose
	accuracy types.Accuracy
}

func newMemStore() *memStore {
	return &memStore{anchors: make(map[string]memAnchor)}
}

func (m *memStore) SaveAnchor(_ context.Context, anchorID string, pose types.Pose, accuracy types.Accuracy) error {
	if m.failOn != nil {
		return m.failOn
	}
	m.saves++
	m.anchors[anchorID] = memAnchor{pose: pose, accuracy: accuracy}
	return nil
}

func (m *memStore) LoadAnchor(_ context.Context, anchorID string) (types.Pose, types.Accuracy, error) {
	if m.failOn != nil {
		return types.Pose{}, types.AccuracyUnknown, m.failOn
	}
	m.loads++
	a, ok := m.anchors[anchorID]
	if !ok {
		return types.Pose{}, types.AccuracyUnknown, types.ErrAnchorNotFound
	}
	return a.pose, a.accuracy, nil
}

func trackedSample(x float64, acc types.Accuracy) types.TrackingSample {
	return types.TrackingSample{
		Pose:     types.Pose{Position: types.Vector3{X: x}, Rotation: types.IdentityQuaternion(), Scale: types.One()},
		Accuracy: acc,
		Tracked:  true,
	}
}

func TestNativeAnchorStateMachine(t *testing.T) {
	s, err := NewNativeAnchor(newMemStore())
	require.NoError(t, err)
	assert.Equal(t, types.StateUnresolved, s.State())

	require.NoError(t, s.BeginSearch())
	assert.Equal(t, types.StateResolving, s.State())
	assert.False(t, s.Accuracy().Known())

	require.NoError(t, s.UpdateTracking(trackedSample(1, 0.02)))
	assert.Equal(t, types.StateResolved, s.State())
	assert.Equal(t, types.Accuracy(0.02), s.Accuracy())

	// Loss freezes the pose stale and drops accuracy to unknown.
	require.NoError(t, s.UpdateTracking(types.TrackingSample{Tracked: false}))
	assert.Equal(t, types.StateLost, s.State())
	assert.False(t, s.Accuracy().Known())

	pose, err := s.Pose()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, pose.Position.X, 1e-9)

	// Re-acquisition goes straight back to resolved.
	require.NoError(t, s.UpdateTracking(trackedSample(2, 0.01)))
	assert.Equal(t, types.StateResolved, s.State())
	assert.Equal(t, types.Accuracy(0.01), s.Accuracy())
}

func TestNativeAnchorTrackedSampleResolvesFromUnresolved(t *testing.T) {
	s, err := NewNativeAnchor(newMemStore())
	require.NoError(t, err)

	// A tracked sample without an explicit search passes through resolving.
	require.NoError(t, s.UpdateTracking(trackedSample(0, 0.05)))
	assert.Equal(t, types.StateResolved, s.State())
}

func TestNativeAnchorRejectsUnknownAccuracySample(t *testing.T) {
	s, err := NewNativeAnchor(newMemStore())
	require.NoError(t, err)
	require.NoError(t, s.BeginSearch())

	err = s.UpdateTracking(trackedSample(1, types.AccuracyUnknown))
	assert.ErrorIs(t, err, types.ErrUnknownAccuracy)
	assert.Equal(t, types.StateResolving, s.State())
	assert.False(t, s.Accuracy().Known())
	_, err = s.Pose()
	assert.ErrorIs(t, err, types.ErrPoseUnresolved)
}

func TestNativeAnchorLoadRejectsUnknownAccuracyRow(t *testing.T) {
	store := newMemStore()
	store.anchors["a1"] = memAnchor{
		pose:     types.Pose{Position: types.Vector3{X: 1}, Rotation: types.IdentityQuaternion(), Scale: types.One()},
		accuracy: types.AccuracyUnknown,
	}

	s, err := RestoreNativeAnchor(store, "a1")
	require.NoError(t, err)

	// A stored row without a drift bound must not resolve the strategy:
	// accuracy is defined exactly when the state is resolved.
	assert.ErrorIs(t, s.LoadNative(context.Background()), types.ErrUnknownAccuracy)
	assert.Equal(t, types.StateUnresolved, s.State())
	assert.False(t, s.Accuracy().Known())
}

func TestNativeAnchorNoPoseWhileSearching(t *testing.T) {
	s, err := NewNativeAnchor(newMemStore())
	require.NoError(t, err)
	require.NoError(t, s.BeginSearch())

	_, err = s.Pose()
	assert.ErrorIs(t, err, types.ErrPoseUnresolved)
}

func TestNativeAnchorLossWhileSearchingIsIgnored(t *testing.T) {
	s, err := NewNativeAnchor(newMemStore())
	require.NoError(t, err)
	require.NoError(t, s.BeginSearch())

	require.NoError(t, s.UpdateTracking(types.TrackingSample{Tracked: false}))
	assert.Equal(t, types.StateResolving, s.State())
}

func TestNativeAnchorSaveMintsID(t *testing.T) {
	store := newMemStore()
	s, err := NewNativeAnchor(store)
	require.NoError(t, err)

	// Saving before any tracked pose is an error.
	err = s.SaveNative(context.Background())
	assert.ErrorIs(t, err, types.ErrPoseUnresolved)
	assert.Empty(t, s.AnchorID())

	require.NoError(t, s.UpdateTracking(trackedSample(3, 0.04)))
	require.NoError(t, s.SaveNative(context.Background()))

	id := s.AnchorID()
	assert.NotEmpty(t, id)

	// Re-saving reuses the same anchor, idempotently.
	require.NoError(t, s.SaveNative(context.Background()))
	assert.Equal(t, id, s.AnchorID())
	assert.Len(t, store.anchors, 1)
}

func TestNativeAnchorLoadRestores(t *testing.T) {
	store := newMemStore()
	saved, err := NewNativeAnchor(store)
	require.NoError(t, err)
	require.NoError(t, saved.UpdateTracking(trackedSample(7, 0.02)))
	require.NoError(t, saved.SaveNative(context.Background()))

	restored, err := RestoreNativeAnchor(store, saved.AnchorID())
	require.NoError(t, err)
	assert.Equal(t, types.StateUnresolved, restored.State())

	require.NoError(t, restored.LoadNative(context.Background()))
	assert.Equal(t, types.StateResolved, restored.State())
	assert.Equal(t, types.Accuracy(0.02), restored.Accuracy())

	pose, err := restored.Pose()
	require.NoError(t, err)
	assert.InDelta(t, 7.0, pose.Position.X, 1e-9)
}

func TestNativeAnchorLoadErrors(t *testing.T) {
	store := newMemStore()

	_, err := RestoreNativeAnchor(store, "")
	assert.ErrorIs(t, err, types.ErrNoAnchorID)

	s, err := RestoreNativeAnchor(store, "missing")
	require.NoError(t, err)
	assert.ErrorIs(t, s.LoadNative(context.Background()), types.ErrAnchorNotFound)

	store.failOn = errors.New("store offline")
	assert.ErrorContains(t, s.LoadNative(context.Background()), "store offline")
}

func TestNativeAnchorCancelledContext(t *testing.T) {
	store := newMemStore()
	s, err := NewNativeAnchor(store)
	require.NoError(t, err)
	require.NoError(t, s.UpdateTracking(trackedSample(1, 0.1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SaveNative(ctx), context.Canceled)
	assert.Zero(t, store.saves, "cancelled save must not touch the store")
}

func TestNewNativeAnchorNilStore(t *testing.T) {
	_, err := NewNativeAnchor(nil)
	assert.ErrorIs(t, err, types.ErrNilNativeStore)
}
