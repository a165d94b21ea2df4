package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedStrategy is a minimal Strategy for container tests.
type fixedStrategy struct {
	machine *Machine
	pose    Pose
}

func newFixedStrategy() *fixedStrategy {
	return &fixedStrategy{machine: NewMachine(), pose: IdentityPose()}
}

func (s *fixedStrategy) Kind() string         { return "fixed" }
func (s *fixedStrategy) State() State         { return s.machine.State() }
func (s *fixedStrategy) Subscribe(fn StateFunc) { s.machine.Subscribe(fn) }

func (s *fixedStrategy) Accuracy() Accuracy {
	if s.machine.State() != StateResolved {
		return AccuracyUnknown
	}
	return 0
}

func (s *fixedStrategy) Pose() (Pose, error) {
	if s.machine.State() == StateUnresolved {
		return Pose{}, ErrPoseUnresolved
	}
	return s.pose, nil
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		strategy Strategy
		wantErr  error
	}{
		{name: "valid frame", id: "room", strategy: newFixedStrategy()},
		{name: "empty ID rejected", id: "", strategy: newFixedStrategy(), wantErr: ErrFrameIDEmpty},
		{name: "nil strategy rejected", id: "room", strategy: nil, wantErr: ErrNilStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(tt.id, tt.strategy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, f.ID())
			assert.Same(t, tt.strategy, f.Strategy())
		})
	}
}

func TestFrameRefresh(t *testing.T) {
	s := newFixedStrategy()
	s.pose = Pose{Position: Vector3{1, 2, 3}, Rotation: IdentityQuaternion(), Scale: One()}
	f, err := NewFrame("table", s)
	require.NoError(t, err)

	// Unresolved strategy: refresh leaves the frame without a pose.
	f.Refresh()
	_, ok := f.Pose()
	assert.False(t, ok, "frame must not hold a pose before the strategy publishes one")

	require.NoError(t, s.machine.Transition(StateResolving))
	require.NoError(t, s.machine.Transition(StateResolved))
	f.Refresh()

	got, ok := f.Pose()
	require.True(t, ok)
	assert.True(t, got.ApproxEqual(s.pose, 1e-9))
}

func TestGraphAdd(t *testing.T) {
	g := NewGraph()

	f1, err := NewFrame("a", newFixedStrategy())
	require.NoError(t, err)
	f2, err := NewFrame("b", newFixedStrategy())
	require.NoError(t, err)
	dup, err := NewFrame("a", newFixedStrategy())
	require.NoError(t, err)

	require.NoError(t, g.Add(f1))
	require.NoError(t, g.Add(f2))
	assert.ErrorIs(t, g.Add(dup), ErrDuplicateFrameID)
	assert.ErrorIs(t, g.Add(nil), ErrNilFrame)
	assert.Equal(t, 2, g.Len())
}

func TestGraphLookupAndOrder(t *testing.T) {
	g := NewGraph()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		f, err := NewFrame(id, newFixedStrategy())
		require.NoError(t, err)
		require.NoError(t, g.Add(f))
	}

	f, err := g.Frame("a")
	require.NoError(t, err)
	assert.Equal(t, "a", f.ID())

	_, err = g.Frame("missing")
	assert.ErrorIs(t, err, ErrFrameNotFound)

	var got []string
	for _, f := range g.Frames() {
		got = append(got, f.ID())
	}
	assert.Equal(t, ids, got, "frames must keep insertion order")
}

func TestGraphRemove(t *testing.T) {
	g := NewGraph()
	f, err := NewFrame("a", newFixedStrategy())
	require.NoError(t, err)
	require.NoError(t, g.Add(f))

	require.NoError(t, g.Remove("a"))
	assert.Equal(t, 0, g.Len())
	assert.ErrorIs(t, g.Remove("a"), ErrFrameNotFound)

	// Re-adding the same ID after removal is legal.
	assert.NoError(t, g.Add(f))
}
