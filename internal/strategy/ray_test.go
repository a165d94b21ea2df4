package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatialkit/anchorage/pkg/types"
)

const solveTol = 1e-5

func TestSolveRays(t *testing.T) {
	tests := []struct {
		name     string
		virtual  types.Ray
		physical types.Ray
		wantT    types.Vector3
		wantR    types.Quaternion
	}{
		{
			name:     "identical rays yield identity",
			virtual:  types.Ray{Origin: types.Vector3{1, 2, 3}, Direction: types.Vector3{X: 1}},
			physical: types.Ray{Origin: types.Vector3{1, 2, 3}, Direction: types.Vector3{X: 1}},
			wantT:    types.Vector3{},
			wantR:    types.IdentityQuaternion(),
		},
		{
			name:     "pure unit translation",
			virtual:  types.Ray{Origin: types.Vector3{}, Direction: types.Vector3{Z: 1}},
			physical: types.Ray{Origin: types.Vector3{Y: 1}, Direction: types.Vector3{Z: 1}},
			wantT:    types.Vector3{Y: 1},
			wantR:    types.IdentityQuaternion(),
		},
		{
			name:     "90 degree rotation about Z",
			virtual:  types.Ray{Origin: types.Vector3{}, Direction: types.Vector3{X: 1}},
			physical: types.Ray{Origin: types.Vector3{}, Direction: types.Vector3{Y: 1}},
			wantT:    types.Vector3{},
			wantR:    types.FromAxisAngle(types.Vector3{Z: 1}, math.Pi/2),
		},
		{
			name:     "90 degree rotation plus unit translation",
			virtual:  types.Ray{Origin: types.Vector3{X: 1}, Direction: types.Vector3{X: 1}},
			physical: types.Ray{Origin: types.Vector3{X: 1}, Direction: types.Vector3{Y: 1}},
			// Rotation maps the virtual origin (1,0,0) to (0,1,0); the
			// translation must pull it back onto the physical origin.
			wantT: types.Vector3{1, -1, 0},
			wantR: types.FromAxisAngle(types.Vector3{Z: 1}, math.Pi/2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SolveRays(tt.virtual, tt.physical)
			require.NoError(t, err)
			assert.True(t, got.Translation.ApproxEqual(tt.wantT, solveTol), "translation %+v want %+v", got.Translation, tt.wantT)
			assert.True(t, got.Rotation.ApproxEqual(tt.wantR, solveTol), "rotation %+v want %+v", got.Rotation, tt.wantR)
		})
	}
}

func TestSolveRaysMapsVirtualOntoPhysical(t *testing.T) {
	virtual := types.Ray{Origin: types.Vector3{2, -1, 0.5}, Direction: types.Vector3{1, 2, -1}}
	physical := types.Ray{Origin: types.Vector3{-3, 0, 4}, Direction: types.Vector3{0, 1, 1}}

	off, err := SolveRays(virtual, physical)
	require.NoError(t, err)

	gotOrigin := off.Rotation.Rotate(virtual.Origin).Add(off.Translation)
	assert.True(t, gotOrigin.ApproxEqual(physical.Origin, solveTol))

	gotDir := off.Rotation.Rotate(virtual.Direction.Normalized())
	assert.True(t, gotDir.ApproxEqual(physical.Direction.Normalized(), solveTol))
}

func TestSolveRaysIdempotent(t *testing.T) {
	virtual := types.Ray{Origin: types.Vector3{1, 0, 0}, Direction: types.Vector3{0, 0, 1}}
	physical := types.Ray{Origin: types.Vector3{0, 1, 0}, Direction: types.Vector3{0, 1, 0}}

	first, err := SolveRays(virtual, physical)
	require.NoError(t, err)
	second, err := SolveRays(virtual, physical)
	require.NoError(t, err)

	assert.True(t, first.ApproxEqual(second, solveTol))
}

func TestSolveRaysDegenerate(t *testing.T) {
	ok := types.Ray{Direction: types.Vector3{X: 1}}
	zero := types.Ray{}

	_, err := SolveRays(zero, ok)
	assert.ErrorIs(t, err, types.ErrDegenerateRay)
	_, err = SolveRays(ok, zero)
	assert.ErrorIs(t, err, types.ErrDegenerateRay)
}

func TestRayControllerCommit(t *testing.T) {
	s := NewRayRefined()
	base := types.Pose{Position: types.Vector3{5, 0, 0}, Rotation: types.IdentityQuaternion(), Scale: types.One()}
	require.NoError(t, s.Place(base, 0.03))

	ctrl := NewRayController(s)
	virtual := types.Ray{Origin: types.Vector3{}, Direction: types.Vector3{X: 1}}
	physical := types.Ray{Origin: types.Vector3{Y: 1}, Direction: types.Vector3{X: 1}}

	committed, err := ctrl.Commit(virtual, physical)
	require.NoError(t, err)
	assert.True(t, committed.ApproxEqual(s.Offset(), solveTol))

	// Final pose is base then offset, in that order.
	got, err := s.Pose()
	require.NoError(t, err)
	want := s.Offset().Apply(base)
	assert.True(t, got.ApproxEqual(want, 1e-9))

	// Committing the same pair again changes nothing.
	again, err := ctrl.Commit(virtual, physical)
	require.NoError(t, err)
	assert.True(t, committed.ApproxEqual(again, solveTol))
}

func TestRayOffsetSurvivesReplace(t *testing.T) {
	s := NewRayRefined()
	require.NoError(t, s.Place(types.IdentityPose(), 0.03))

	ctrl := NewRayController(s)
	_, err := ctrl.Commit(
		types.Ray{Origin: types.Vector3{}, Direction: types.Vector3{X: 1}},
		types.Ray{Origin: types.Vector3{Z: 2}, Direction: types.Vector3{X: 1}},
	)
	require.NoError(t, err)
	committed := s.Offset()

	// Re-placing the base keeps the committed correction.
	moved := types.Pose{Position: types.Vector3{X: 7}, Rotation: types.IdentityQuaternion(), Scale: types.One()}
	require.NoError(t, s.Place(moved, 0.03))

	assert.True(t, s.Offset().ApproxEqual(committed, 1e-9))
	got, err := s.Pose()
	require.NoError(t, err)
	assert.True(t, got.ApproxEqual(committed.Apply(moved), 1e-9))
}
