package strategy

import "github.com/spatialkit/anchorage/pkg/types"

// SolveRays computes the rigid offset mapping the virtual ray onto the
// physical ray: the rotation is the shortest arc aligning the virtual
// direction to the physical direction, and the translation carries the
// rotated virtual origin onto the physical origin. The solve is pure:
// the same ray pair always yields the same offset.
func SolveRays(virtual, physical types.Ray) (types.Offset, error) {
	if virtual.Direction.Length() < 1e-12 || physical.Direction.Length() < 1e-12 {
		return types.Offset{}, types.ErrDegenerateRay
	}

	rotation := types.RotationBetween(virtual.Direction, physical.Direction)
	translation := physical.Origin.Sub(rotation.Rotate(virtual.Origin))

	return types.Offset{Translation: translation, Rotation: rotation}, nil
}

// RayController commits ray-pair corrections into a refinable strategy. One
// invocation produces one committed offset; recommitting the same pair is a
// no-op up to floating-point tolerance.
type RayController struct {
	target Refiner
}

// NewRayController returns a controller writing into target.
func NewRayController(target Refiner) *RayController {
	return &RayController{target: target}
}

// Commit solves the ray pair and writes the resulting offset into the
// target strategy, replacing any previous correction. The committed offset
// is returned for inspection.
func (c *RayController) Commit(virtual, physical types.Ray) (types.Offset, error) {
	offset, err := SolveRays(virtual, physical)
	if err != nil {
		return types.Offset{}, err
	}
	c.target.SetOffset(offset)
	return offset, nil
}
