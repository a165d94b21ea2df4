package strategy

import (
	"math"

	"github.com/spatialkit/anchorage/pkg/types"
)

// Per-step bounds for manual nudging. Steps beyond these are rejected;
// larger corrections come from repeated steps, never implicit snapping.
const (
	MaxTranslationStep = 0.5         // meters
	MaxRotationStep    = math.Pi / 4 // radians
)

// NudgeController accumulates discrete directional and rotational step
// commands from a manual controller into the target strategy's offset.
type NudgeController struct {
	target Refiner
}

// NewNudgeController returns a controller writing into target.
func NewNudgeController(target Refiner) *NudgeController {
	return &NudgeController{target: target}
}

// TranslateStep composes a small translation delta onto the accumulated
// offset. Returns ErrStepTooLarge when the delta exceeds MaxTranslationStep.
func (c *NudgeController) TranslateStep(delta types.Vector3) error {
	if delta.Length() > MaxTranslationStep {
		return types.ErrStepTooLarge
	}
	step := types.Offset{Translation: delta, Rotation: types.IdentityQuaternion()}
	c.target.SetOffset(c.target.Offset().Compose(step))
	return nil
}

// RotateStep composes a small rotation about axis onto the accumulated
// offset. Returns ErrStepTooLarge when |radians| exceeds MaxRotationStep.
func (c *NudgeController) RotateStep(axis types.Vector3, radians float64) error {
	if math.Abs(radians) > MaxRotationStep {
		return types.ErrStepTooLarge
	}
	step := types.Offset{Rotation: types.FromAxisAngle(axis, radians)}
	c.target.SetOffset(c.target.Offset().Compose(step))
	return nil
}

// Reset clears the accumulated offset back to identity.
func (c *NudgeController) Reset() {
	c.target.SetOffset(types.IdentityOffset())
}
