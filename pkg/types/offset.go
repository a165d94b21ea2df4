package types

// Offset is a corrective transform delta layered on top of a strategy's raw
// output: a translation plus a rotation. An offset is always expressed
// relative to the frame or parent it corrects, never in world space, so it
// remains valid when the parent itself moves.
type Offset struct {
	Translation Vector3    `json:"translation"`
	Rotation    Quaternion `json:"rotation"`
}

// IdentityOffset returns the no-correction offset.
func IdentityOffset() Offset {
	return Offset{Rotation: IdentityQuaternion()}
}

// Pose returns the offset as a unit-scale pose, suitable for composition.
func (o Offset) Pose() Pose {
	return Pose{Position: o.Translation, Rotation: o.Rotation, Scale: One()}
}

// Apply composes the offset onto base. The order is fixed: base first, then
// the offset in base-local space, so a committed offset survives a change in
// the base strategy's computed pose.
func (o Offset) Apply(base Pose) Pose {
	return base.Mul(o.Pose())
}

// Compose returns the offset equivalent to applying o first, then next.
// Used by nudge accumulation.
func (o Offset) Compose(next Offset) Offset {
	p := o.Pose().Mul(next.Pose())
	return Offset{Translation: p.Position, Rotation: p.Rotation}
}

// ApproxEqual reports whether o and other agree within tol per component.
func (o Offset) ApproxEqual(other Offset, tol float64) bool {
	return o.Translation.ApproxEqual(other.Translation, tol) &&
		o.Rotation.ApproxEqual(other.Rotation, tol)
}
