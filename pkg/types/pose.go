package types

import "math"

// epsilon for unit-vector and near-parallel checks in rotation construction.
const epsilon = 1e-9

// Vector3 is a 3-component vector. Used for positions, directions,
// translations, and per-axis scale factors.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by the scalar s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Hadamard returns the component-wise product of v and o.
func (v Vector3) Hadamard(o Vector3) Vector3 {
	return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l < epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// ApproxEqual reports whether every component of v is within tol of o.
func (v Vector3) ApproxEqual(o Vector3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol &&
		math.Abs(v.Y-o.Y) <= tol &&
		math.Abs(v.Z-o.Z) <= tol
}

// One returns the all-ones vector, the identity for per-axis scale.
func One() Vector3 {
	return Vector3{1, 1, 1}
}

// Quaternion is a rotation in x, y, z, w component order. Quaternions
// held in poses and offsets are kept unit length.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion returns the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// Mul returns the composition q * o (o applied first, then q).
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the inverse rotation for a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Normalized returns q scaled to unit length. A degenerate
// zero-length quaternion normalizes to the identity.
func (q Quaternion) Normalized() Quaternion {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < epsilon {
		return IdentityQuaternion()
	}
	return Quaternion{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Rotate applies the rotation q to the vector v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	qv := Vector3{q.X, q.Y, q.Z}
	t := qv.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(qv.Cross(t))
}

// ApproxEqual reports whether q and o represent nearly the same rotation.
// q and -q describe the same rotation, so both signs are accepted.
func (q Quaternion) ApproxEqual(o Quaternion, tol float64) bool {
	same := math.Abs(q.X-o.X) <= tol && math.Abs(q.Y-o.Y) <= tol &&
		math.Abs(q.Z-o.Z) <= tol && math.Abs(q.W-o.W) <= tol
	flip := math.Abs(q.X+o.X) <= tol && math.Abs(q.Y+o.Y) <= tol &&
		math.Abs(q.Z+o.Z) <= tol && math.Abs(q.W+o.W) <= tol
	return same || flip
}

// FromAxisAngle returns the rotation of angle radians about the given axis.
// The axis need not be unit length.
func FromAxisAngle(axis Vector3, angle float64) Quaternion {
	a := axis.Normalized()
	s := math.Sin(angle / 2)
	return Quaternion{a.X * s, a.Y * s, a.Z * s, math.Cos(angle / 2)}
}

// RotationBetween returns the shortest-arc rotation carrying the direction
// from onto the direction to. Inputs need not be unit length. Antiparallel
// inputs rotate 180° about an arbitrary axis orthogonal to from.
func RotationBetween(from, to Vector3) Quaternion {
	f := from.Normalized()
	t := to.Normalized()
	d := f.Dot(t)

	if d > 1-epsilon {
		return IdentityQuaternion()
	}
	if d < -1+epsilon {
		// 180°: any axis orthogonal to f works.
		axis := f.Cross(Vector3{X: 1})
		if axis.Length() < epsilon {
			axis = f.Cross(Vector3{Y: 1})
		}
		return FromAxisAngle(axis, math.Pi)
	}

	c := f.Cross(t)
	return Quaternion{c.X, c.Y, c.Z, 1 + d}.Normalized()
}

// Pose is a rigid transform with per-axis scale: position, rotation, and
// scale, in that application order when composing.
type Pose struct {
	Position Vector3    `json:"position"`
	Rotation Quaternion `json:"rotation"`
	Scale    Vector3    `json:"scale"`
}

// IdentityPose returns the identity transform (zero position, identity
// rotation, unit scale).
func IdentityPose() Pose {
	return Pose{Rotation: IdentityQuaternion(), Scale: One()}
}

// Mul composes p with the child transform c, yielding the transform that
// applies c in p's local space. Composing a parent pose with a local offset
// yields the world pose of the offset frame.
func (p Pose) Mul(c Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(p.Scale.Hadamard(c.Position))),
		Rotation: p.Rotation.Mul(c.Rotation),
		Scale:    p.Scale.Hadamard(c.Scale),
	}
}

// ApproxEqual reports whether p and o agree within tol per component.
func (p Pose) ApproxEqual(o Pose, tol float64) bool {
	return p.Position.ApproxEqual(o.Position, tol) &&
		p.Rotation.ApproxEqual(o.Rotation, tol) &&
		p.Scale.ApproxEqual(o.Scale, tol)
}

// Ray is a half-line in space: an origin and a direction. Rays pair a point
// in application space with the physical point the user indicates for it.
type Ray struct {
	Origin    Vector3 `json:"origin"`
	Direction Vector3 `json:"direction"`
}
