package orientation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// MinNorm is the smallest quaternion norm accepted as a valid rotation.
// Anything below this is treated as degenerate input.
const MinNorm = 1e-9

// Identity returns the unit quaternion that rotates nothing.
func Identity() quat.Number {
	return quat.Number{Real: 1}
}

// FromComponents builds a quaternion from scalar-first components (w, x, y, z).
func FromComponents(w, x, y, z float64) quat.Number {
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Components returns the scalar-first components (w, x, y, z) of q.
func Components(q quat.Number) (w, x, y, z float64) {
	return q.Real, q.Imag, q.Jmag, q.Kmag
}

// Norm returns the euclidean norm of q.
func Norm(q quat.Number) float64 {
	return quat.Abs(q)
}

// Normalize scales q to unit length and reports the original norm.
// Callers must reject quaternions whose norm is below MinNorm themselves;
// Normalize returns q unchanged for those to avoid dividing by zero.
func Normalize(q quat.Number) (quat.Number, float64) {
	n := quat.Abs(q)
	if n < MinNorm {
		return q, n
	}
	return quat.Scale(1/n, q), n
}

// Rotate applies the rotation q to the vector v, computing q * v * q⁻¹.
// q must be a unit quaternion.
func Rotate(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// AboutAxis returns the unit quaternion rotating by angle radians around axis.
// The axis does not need to be normalized.
func AboutAxis(axis r3.Vector, angle float64) quat.Number {
	n := axis.Norm()
	if n < MinNorm {
		return Identity()
	}
	s := math.Sin(angle/2) / n
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// Mat4 returns the homogeneous transform placing a body rotated by q at pos.
func Mat4(q quat.Number, pos r3.Vector) mgl64.Mat4 {
	rot := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
	return mgl64.Translate3D(pos.X, pos.Y, pos.Z).Mul4(rot.Mat4())
}

// AlmostEqual reports whether a and b agree component-wise within tol.
func AlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) <= tol &&
		math.Abs(a.Imag-b.Imag) <= tol &&
		math.Abs(a.Jmag-b.Jmag) <= tol &&
		math.Abs(a.Kmag-b.Kmag) <= tol
}
