package geom

import "math"

const quarterPi = math.Pi / 4

// SquareToCircle maps the unit square [-1,1]x[-1,1] to the unit disc
// using the concentric (Shirley-Chiu) mapping.
func SquareToCircle(x, y float32) (float32, float32) {
	if x == 0 && y == 0 {
		return 0, 0
	}

	var radius, angle float32
	switch {
	case x > absf32(y):
		radius, angle = x, quarterPi*(y/x)
	case y > absf32(x):
		radius, angle = y, quarterPi*(2-(x/y))
	case x < -absf32(y):
		radius, angle = -x, quarterPi*(4+(y/x))
	default:
		radius, angle = -y, quarterPi*(6-(x/y))
	}

	s, c := math.Sincos(float64(angle))
	return radius * float32(c), radius * float32(s)
}

// CosineSampleHemisphere draws a direction from a z-up hemisphere with
// a cosine-weighted distribution, given two uniform samples in [0,1].
func CosineSampleHemisphere(u, v float32) Vector {
	x, y := SquareToCircle(u*2-1, v*2-1)
	z2 := 1 - (x*x + y*y)
	if z2 < 0 {
		z2 = 0
	}
	return Vector{x, y, float32(math.Sqrt(float64(z2)))}
}

// CoordinateSystemFromVector builds an orthonormal basis with v as the
// z axis, using Duff et al.'s branchless construction.
func CoordinateSystemFromVector(v Vector) (x, y, z Vector) {
	sign := float32(1)
	if v.Z < 0 {
		sign = -1
	}
	a := -1 / (sign + v.Z)
	b := v.X * v.Y * a
	vx := Vector{1 + sign*v.X*v.X*a, sign * b, -sign * v.X}
	vy := Vector{b, sign + v.Y*v.Y*a, -v.Y}
	return vx, vy, v
}

// ZUpToVec reinterprets `from`, expressed in a z-up space, into the
// space where `toZ` is considered up. Used to orient
// CosineSampleHemisphere's z-up samples around a surface normal.
func ZUpToVec(from, toZ Vector) Vector {
	tx, ty, tz := CoordinateSystemFromVector(toZ.Normalized())
	return tx.Scale(from.X).Add(ty.Scale(from.Y)).Add(tz.Scale(from.Z))
}
