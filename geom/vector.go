package geom

import "math"

// Vector is a direction in 3D space. Unlike Point, it is unaffected by
// translation when transformed.
type Vector struct {
	X, Y, Z float32
}

func NewVector(x, y, z float32) Vector { return Vector{x, y, z} }

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector) Scale(s float32) Vector { return Vector{v.X * s, v.Y * s, v.Z * s} }
func (v Vector) Neg() Vector { return Vector{-v.X, -v.Y, -v.Z} }

func (v Vector) Dot(o Vector) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector) Length2() float32 {
	return v.Dot(v)
}

func (v Vector) Length() float32 {
	return float32(math.Sqrt(float64(v.Length2())))
}

func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vector) Abs() Vector {
	return Vector{absf32(v.X), absf32(v.Y), absf32(v.Z)}
}

func (v Vector) Get(n int) float32 {
	switch n {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic("geom: Vector.Get: axis out of range")
	}
}

func (v Vector) ToPoint() Point   { return Point(v) }
func (v Vector) ToNormal() Normal { return Normal(v) }

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Lerp implements Lerpable for Vector.
func (v Vector) Lerp(o Vector, alpha float32) Vector {
	return Vector{
		lerpf(v.X, o.X, alpha),
		lerpf(v.Y, o.Y, alpha),
		lerpf(v.Z, o.Z, alpha),
	}
}
