package geom

import "math"

// Normal is a surface normal. It transforms by the inverse-transpose of
// a Transform's linear part, unlike Point and Vector.
type Normal struct {
	X, Y, Z float32
}

func NewNormal(x, y, z float32) Normal { return Normal{x, y, z} }

func (n Normal) Add(o Normal) Normal    { return Normal{n.X + o.X, n.Y + o.Y, n.Z + o.Z} }
func (n Normal) Sub(o Normal) Normal    { return Normal{n.X - o.X, n.Y - o.Y, n.Z - o.Z} }
func (n Normal) Scale(s float32) Normal { return Normal{n.X * s, n.Y * s, n.Z * s} }
func (n Normal) Neg() Normal            { return Normal{-n.X, -n.Y, -n.Z} }

func (n Normal) Dot(o Normal) float32 {
	return n.X*o.X + n.Y*o.Y + n.Z*o.Z
}

func (n Normal) Cross(o Normal) Normal {
	return Normal{
		n.Y*o.Z - n.Z*o.Y,
		n.Z*o.X - n.X*o.Z,
		n.X*o.Y - n.Y*o.X,
	}
}

func (n Normal) Length2() float32 { return n.Dot(n) }

func (n Normal) Length() float32 {
	return float32(math.Sqrt(float64(n.Length2())))
}

func (n Normal) Normalized() Normal {
	l := n.Length()
	if l == 0 {
		return n
	}
	return n.Scale(1 / l)
}

func (n Normal) ToVector() Vector { return Vector(n) }
