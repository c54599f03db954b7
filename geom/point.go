package geom

// Point is a position in 3D space. Transforms translate points but not
// vectors or normals.
type Point struct {
	X, Y, Z float32
}

func NewPoint(x, y, z float32) Point { return Point{x, y, z} }

func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Point) Sub(o Point) Vector { return Vector{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }

func (p Point) Min(o Point) Point {
	return Point{minf32(p.X, o.X), minf32(p.Y, o.Y), minf32(p.Z, o.Z)}
}

func (p Point) Max(o Point) Point {
	return Point{maxf32(p.X, o.X), maxf32(p.Y, o.Y), maxf32(p.Z, o.Z)}
}

func (p Point) Get(n int) float32 {
	switch n {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	default:
		panic("geom: Point.Get: axis out of range")
	}
}

func (p Point) ToVector() Vector { return Vector(p) }

// Lerp implements Lerp for Point.
func (p Point) Lerp(o Point, alpha float32) Point {
	return Point{
		lerpf(p.X, o.X, alpha),
		lerpf(p.Y, o.Y, alpha),
		lerpf(p.Z, o.Z, alpha),
	}
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
