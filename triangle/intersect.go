package triangle

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
)

// Hit is the result of a successful intersection: the distance along
// the ray, the two non-redundant barycentric coordinates (the third is
// 1-u-v), and a conservative position error bound for the reconstructed
// surface point.
type Hit struct {
	T, U, V float32
	PosErr  float32
}

const epsF32 = float32(1.19209290e-07)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func vecAxis(v geom.Vector, n int) float32 {
	switch n {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// permuteAxes picks the axis with the largest-magnitude ray direction
// component as z, and swaps the other two so the permuted frame stays
// right-handed when that component is negative.
func permuteAxes(dir geom.Vector) (kx, ky, kz int) {
	ax, ay, az := absf(dir.X), absf(dir.Y), absf(dir.Z)
	switch {
	case az >= ax && az >= ay:
		kz = 2
	case ay >= ax && ay >= az:
		kz = 1
	default:
		kz = 0
	}
	kx = (kz + 1) % 3
	ky = (kx + 1) % 3
	if vecAxis(dir, kz) < 0 {
		kx, ky = ky, kx
	}
	return
}

// Intersect tests ray against the triangle (p0, p1, p2) using the
// watertight scheme of Woop et al. Returns ok=false on a miss.
func Intersect(r rays.Ray, p0, p1, p2 geom.Point) (Hit, bool) {
	kx, ky, kz := permuteAxes(r.Dir)

	dirKz := vecAxis(r.Dir, kz)
	if dirKz == 0 {
		return Hit{}, false
	}
	shearX := -vecAxis(r.Dir, kx) / dirKz
	shearY := -vecAxis(r.Dir, ky) / dirKz
	shearZ := 1 / dirKz

	toLocal := func(p geom.Point) (x, y, z float32) {
		d := p.Sub(r.Orig)
		px, py, pz := vecAxis(d, kx), vecAxis(d, ky), vecAxis(d, kz)
		x = px + shearX*pz
		y = py + shearY*pz
		z = pz * shearZ
		return
	}

	ax, ay, az := toLocal(p0)
	bx, by, bz := toLocal(p1)
	cx, cy, cz := toLocal(p2)

	e0 := bx*cy - by*cx
	e1 := cx*ay - cy*ax
	e2 := ax*by - ay*bx

	if e0 == 0 || e1 == 0 || e2 == 0 {
		e0 = float32(float64(bx)*float64(cy) - float64(by)*float64(cx))
		e1 = float32(float64(cx)*float64(ay) - float64(cy)*float64(ax))
		e2 = float32(float64(ax)*float64(by) - float64(ay)*float64(bx))
	}

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return Hit{}, false
	}

	// An edge whose function is exactly zero counts as inside only when it
	// points up (or left, if horizontal) in the sheared plane, so of two
	// consistently wound triangles sharing it exactly one is hit.
	ownsEdge := func(e, x0, y0, x1, y1 float32) bool {
		return e != 0 || y1 > y0 || (y1 == y0 && x1 < x0)
	}
	if !ownsEdge(e0, bx, by, cx, cy) || !ownsEdge(e1, cx, cy, ax, ay) || !ownsEdge(e2, ax, ay, bx, by) {
		return Hit{}, false
	}

	det := e0 + e1 + e2
	if det == 0 {
		return Hit{}, false
	}

	tScaled := e0*az + e1*bz + e2*cz

	if det < 0 {
		if tScaled > 0 || tScaled < r.MaxT*det {
			return Hit{}, false
		}
	} else {
		if tScaled < 0 || tScaled > r.MaxT*det {
			return Hit{}, false
		}
	}

	invDet := 1 / det
	t := tScaled * invDet
	u := e1 * invDet
	v := e2 * invDet

	// Conservative position-error bound, gamma-style as in pbrt's
	// triangle intersector: proportional to the magnitude of the
	// reconstructed barycentric coordinates and machine epsilon.
	const gamma7 = 7 * 0.5 * epsF32
	posErr := gamma7 * (absf(t) + absf(u) + absf(v) + 1)

	return Hit{T: t, U: u, V: v, PosErr: posErr}, true
}
