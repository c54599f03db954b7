package rays

import (
	"math"

	"github.com/achilleasa/tracecore/geom"
)

// Ray is a single ray in world or local space.
type Ray struct {
	Orig       geom.Point
	Dir        geom.Vector
	DirInv     geom.Vector
	MaxT       float32
	Wavelength float32
	Time       float32
	IsOcclusion bool
	IsDone      bool
}

// New returns a ray with max_t = +inf, time = 0, and no flags set.
func New(orig geom.Point, dir geom.Vector) Ray {
	return Ray{
		Orig:   orig,
		Dir:    dir,
		DirInv: invertDir(dir),
		MaxT:   float32(math.Inf(1)),
	}
}

// NewOcclusion returns an occlusion (shadow) ray: intersection routines
// only need to know whether anything blocks it, not the closest hit.
func NewOcclusion(orig geom.Point, dir geom.Vector, maxT float32) Ray {
	r := New(orig, dir)
	r.MaxT = maxT
	r.IsOcclusion = true
	return r
}

func invertDir(dir geom.Vector) geom.Vector {
	return geom.NewVector(1/dir.X, 1/dir.Y, 1/dir.Z)
}

// Transformed returns a copy of r with origin and direction mapped into
// the space defined by xform, recomputing the inverse direction so the
// slab test stays consistent after the transform.
func (r Ray) Transformed(xform geom.Transform) Ray {
	out := r
	out.Orig = xform.MulPoint(r.Orig)
	out.Dir = xform.MulVector(r.Dir)
	out.DirInv = invertDir(out.Dir)
	return out
}
