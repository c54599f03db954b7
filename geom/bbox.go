package geom

import "math"

// bboxMaxTAdjust pads the far intersection distance to compensate for
// floating point error in the slab test.
const bboxMaxTAdjust = 1.00000024

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max Point
}

// NewBBox returns a degenerate bbox (+inf min, -inf max) suitable as the
// identity element for Union.
func NewBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{
		Min: Point{inf, inf, inf},
		Max: Point{-inf, -inf, -inf},
	}
}

// BBoxFromPoints returns the bbox with the given extents.
func BBoxFromPoints(min, max Point) BBox {
	return BBox{Min: min, Max: max}
}

// SurfaceArea returns the bbox's surface area, used throughout the SAH
// BVH builder and the light tree's importance heuristic.
func (b BBox) SurfaceArea() float32 {
	d := b.Max.Sub(b.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Union returns the smallest bbox containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Lerp implements Lerpable for BBox.
func (b BBox) Lerp(o BBox, alpha float32) BBox {
	return BBox{Min: b.Min.Lerp(o.Min, alpha), Max: b.Max.Lerp(o.Max, alpha)}
}

// IntersectRay reports whether ray hits the bbox within [0, ray.MaxT],
// using the slab test with the far distance padded by bboxMaxTAdjust.
func (b BBox) IntersectRay(origin Point, dirInv Vector, maxT float32) bool {
	t1x, t2x := (b.Min.X-origin.X)*dirInv.X, (b.Max.X-origin.X)*dirInv.X
	t1y, t2y := (b.Min.Y-origin.Y)*dirInv.Y, (b.Max.Y-origin.Y)*dirInv.Y
	t1z, t2z := (b.Min.Z-origin.Z)*dirInv.Z, (b.Max.Z-origin.Z)*dirInv.Z

	hitt0 := maxf32(maxf32(minf32(t1x, t2x), minf32(t1y, t2y)), minf32(t1z, t2z))
	hitt1 := minf32(minf32(maxf32(t1x, t2x), maxf32(t1y, t2y)), maxf32(t1z, t2z)) * bboxMaxTAdjust

	return maxf32(hitt0, 0) <= minf32(hitt1, maxT)
}

// Transformed returns a new bbox enclosing all eight corners of b after
// applying xform: conservative but exact for axis-aligned boxes under
// affine maps.
func (b BBox) Transformed(xform Transform) BBox {
	corners := [8]Point{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}

	out := NewBBox()
	for _, c := range corners {
		p := xform.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// TransformBBoxSliceFrom resamples an animated sequence of bboxes through
// an animated sequence of local-to-parent transforms, carrying bboxes
// from an instance's local space into its parent's space and producing
// one output bbox per the longer of the two input slices. When the slice
// lengths differ, the shorter one is resampled via LerpSlice at each
// output index.
func TransformBBoxSliceFrom(bbsIn []BBox, xforms []Transform) []BBox {
	if len(xforms) == 0 {
		return nil
	}

	out := make([]BBox, 0, maxInt(len(bbsIn), len(xforms)))

	switch {
	case len(bbsIn) == len(xforms):
		for i, bb := range bbsIn {
			out = append(out, bb.Transformed(xforms[i]))
		}
	case len(bbsIn) > len(xforms):
		s := float32(len(bbsIn) - 1)
		for i, bb := range bbsIn {
			xf := LerpSlice(xforms, float32(i)/s)
			out = append(out, bb.Transformed(xf))
		}
	default:
		s := float32(len(xforms) - 1)
		for i, xf := range xforms {
			bb := LerpSlice(bbsIn, float32(i)/s)
			out = append(out, bb.Transformed(xf))
		}
	}

	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
