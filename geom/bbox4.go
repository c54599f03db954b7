package geom

import "math"

// BBox4 packs four axis-aligned bounding boxes lane-parallel, used by the
// BVH4 traversal node layout in package accel. Grounded on the original
// source's bbox4.rs, with glam's Vec4/BVec4A replaced by this package's
// hand-rolled Float4/Bool4 (see doc.go for why that one piece is stdlib).
type BBox4 struct {
	X, Y, Z [2]Float4 // [0]=min, [1]=max, one lane per child
}

// NewBBox4 returns four degenerate (empty) lanes.
func NewBBox4() BBox4 {
	posInf := SplatFloat4(float32(math.Inf(1)))
	negInf := SplatFloat4(float32(math.Inf(-1)))
	return BBox4{
		X: [2]Float4{posInf, negInf},
		Y: [2]Float4{posInf, negInf},
		Z: [2]Float4{posInf, negInf},
	}
}

// BBox4FromBBoxes packs four scalar BBoxes into one BBox4, one per lane,
// in child order.
func BBox4FromBBoxes(b0, b1, b2, b3 BBox) BBox4 {
	return BBox4{
		X: [2]Float4{
			{b0.Min.X, b1.Min.X, b2.Min.X, b3.Min.X},
			{b0.Max.X, b1.Max.X, b2.Max.X, b3.Max.X},
		},
		Y: [2]Float4{
			{b0.Min.Y, b1.Min.Y, b2.Min.Y, b3.Min.Y},
			{b0.Max.Y, b1.Max.Y, b2.Max.Y, b3.Max.Y},
		},
		Z: [2]Float4{
			{b0.Min.Z, b1.Min.Z, b2.Min.Z, b3.Min.Z},
			{b0.Max.Z, b1.Max.Z, b2.Max.Z, b3.Max.Z},
		},
	}
}

// IntersectRay runs the slab test against all four lanes at once,
// returning a Bool4 mask of which children were hit within [0, maxT].
func (b BBox4) IntersectRay(origin Point, dirInv Vector, maxT float32) Bool4 {
	rox, roy, roz := SplatFloat4(origin.X), SplatFloat4(origin.Y), SplatFloat4(origin.Z)
	rdix, rdiy, rdiz := SplatFloat4(dirInv.X), SplatFloat4(dirInv.Y), SplatFloat4(dirInv.Z)
	maxTv := SplatFloat4(maxT)

	t1x := b.X[0].Sub(rox).Mul(rdix)
	t2x := b.X[1].Sub(rox).Mul(rdix)
	t1y := b.Y[0].Sub(roy).Mul(rdiy)
	t2y := b.Y[1].Sub(roy).Mul(rdiy)
	t1z := b.Z[0].Sub(roz).Mul(rdiz)
	t2z := b.Z[1].Sub(roz).Mul(rdiz)

	tFarX, tNearX := t1x.Max(t2x), t1x.Min(t2x)
	tFarY, tNearY := t1y.Max(t2y), t1y.Min(t2y)
	tFarZ, tNearZ := t1z.Max(t2z), t1z.Min(t2z)

	farT := tFarX.Min(tFarY.Min(tFarZ)).Scale(bboxMaxTAdjust).Min(maxTv)
	nearT := tNearX.Max(tNearY).Max(tNearZ.Max(SplatFloat4(0)))

	return nearT.Lt(farT)
}

// Union returns the lane-wise union of two BBox4s.
func (b BBox4) Union(o BBox4) BBox4 {
	return BBox4{
		X: [2]Float4{b.X[0].Min(o.X[0]), b.X[1].Max(o.X[1])},
		Y: [2]Float4{b.Y[0].Min(o.Y[0]), b.Y[1].Max(o.Y[1])},
		Z: [2]Float4{b.Z[0].Min(o.Z[0]), b.Z[1].Max(o.Z[1])},
	}
}

// Lerp implements Lerpable for BBox4.
func (b BBox4) Lerp(o BBox4, alpha float32) BBox4 {
	return BBox4{
		X: [2]Float4{b.X[0].lerp4(o.X[0], alpha), b.X[1].lerp4(o.X[1], alpha)},
		Y: [2]Float4{b.Y[0].lerp4(o.Y[0], alpha), b.Y[1].lerp4(o.Y[1], alpha)},
		Z: [2]Float4{b.Z[0].lerp4(o.Z[0], alpha), b.Z[1].lerp4(o.Z[1], alpha)},
	}
}

func (a Float4) lerp4(b Float4, alpha float32) Float4 {
	var out Float4
	for i := range a {
		out[i] = lerpf(a[i], b[i], alpha)
	}
	return out
}
