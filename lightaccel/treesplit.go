package lightaccel

import (
	"math"

	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/geom"
)

// sahBinCount matches accel.SAHBinCount; duplicated here rather than
// imported because the accel package's sahSplit is unexported and
// constrained to its own Bounded interface, while this tree needs a
// closure-based bounds getter instead.
const sahBinCount = 13

type lightSahBin struct {
	left, right           geom.BBox
	leftCount, rightCount int
}

// sahSplit partitions objects in place by the surface area heuristic
// over centroid bounds, using bounds to fetch each object's animated
// bounding boxes.
func sahSplit[T any](objects []T, bounds func(T) []geom.BBox) (splitIndex, splitAxis int) {
	centroidOf := func(o T) geom.Point {
		b := geom.LerpSlice(bounds(o), 0.5)
		return b.Min.Lerp(b.Max, 0.5)
	}

	cb := geom.NewBBox()
	for _, obj := range objects {
		c := centroidOf(obj)
		cb.Min = cb.Min.Min(c)
		cb.Max = cb.Max.Max(c)
	}

	var divs [3][sahBinCount - 1]float32
	for d := 0; d < 3; d++ {
		extent := cb.Max.Get(d) - cb.Min.Get(d)
		for div := 0; div < sahBinCount-1; div++ {
			part := extent * (float32(div+1) / float32(sahBinCount))
			divs[d][div] = cb.Min.Get(d) + part
		}
	}

	var bins [3][sahBinCount - 1]lightSahBin
	for d := range bins {
		for div := range bins[d] {
			bins[d][div] = lightSahBin{left: geom.NewBBox(), right: geom.NewBBox()}
		}
	}

	for _, obj := range objects {
		tb := geom.LerpSlice(bounds(obj), 0.5)
		c := centroidOf(obj)
		for d := 0; d < 3; d++ {
			cd := c.Get(d)
			for div := 0; div < sahBinCount-1; div++ {
				bin := &bins[d][div]
				if cd <= divs[d][div] {
					bin.left = bin.left.Union(tb)
					bin.leftCount++
				} else {
					bin.right = bin.right.Union(tb)
					bin.rightCount++
				}
			}
		}
	}

	splitAxis = 0
	var divVal float32
	smallestCost := float32(math.Inf(1))
	for d := 0; d < 3; d++ {
		for div := 0; div < sahBinCount-1; div++ {
			bin := bins[d][div]
			cost := bin.left.SurfaceArea()*float32(bin.leftCount) + bin.right.SurfaceArea()*float32(bin.rightCount)
			if cost < smallestCost {
				splitAxis = d
				divVal = divs[d][div]
				smallestCost = cost
			}
		}
	}

	idx := algorithm.Partition(objects, func(obj *T) bool {
		return centroidOf(*obj).Get(splitAxis) < divVal
	})

	if idx < 1 {
		idx = 1
	}
	if idx >= len(objects) {
		idx = len(objects) - 1
	}
	return idx, splitAxis
}
