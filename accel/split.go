package accel

import (
	"math"

	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/geom"
)

// SAHBinCount is the number of bins the SAH splitter builds per axis.
// Spec.md §4.2 calls out 13 specifically: prime bin counts empirically
// give slightly better splits than round numbers.
const SAHBinCount = 13

func centroidBounds[T Bounded](objects []T) geom.BBox {
	b := geom.NewBBox()
	for _, obj := range objects {
		b = b.Union(geom.LerpSlice(obj.Bounds(), 0.5))
	}
	return b
}

func centroid(b geom.BBox, axis int) float32 {
	return (b.Min.Get(axis) + b.Max.Get(axis)) * 0.5
}

type sahBin struct {
	left, right           geom.BBox
	leftCount, rightCount int
}

// sahSplit partitions objects in place by the surface area heuristic,
// returning the partition index and the axis it split on.
func sahSplit[T Bounded](objects []T) (splitIndex, splitAxis int) {
	bounds := centroidBounds(objects)

	var divs [3][SAHBinCount - 1]float32
	for d := 0; d < 3; d++ {
		extent := bounds.Max.Get(d) - bounds.Min.Get(d)
		for div := 0; div < SAHBinCount-1; div++ {
			part := extent * (float32(div+1) / float32(SAHBinCount))
			divs[d][div] = bounds.Min.Get(d) + part
		}
	}

	var bins [3][SAHBinCount - 1]sahBin
	for d := range bins {
		for div := range bins[d] {
			bins[d][div] = sahBin{left: geom.NewBBox(), right: geom.NewBBox()}
		}
	}

	for _, obj := range objects {
		tb := geom.LerpSlice(obj.Bounds(), 0.5)

		for d := 0; d < 3; d++ {
			cd := centroid(tb, d)
			for div := 0; div < SAHBinCount-1; div++ {
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
		for div := 0; div < SAHBinCount-1; div++ {
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
		tb := geom.LerpSlice((*obj).Bounds(), 0.5)
		return centroid(tb, splitAxis) < divVal
	})

	splitIndex = clampSplit(idx, len(objects))
	return
}

// medianSplit quick-selects the median object by centroid along the
// longest centroid-extent axis.
func medianSplit[T Bounded](objects []T) (splitIndex, splitAxis int) {
	bounds := centroidBounds(objects)

	largest := float32(math.Inf(-1))
	for i := 0; i < 3; i++ {
		extent := bounds.Max.Get(i) - bounds.Min.Get(i)
		if extent > largest {
			largest = extent
			splitAxis = i
		}
	}

	place := len(objects) / 2
	if place == 0 {
		place = 1
	}

	algorithm.QuickSelect(objects, place, func(a, b T) bool {
		ca := centroid(geom.LerpSlice(a.Bounds(), 0.5), splitAxis)
		cb := centroid(geom.LerpSlice(b.Bounds(), 0.5), splitAxis)
		return ca < cb
	})

	splitIndex = clampSplit(place, len(objects))
	return
}

func clampSplit(idx, n int) int {
	if idx < 1 {
		return 1
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
