package accel

import (
	"math/bits"

	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/geom"
)

// BVHMaxDepth bounds the scalar binary builder's recursion: past this
// depth the builder falls back to median splitting instead of SAH
// binning.
const BVHMaxDepth = 64

// defaultUnionFactor is the default multiplier for the "union factor"
// heuristic: a parent may collapse per-time-sample bounds into a single
// union box when doing so doesn't inflate the surface area by more than
// this factor.
const defaultUnionFactor = 1.4

// NodeKind distinguishes BVHBase node variants.
type NodeKind uint8

const (
	KindInternal NodeKind = iota
	KindLeaf
)

// BVHBaseNode is a binary BVH node living in a flat array, indexed by
// position rather than pointer.
type BVHBaseNode struct {
	Kind NodeKind

	// Internal
	ChildL, ChildR int
	SplitAxis      uint8

	// Leaf
	ObjectStart, ObjectEnd int

	BoundsStart, BoundsEnd int
}

// BVHBase is the intermediary flat binary BVH the builder produces,
// later fused into a BVH4 for SIMD traversal.
type BVHBase struct {
	Nodes  []BVHBaseNode
	Bounds []geom.BBox
	Depth  int

	unionFactor float32
}

// BuildBVHBase builds a binary BVH over objects, partitioning the slice
// in place. objectsPerLeaf caps how many objects a leaf may hold.
func BuildBVHBase[T Bounded](objects []T, objectsPerLeaf int, unionFactor float32) *BVHBase {
	if unionFactor <= 0 {
		unionFactor = defaultUnionFactor
	}
	b := &BVHBase{unionFactor: unionFactor}
	recursiveBuildT(b, objects, 0, 0, objectsPerLeaf)
	return b
}

// RootNodeIndex is always 0 for a non-empty tree.
func (b *BVHBase) RootNodeIndex() int { return 0 }

func (b *BVHBase) accBounds(objects []interface{ Bounds() []geom.BBox }) []geom.BBox {
	maxLen := 0
	for _, obj := range objects {
		if l := len(obj.Bounds()); l > maxLen {
			maxLen = l
		}
	}

	cache := make([]geom.BBox, maxLen)
	for i := range cache {
		cache[i] = geom.NewBBox()
	}

	for _, obj := range objects {
		bounds := obj.Bounds()
		if len(bounds) == maxLen {
			for i, bb := range bounds {
				cache[i] = cache[i].Union(bb)
			}
		} else {
			s := float32(maxLen - 1)
			for i := range cache {
				cache[i] = cache[i].Union(geom.LerpSlice(bounds, float32(i)/s))
			}
		}
	}
	return cache
}

// pushBounds appends either the union of samples or the full animated
// slice, per the union-factor heuristic, and returns the pushed range.
func (b *BVHBase) pushBounds(samples []geom.BBox) (start, end int) {
	start = len(b.Bounds)

	union := geom.NewBBox()
	var totalArea float32
	for _, bb := range samples {
		union = union.Union(bb)
		totalArea += bb.SurfaceArea()
	}
	avgArea := totalArea / float32(len(samples))

	if union.SurfaceArea() <= avgArea*b.unionFactor {
		b.Bounds = append(b.Bounds, union)
	} else {
		b.Bounds = append(b.Bounds, samples...)
	}

	return start, len(b.Bounds)
}

// recursiveBuildT is the generic recursive worker; BuildBVHBase forwards
// into it directly (Go generics can't be used on methods, only on free
// functions, hence this split).
func recursiveBuildT[T Bounded](b *BVHBase, objects []T, offset, depth, objectsPerLeaf int) (nodeIndex, boundsStart, boundsEnd int) {
	me := len(b.Nodes)

	if len(objects) == 0 {
		return 0, 0, 0
	}

	if len(objects) <= objectsPerLeaf {
		boxed := make([]interface{ Bounds() []geom.BBox }, len(objects))
		for i, o := range objects {
			boxed[i] = o
		}
		cache := b.accBounds(boxed)
		bi, be := b.pushBounds(cache)

		b.Nodes = append(b.Nodes, BVHBaseNode{
			Kind:        KindLeaf,
			ObjectStart: offset,
			ObjectEnd:   offset + len(objects),
			BoundsStart: bi,
			BoundsEnd:   be,
		})
		if depth > b.Depth {
			b.Depth = depth
		}
		return me, bi, be
	}

	b.Nodes = append(b.Nodes, BVHBaseNode{Kind: KindInternal})

	var splitIndex, splitAxis int
	if log2Ceil(len(objects)) < BVHMaxDepth-depth {
		splitIndex, splitAxis = sahSplit(objects)
	} else {
		splitIndex, splitAxis = medianSplit(objects)
	}

	c1Index, c1Bi, c1Be := recursiveBuildT(b, objects[:splitIndex], offset, depth+1, objectsPerLeaf)
	c2Index, c2Bi, c2Be := recursiveBuildT(b, objects[splitIndex:], offset+splitIndex, depth+1, objectsPerLeaf)

	merged := algorithm.MergeSlicesAppend(nil, b.Bounds[c1Bi:c1Be], b.Bounds[c2Bi:c2Be],
		func(a, bb geom.BBox) geom.BBox { return a.Union(bb) })
	bi, be := b.pushBounds(merged)

	b.Nodes[me] = BVHBaseNode{
		Kind:        KindInternal,
		ChildL:      c1Index,
		ChildR:      c2Index,
		SplitAxis:   uint8(splitAxis),
		BoundsStart: bi,
		BoundsEnd:   be,
	}
	return me, bi, be
}

func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
