package accel

import (
	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/geom"
)

// BVH4MaxDepth is the SIMD depth budget: smaller than the scalar
// BVHMaxDepth since each BVH4 level fuses two binary levels.
const BVH4MaxDepth = 42

// bvh4NodeKind distinguishes fused-node variants.
type bvh4NodeKind uint8

const (
	bvh4Internal bvh4NodeKind = iota
	bvh4Leaf
)

// BVH4Node is a node in the SIMD-collapsed tree, stored as a flat array
// allocated from an Arena. Internal nodes reference a time-animated
// slice of BBox4 (one lane per grandchild) and a contiguous child-node
// range; leaves reference an object range.
type BVH4Node struct {
	Kind bvh4NodeKind

	Bounds         []geom.BBox4
	ChildStart     int
	ChildCount     int
	TraversalCode  uint8

	ObjectStart, ObjectEnd int
}

// BVH4 is the SIMD BVH built by fusing a BVHBase.
type BVH4 struct {
	Nodes []BVH4Node
	Depth int

	leafRootBounds []geom.BBox // bounds of a leaf root, which has no BBox4 of its own
}

// BuildBVH4 constructs a BVH4 from objects by first building a binary
// BVHBase and then fusing it two levels at a time. The arena owns the
// node array for the lifetime of the scene.
func BuildBVH4[T Bounded](a *arena.Arena, objects []T, objectsPerLeaf int, unionFactor float32) *BVH4 {
	if len(objects) == 0 {
		return &BVH4{}
	}

	base := BuildBVHBase(objects, objectsPerLeaf, unionFactor)

	b := &BVH4{Depth: base.Depth/2 + 1}
	if root := base.Nodes[base.RootNodeIndex()]; root.Kind == KindLeaf {
		b.leafRootBounds = base.Bounds[root.BoundsStart:root.BoundsEnd]
	}
	b.Nodes = make([]BVH4Node, 1, len(base.Nodes)) // slot 0 holds the root
	b.fuse(base, base.RootNodeIndex(), 0)
	if a != nil {
		b.Nodes = arena.CopySlice(a, b.Nodes)
	}
	return b
}

// fuse writes the fused node for baseIdx into b.Nodes[dst], reserving
// its children a contiguous block at the end of b.Nodes before fusing
// each of them in turn.
func (b *BVH4) fuse(base *BVHBase, baseIdx, dst int) {
	node := base.Nodes[baseIdx]

	if node.Kind == KindLeaf {
		b.Nodes[dst] = BVH4Node{
			Kind:        bvh4Leaf,
			ObjectStart: node.ObjectStart,
			ObjectEnd:   node.ObjectEnd,
		}
		return
	}

	childL := base.Nodes[node.ChildL]
	childR := base.Nodes[node.ChildR]

	var grandchildren []int
	var topo Topology
	var s1, s2, s3 uint8 = node.SplitAxis, 0, 0

	switch {
	case childL.Kind == KindInternal && childR.Kind == KindInternal:
		topo = Full
		s2, s3 = childL.SplitAxis, childR.SplitAxis
		grandchildren = []int{childL.ChildL, childL.ChildR, childR.ChildL, childR.ChildR}
	case childL.Kind == KindInternal:
		topo = Left
		s2 = childL.SplitAxis
		grandchildren = []int{childL.ChildL, childL.ChildR, node.ChildR}
	case childR.Kind == KindInternal:
		topo = Right
		s3 = childR.SplitAxis
		grandchildren = []int{node.ChildL, childR.ChildL, childR.ChildR}
	default:
		topo = TopOnly
		grandchildren = []int{node.ChildL, node.ChildR}
	}

	bounds := fuseBounds(base, grandchildren)

	childStart := len(b.Nodes)
	b.Nodes = append(b.Nodes, make([]BVH4Node, len(grandchildren))...) // child slots, filled below
	for i, gc := range grandchildren {
		b.fuse(base, gc, childStart+i)
	}

	b.Nodes[dst] = BVH4Node{
		Kind:          bvh4Internal,
		Bounds:        bounds,
		ChildStart:    childStart,
		ChildCount:    len(grandchildren),
		TraversalCode: calcTraversalCode(s1, s2, s3, topo),
	}
}

// fuseBounds packs each grandchild's animated bounds range into a
// time-sampled slice of BBox4, resampling the shorter-lived children's
// bounds against the longest sample count present among them.
func fuseBounds(base *BVHBase, grandchildren []int) []geom.BBox4 {
	maxLen := 1
	ranges := make([][2]int, 4)
	for i, gc := range grandchildren {
		start, end := base.Nodes[gc].BoundsStart, base.Nodes[gc].BoundsEnd
		ranges[i] = [2]int{start, end}
		if n := end - start; n > maxLen {
			maxLen = n
		}
	}
	for i := len(grandchildren); i < 4; i++ {
		ranges[i] = [2]int{-1, -1}
	}

	sample := func(slotIdx, timeIdx int) geom.BBox {
		r := ranges[slotIdx]
		if r[0] < 0 {
			return geom.NewBBox()
		}
		slice := base.Bounds[r[0]:r[1]]
		if len(slice) < 2 {
			return slice[0]
		}
		return geom.LerpSlice(slice, float32(timeIdx)/float32(maxLen-1))
	}

	out := make([]geom.BBox4, maxLen)
	for t := 0; t < maxLen; t++ {
		out[t] = geom.BBox4FromBBoxes(sample(0, t), sample(1, t), sample(2, t), sample(3, t))
	}
	return out
}
