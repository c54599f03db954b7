package lightaccel

import (
	"math"

	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/shading"
)

const arityLog2 = 3 // collapse depth; 1<<arityLog2 is the tree's arity
const arity = 1 << arityLog2

// Node is a flattened light tree node: either a leaf referencing one
// light, or an inner node whose children occupy the contiguous range
// Nodes[ChildStart : ChildStart+ChildCount] (at most `arity` of them).
// Grounded on accel/light_tree.rs's Node enum, flattened into index
// form the way package accel flattens its BVH4.
type Node struct {
	IsLeaf      bool
	BoundsStart int
	BoundsEnd   int
	Energy      float32
	LightIndex  int
	ChildStart  int
	ChildCount  int
}

// Tree is an importance-weighted light accelerator built by SAH
// splitting a binary tree and collapsing every `arityLog2` levels into
// a single `arity`-ary node. Grounded on accel/light_tree.rs.
type Tree struct {
	Nodes  []Node
	Bounds []geom.BBox
	Depth  int
}

type binaryNode struct {
	isLeaf      bool
	boundsStart int
	boundsEnd   int
	energy      float32
	childIndex  int // right-child node index if inner, light index if leaf
}

type treeBuilder struct {
	nodes  []binaryNode
	bounds []geom.BBox
	depth  int
}

// BuildTree constructs a Tree over lights, using info to fetch each
// light's animated bounds and approximate power.
func BuildTree[T any](lights []T, info func(T) (bounds []geom.BBox, power float32)) Tree {
	if len(lights) == 0 {
		return Tree{}
	}

	b := &treeBuilder{}
	order := make([]int, len(lights))
	for i := range order {
		order[i] = i
	}
	recursiveBuildTree(b, 0, 0, order, func(i int) ([]geom.BBox, float32) { return info(lights[i]) })

	var t Tree
	t.Nodes = make([]Node, 1) // slot 0 holds the root
	flattenTree(b, 0, 0, &t.Nodes, &t.Bounds)
	// Leaves record positions in the partitioned order; map them back to
	// indices into lights.
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf {
			t.Nodes[i].LightIndex = order[t.Nodes[i].LightIndex]
		}
	}
	t.Depth = b.depth
	return t
}

func recursiveBuildTree[T any](b *treeBuilder, offset, depth int, objects []T, info func(T) ([]geom.BBox, float32)) (meIndex, boundsStart, boundsEnd int) {
	meIndex = len(b.nodes)

	switch len(objects) {
	case 0:
		return 0, 0, 0
	case 1:
		bi := len(b.bounds)
		bounds, energy := info(objects[0])
		b.bounds = append(b.bounds, bounds...)
		b.nodes = append(b.nodes, binaryNode{
			isLeaf:      true,
			boundsStart: bi,
			boundsEnd:   len(b.bounds),
			energy:      energy,
			childIndex:  offset,
		})
		if b.depth < depth {
			b.depth = depth
		}
		return meIndex, bi, len(b.bounds)
	}

	b.nodes = append(b.nodes, binaryNode{}) // placeholder, patched below

	splitIndex, _ := sahSplit(objects, func(o T) []geom.BBox { bounds, _ := info(o); return bounds })

	_, c1s, c1e := recursiveBuildTree(b, offset, depth+1, objects[:splitIndex], info)
	c2Index, c2s, c2e := recursiveBuildTree(b, offset+splitIndex, depth+1, objects[splitIndex:], info)

	bi := len(b.bounds)
	merged := algorithm.MergeSlicesAppend(nil, b.bounds[c1s:c1e], b.bounds[c2s:c2e], func(a, bb geom.BBox) geom.BBox {
		return a.Union(bb)
	})
	b.bounds = append(b.bounds, merged...)

	energy := b.nodes[meIndex+1].energy + b.nodes[c2Index].energy
	b.nodes[meIndex] = binaryNode{
		isLeaf:      false,
		boundsStart: bi,
		boundsEnd:   len(b.bounds),
		energy:      energy,
		childIndex:  c2Index,
	}
	return meIndex, bi, len(b.bounds)
}

// nodeChildCount and nodeNthChildIndex implement the level-collapse
// lookup from accel/light_tree.rs's node_child_count_recurse and
// node_nth_child_index_recurse: they walk `arityLog2` levels of the
// binary tree to find the final-arity children of a collapsed node.
func nodeChildCount(b *treeBuilder, nodeIndex int) int {
	return nodeChildCountRecurse(b, arityLog2, nodeIndex)
}

func nodeChildCountRecurse(b *treeBuilder, levelCollapse, nodeIndex int) int {
	if levelCollapse > 0 {
		if b.nodes[nodeIndex].isLeaf {
			return 1
		}
		left := nodeChildCountRecurse(b, levelCollapse-1, nodeIndex+1)
		right := nodeChildCountRecurse(b, levelCollapse-1, b.nodes[nodeIndex].childIndex)
		return left + right
	}
	return 1
}

func nodeNthChildIndex(b *treeBuilder, nodeIndex, childN int) int {
	idx, _ := nodeNthChildIndexRecurse(b, arityLog2, nodeIndex, childN)
	return idx
}

func nodeNthChildIndexRecurse(b *treeBuilder, levelCollapse, nodeIndex, childN int) (int, int) {
	if levelCollapse > 0 && !b.nodes[nodeIndex].isLeaf {
		index, rem := nodeNthChildIndexRecurse(b, levelCollapse-1, nodeIndex+1, childN)
		if rem == 0 {
			return index, 0
		}
		return nodeNthChildIndexRecurse(b, levelCollapse-1, b.nodes[nodeIndex].childIndex, rem-1)
	}
	return nodeIndex, childN
}

// flattenTree writes the collapsed node for nodeIndex into (*outNodes)[dst],
// reserving its children a contiguous block at the end of *outNodes
// before flattening each of them in turn.
func flattenTree(b *treeBuilder, nodeIndex, dst int, outNodes *[]Node, outBounds *[]geom.BBox) {
	bn := b.nodes[nodeIndex]

	bi := len(*outBounds)
	*outBounds = append(*outBounds, b.bounds[bn.boundsStart:bn.boundsEnd]...)

	if bn.isLeaf {
		(*outNodes)[dst] = Node{
			IsLeaf:      true,
			BoundsStart: bi,
			BoundsEnd:   len(*outBounds),
			Energy:      bn.energy,
			LightIndex:  bn.childIndex,
		}
		return
	}

	childCount := nodeChildCount(b, nodeIndex)
	childStart := len(*outNodes)
	*outNodes = append(*outNodes, make([]Node, childCount)...) // child slots, filled below
	for i := 0; i < childCount; i++ {
		flattenTree(b, nodeNthChildIndex(b, nodeIndex, i), childStart+i, outNodes, outBounds)
	}

	(*outNodes)[dst] = Node{
		IsLeaf:      false,
		BoundsStart: bi,
		BoundsEnd:   len(*outBounds),
		Energy:      bn.energy,
		ChildStart:  childStart,
		ChildCount:  childCount,
	}
	return idx
}

// Select descends the tree, picking a child at each inner node with
// probability proportional to its energy times an effective-sphere
// light-response estimate, and falling back to a uniform choice if the
// total is zero. Grounded on accel/light_tree.rs's select.
func (t Tree) Select(inc geom.Vector, pos geom.Point, nor, norG geom.Normal, closure shading.Closure, time, n float32) (int, float32, float32, bool) {
	if len(t.Nodes) == 0 {
		return 0, 0, 0, false
	}

	nodeIdx := 0
	totProb := float32(1)
	for !t.Nodes[nodeIdx].IsLeaf {
		node := t.Nodes[nodeIdx]

		var ps [arity]float32
		var total float32
		for i := 0; i < node.ChildCount; i++ {
			p := t.childProb(node.ChildStart+i, pos, inc, nor, norG, closure, time)
			ps[i] = p
			total += p
		}
		if total <= 0 {
			p := 1 / float32(node.ChildCount)
			for i := 0; i < node.ChildCount; i++ {
				ps[i] = p
			}
		} else {
			for i := 0; i < node.ChildCount; i++ {
				ps[i] /= total
			}
		}

		base := float32(0)
		for i := 0; i < node.ChildCount; i++ {
			p := ps[i]
			if n <= base+p || i == node.ChildCount-1 {
				totProb *= p
				n = (n - base) / p
				nodeIdx = node.ChildStart + i
				break
			}
			base += p
		}
	}

	return t.Nodes[nodeIdx].LightIndex, totProb, n, true
}

func (t Tree) childProb(childIdx int, pos geom.Point, inc geom.Vector, nor, norG geom.Normal, closure shading.Closure, time float32) float32 {
	child := t.Nodes[childIdx]
	bbox := geom.LerpSlice(t.Bounds[child.BoundsStart:child.BoundsEnd], time)
	center := bbox.Min.Lerp(bbox.Max, 0.5)
	d := center.Sub(pos)
	r2 := bbox.Max.Sub(bbox.Min).Length2() * 0.25
	if r2 <= 0 {
		r2 = 1e-12
	}
	invSurfaceArea := 1 / r2

	approxContrib := estimateOverSphere(closure, inc, d, r2, nor)
	return child.Energy * invSurfaceArea * approxContrib
}

// estimateOverSphere derives the half-angle cosine an effective sphere
// of squared radius r2 subtends from a point d away and forwards it to
// the closure's EstimateEvalOverSolidAngle.
func estimateOverSphere(closure shading.Closure, inc, d geom.Vector, r2 float32, nor geom.Normal) float32 {
	dist2 := d.Length2()
	var cosTheta float32
	if dist2 <= r2 {
		cosTheta = -1
	} else {
		s := r2 / dist2
		if s > 1 {
			s = 1
		}
		cosTheta = float32(math.Sqrt(float64(1 - s)))
	}
	return closure.EstimateEvalOverSolidAngle(inc, d.Normalized(), nor, cosTheta)
}

func (t Tree) ApproximateEnergy() float32 {
	if len(t.Nodes) == 0 {
		return 0
	}
	return t.Nodes[0].Energy
}
