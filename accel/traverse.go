package accel

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
)

// ObjectTest is called once per object in a visited leaf, with the
// subset of the batch's ray indices currently active at that leaf
// (ray indices, not a contiguous range). It is expected to update
// ray.MaxT / ray.IsDone on hits.
type ObjectTest func(objIndex int, batch *rays.Batch, rayIndices []int)

// Traverse walks the tree for the rays named by rayIndices, partitioning
// that index set at every internal node by the BBox4 slab test and
// invoking test at every leaf reached.
func (b *BVH4) Traverse(batch *rays.Batch, rayIndices []int, test ObjectTest) {
	if len(b.Nodes) == 0 || len(rayIndices) == 0 {
		return
	}

	type frame struct {
		node int
		rays []int
	}

	stack := make([]frame, 0, BVH4MaxDepth*3+2)
	stack = append(stack, frame{node: 0, rays: rayIndices})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := b.Nodes[top.node]

		if node.Kind == bvh4Leaf {
			for obj := node.ObjectStart; obj < node.ObjectEnd; obj++ {
				test(obj, batch, top.rays)
			}
			continue
		}

		hitsByLane := make([][]int, node.ChildCount)
		for _, ri := range top.rays {
			r := &batch.Rays[ri]
			if r.IsDone {
				continue
			}
			box := geom.LerpSlice(node.Bounds, r.Time)
			mask := box.IntersectRay(r.Orig, r.DirInv, r.MaxT)
			for lane := 0; lane < node.ChildCount; lane++ {
				if mask[lane] {
					hitsByLane[lane] = append(hitsByLane[lane], ri)
				}
			}
		}

		pattern := raySignPattern(batch.Rays[top.rays[0]].DirInv)
		order := traversalTable[pattern][node.TraversalCode]

		// Push in reverse visitation order so the front-to-back child
		// is processed first (stack is LIFO).
		for i := node.ChildCount - 1; i >= 0; i-- {
			shift := uint((node.ChildCount - 1 - i) * 2)
			lane := int((order >> shift) & 3)
			if len(hitsByLane[lane]) == 0 {
				continue
			}
			stack = append(stack, frame{node: node.ChildStart + lane, rays: hitsByLane[lane]})
		}
	}
}

func raySignPattern(dirInv geom.Vector) int {
	pattern := 0
	if dirInv.X < 0 {
		pattern |= 1
	}
	if dirInv.Y < 0 {
		pattern |= 2
	}
	if dirInv.Z < 0 {
		pattern |= 4
	}
	return pattern
}

// Bounds returns the root node's time-animated bounds, or a single
// degenerate box for an empty tree.
func (b *BVH4) Bounds() []geom.BBox {
	if len(b.Nodes) == 0 {
		return []geom.BBox{geom.NewBBox()}
	}
	root := b.Nodes[0]
	if root.Kind == bvh4Leaf {
		return b.leafRootBounds
	}
	out := make([]geom.BBox, len(root.Bounds))
	for i, b4 := range root.Bounds {
		box := geom.NewBBox()
		for lane := 0; lane < root.ChildCount; lane++ {
			box = box.Union(geom.BBox{
				Min: geom.NewPoint(b4.X[0][lane], b4.Y[0][lane], b4.Z[0][lane]),
				Max: geom.NewPoint(b4.X[1][lane], b4.Y[1][lane], b4.Z[1][lane]),
			})
		}
		out[i] = box
	}
	return out
}
