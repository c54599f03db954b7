package tracer

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/scene"
	"github.com/achilleasa/tracecore/xformstack"
)

// Tracer walks a scene's assembly hierarchy for a batch of rays,
// resolving the closest surface intersection (or, for occlusion rays,
// merely whether anything blocks them). It carries no per-trace state of
// its own; every call is independently reentrant over the batch/stack
// pair handed to it.
type Tracer struct{}

// New returns a Tracer ready for repeated Trace calls.
func New() *Tracer { return &Tracer{} }

// Trace resolves intersections for the rays named by rayIndices against
// root, writing results into out at each ray's own index. rayIndices
// and the rays they name must already be in root's local (i.e. world)
// space; xstack and rstack are scratch resources owned by the caller
// and reused across buckets.
func (t *Tracer) Trace(root *scene.Assembly, batch *rays.Batch, rayIndices []int, xstack *xformstack.Stack, rstack *rays.Stack, out []scene.Intersection) {
	traceAssembly(root, batch, rayIndices, xstack, rstack, out)
}

// traceAssembly descends assembly's object BVH. Each visited leaf names
// one Instance; its own animated transform is pushed onto xstack and
// applied to the active rays before recursing into either a leaf
// Surface or a nested child Assembly, then undone on the way back out.
func traceAssembly(assembly *scene.Assembly, batch *rays.Batch, rayIndices []int, xstack *xformstack.Stack, rstack *rays.Stack, out []scene.Intersection) {
	if assembly.ObjectAccel == nil {
		return
	}

	assembly.ObjectAccel.Traverse(batch, rayIndices, func(objIdx int, b *rays.Batch, leafRays []int) {
		inst := assembly.InstanceAt(objIdx)
		xforms := assembly.Xforms[inst.XformStart:inst.XformEnd]

		active := leafRays[:0:0]
		for _, ri := range leafRays {
			if !b.Rays[ri].IsDone {
				active = append(active, ri)
			}
		}
		if len(active) == 0 {
			return
		}

		snapshot := make([]rays.Ray, 0, len(active))
		prevMaxT := make([]float32, 0, len(active))
		valid := active[:0:0]
		for _, ri := range active {
			r := b.Rays[ri]

			xform := geom.LerpSlice(xforms, r.Time)
			inv, invertible := xform.Invert()
			if !invertible {
				continue
			}

			snapshot = append(snapshot, r)
			prevMaxT = append(prevMaxT, r.MaxT)
			valid = append(valid, ri)

			local := r.Transformed(inv)
			local.MaxT = r.MaxT
			local.IsDone = r.IsDone
			b.Rays[ri] = local
		}
		if len(valid) == 0 {
			return
		}

		xstack.Push(xforms)
		switch inst.Kind {
		case scene.InstanceObject:
			obj := assembly.Objects[inst.DataIndex]
			if obj.Kind == scene.ObjectSurface {
				obj.Surface.IntersectRays(b, valid, rstack, out)
			}
		case scene.InstanceAssembly:
			child := assembly.Assemblies[inst.DataIndex]
			traceAssembly(child, b, valid, xstack, rstack, out)
		}
		xstack.Pop()

		for i, ri := range valid {
			maxT := b.Rays[ri].MaxT
			isDone := b.Rays[ri].IsDone
			xform := geom.LerpSlice(xforms, snapshot[i].Time)

			b.Rays[ri] = snapshot[i]
			b.Rays[ri].MaxT = maxT
			b.Rays[ri].IsDone = isDone

			if maxT < prevMaxT[i] {
				out[ri].Point = xform.MulPoint(out[ri].Point)
				out[ri].Normal = xform.MulNormal(out[ri].Normal)
				out[ri].GeomNormal = xform.MulNormal(out[ri].GeomNormal)
				if inst.Kind == scene.InstanceObject && inst.ShaderIndex >= 0 {
					out[ri].ShaderIndex = inst.ShaderIndex
				}
			}
		}
	})
}

// Occlude resolves, for each ray in rayIndices, whether anything blocks
// it before its own MaxT, without caring which surface or at what
// distance. Callers should pass shadow rays built via rays.NewOcclusion
// so IsDone is set the moment any hit is found, short-circuiting the
// rest of that ray's traversal.
func (t *Tracer) Occlude(root *scene.Assembly, batch *rays.Batch, rayIndices []int, xstack *xformstack.Stack, rstack *rays.Stack) {
	scratch := make([]scene.Intersection, len(batch.Rays))
	traceAssembly(root, batch, rayIndices, xstack, rstack, scratch)
}
