package scene

import (
	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/accel"
	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/lightaccel"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
	"github.com/achilleasa/tracecore/xformstack"
)

// Surface is a traceable piece of geometry: a mesh, a procedural
// primitive, anything the tracer's two-level traversal can hand a ray
// batch to.
type Surface interface {
	// IntersectRays tests the rays named by rayIndices, which are
	// already expressed in this surface's local space, writing any
	// closer hit into out at the ray's own index. Point/Normal in a
	// written Intersection are in local space; the tracer transforms
	// them back to world space after this call returns.
	IntersectRays(batch *rays.Batch, rayIndices []int, stack *rays.Stack, out []Intersection)
	Bounds() []geom.BBox
}

// SurfaceShader resolves a hit's shading closure, e.g. from a material
// graph or a constant BSDF. Grounded on surface_shader/mod.rs.
type SurfaceShader interface {
	Shade(data Intersection) shading.Closure
}

// Intersection is what a Surface reports back for a ray that hit it:
// enough shading geometry for the integrator to evaluate a BSDF and
// spawn further rays. Grounded on surface/mod.rs's SurfaceIntersection.
type Intersection struct {
	T           float32
	Point       geom.Point
	Normal      geom.Normal
	GeomNormal  geom.Normal
	U, V        float32
	Time        float32
	ShaderIndex int
}

// ObjectKind distinguishes the two payloads an Object can carry.
type ObjectKind int

const (
	ObjectSurface ObjectKind = iota
	ObjectLight
)

// Object is one piece of content an assembly can instance: either
// traceable geometry or a local (bounded) light source. Grounded on
// scene/assembly.rs's Object/ObjectData, collapsed from a Rust enum
// into a tagged struct.
type Object struct {
	Kind    ObjectKind
	Surface Surface
	Light   lightaccel.SurfaceLight
}

// Bounds satisfies accel.Bounded so an assembly's objects can be placed
// directly into a BVH4.
func (o Object) Bounds() []geom.BBox {
	if o.Kind == ObjectLight {
		return o.Light.Bounds()
	}
	return o.Surface.Bounds()
}

// InstanceKind distinguishes instances of local objects from instances
// of nested assemblies.
type InstanceKind int

const (
	InstanceObject InstanceKind = iota
	InstanceAssembly
)

// Instance places one Object or one child Assembly into this assembly's
// space, using an animated transform slice taken from Xforms[XformStart:XformEnd].
// Grounded on assembly.rs's Instance enum.
type Instance struct {
	Kind        InstanceKind
	DataIndex   int // index into Objects or Assemblies
	XformStart  int
	XformEnd    int
	ShaderIndex int // only meaningful when Kind == InstanceObject
}

// Assembly is a named collection of objects, nested child assemblies,
// and the instances that place them (each with its own animated
// transform). Grounded on assembly.rs's Assembly, generalized with
// scene/assembly.rs's per-object light payload and scene.rs's recursive
// sample_lights behavior.
type Assembly struct {
	Objects     []Object
	ObjectMap   map[string]int
	Assemblies  []*Assembly
	AssemblyMap map[string]int
	Instances   []Instance
	Xforms      []geom.Transform

	ObjectAccel *accel.BVH4
	LightAccel  lightaccel.Accel
	LightBounds []geom.BBox

	lightInstances []int // Instances indices backing LightAccel, indexed by the light index LightAccel.Select returns
	objectOrder    []int // Instances indices backing ObjectAccel, in accel order
}

// instanceBoundsView adapts one instance into accel.Bounded by
// deferring to its assembly for the transformed bounds of whatever it
// references. BuildBVH4 reorders a slice of these in place; each value
// still carries its own original instance index, which Build records
// in objectOrder so InstanceAt can map a BVH4 object index back to an
// Instance.
type instanceBoundsView struct {
	assembly *Assembly
	instIdx  int
}

func (v instanceBoundsView) Bounds() []geom.BBox {
	return v.assembly.instanceBounds(v.instIdx)
}

// NewAssembly returns an empty assembly ready for AddObject/AddAssembly/
// AddInstance calls.
func NewAssembly() *Assembly {
	return &Assembly{
		ObjectMap:   make(map[string]int),
		AssemblyMap: make(map[string]int),
	}
}

// AddObject registers obj under name and returns its index.
func (a *Assembly) AddObject(name string, obj Object) int {
	idx := len(a.Objects)
	a.Objects = append(a.Objects, obj)
	a.ObjectMap[name] = idx
	return idx
}

// AddAssembly registers a child assembly under name and returns its
// index.
func (a *Assembly) AddAssembly(name string, child *Assembly) int {
	idx := len(a.Assemblies)
	a.Assemblies = append(a.Assemblies, child)
	a.AssemblyMap[name] = idx
	return idx
}

// AddInstance appends xforms to the shared transform table and records
// an instance referencing them.
func (a *Assembly) AddInstance(kind InstanceKind, dataIndex, shaderIndex int, xforms []geom.Transform) int {
	tracecore.Assertf(len(xforms) > 0, "scene: AddInstance: empty transform slice")
	start := len(a.Xforms)
	a.Xforms = append(a.Xforms, xforms...)
	idx := len(a.Instances)
	a.Instances = append(a.Instances, Instance{
		Kind:        kind,
		DataIndex:   dataIndex,
		XformStart:  start,
		XformEnd:    len(a.Xforms),
		ShaderIndex: shaderIndex,
	})
	return idx
}

// Build validates the assembly graph is acyclic, recursively builds
// child assemblies first (their aggregate light energy feeds this
// assembly's own light accelerator), then builds this assembly's
// object BVH and light tree.
func (a *Assembly) Build(arenaAlloc *arena.Arena, settings config.RenderSettings) error {
	if err := a.validateAcyclic(map[*Assembly]bool{}); err != nil {
		return err
	}

	for _, child := range a.Assemblies {
		if err := child.Build(arenaAlloc, settings); err != nil {
			return err
		}
	}

	views := make([]instanceBoundsView, len(a.Instances))
	for i := range a.Instances {
		views[i] = instanceBoundsView{assembly: a, instIdx: i}
	}
	a.ObjectAccel = accel.BuildBVH4(arenaAlloc, views, settings.ObjectsPerLeaf, settings.UnionFactor)
	a.objectOrder = make([]int, len(views))
	for i, v := range views {
		a.objectOrder[i] = v.instIdx
	}

	a.lightInstances = a.lightInstances[:0]
	for i, inst := range a.Instances {
		if a.instanceEnergy(inst) > 0 {
			a.lightInstances = append(a.lightInstances, i)
		}
	}

	a.LightAccel = lightaccel.BuildTree(a.lightInstances, a.instanceLightInfo)

	a.LightBounds = nil
	for _, instIdx := range a.lightInstances {
		bounds, _ := a.instanceLightInfo(instIdx)
		if a.LightBounds == nil {
			a.LightBounds = bounds
			continue
		}
		a.LightBounds = algorithm.MergeSlicesAppend(nil, a.LightBounds, bounds, func(x, y geom.BBox) geom.BBox {
			return x.Union(y)
		})
	}

	return nil
}

func (a *Assembly) validateAcyclic(visited map[*Assembly]bool) error {
	if visited[a] {
		return tracecore.ErrCyclicAssembly
	}
	visited[a] = true
	defer delete(visited, a)

	for _, child := range a.Assemblies {
		if err := child.validateAcyclic(visited); err != nil {
			return err
		}
	}
	return nil
}

// instanceBounds returns the world-of-this-assembly bounds of whatever
// instIdx references, transformed by its own animated xforms. Used to
// place every instance into this assembly's top-level object BVH.
func (a *Assembly) instanceBounds(instIdx int) []geom.BBox {
	inst := a.Instances[instIdx]
	xforms := a.Xforms[inst.XformStart:inst.XformEnd]

	var local []geom.BBox
	switch inst.Kind {
	case InstanceObject:
		local = a.Objects[inst.DataIndex].Bounds()
	case InstanceAssembly:
		local = a.Assemblies[inst.DataIndex].ObjectAccel.Bounds()
	}
	return geom.TransformBBoxSliceFrom(local, xforms)
}

// InstanceAt maps a BVH4 leaf object index (as reported by
// accel.ObjectTest during traversal of ObjectAccel) back to the
// Instance it refers to.
func (a *Assembly) InstanceAt(objIndex int) Instance {
	return a.Instances[a.objectOrder[objIndex]]
}

func (a *Assembly) instanceEnergy(inst Instance) float32 {
	switch inst.Kind {
	case InstanceObject:
		obj := a.Objects[inst.DataIndex]
		if obj.Kind != ObjectLight {
			return 0
		}
		return obj.Light.ApproximateEnergy()
	case InstanceAssembly:
		child := a.Assemblies[inst.DataIndex]
		if child.LightAccel == nil {
			return 0
		}
		return child.LightAccel.ApproximateEnergy()
	}
	return 0
}

func (a *Assembly) instanceLightInfo(instIdx int) ([]geom.BBox, float32) {
	inst := a.Instances[instIdx]
	xforms := a.Xforms[inst.XformStart:inst.XformEnd]

	switch inst.Kind {
	case InstanceObject:
		light := a.Objects[inst.DataIndex].Light
		return geom.TransformBBoxSliceFrom(light.Bounds(), xforms), light.ApproximateEnergy()
	case InstanceAssembly:
		child := a.Assemblies[inst.DataIndex]
		return geom.TransformBBoxSliceFrom(child.LightBounds, xforms), child.LightAccel.ApproximateEnergy()
	}
	return nil, 0
}

// LightSampleKind distinguishes what a LightSample resolved to.
type LightSampleKind int

const (
	LightSampleNone LightSampleKind = iota
	LightSampleDistant
	LightSampleSurface
)

// LightSample is a resolved next-event-estimation sample: a spectral
// color, a world-space direction to build a shadow ray toward, and both
// the light's own sampling PDF and the selection PDF of having picked
// it at all. Grounded on scene/scene.rs's SceneLightSample, collapsed
// to a single Direction field since lightaccel.SurfaceLight.Sample
// (like WorldLightSource.Sample) reports a direction rather than a
// separate hit point/normal pair.
type LightSample struct {
	Kind         LightSampleKind
	Color        spectral.Sample
	Direction    geom.Vector
	PDF          float32
	SelectionPDF float32
}

// SampleLights descends this assembly's light tree, picking either a
// direct local light or recursing into a nested assembly instance,
// composing selection PDFs and transforming the result back into this
// assembly's space as it unwinds.
func (a *Assembly) SampleLights(stack *xformstack.Stack, n, u, v, wavelength, time float32, pos geom.Point, inc geom.Vector, nor, norG geom.Normal, closure shading.Closure) (LightSample, bool) {
	if a.LightAccel == nil {
		return LightSample{}, false
	}

	idx, pdf, whittled, ok := a.LightAccel.Select(inc, pos, nor, norG, closure, time, n)
	if !ok {
		return LightSample{}, false
	}

	instIdx := a.lightInstances[idx]
	inst := a.Instances[instIdx]
	xforms := a.Xforms[inst.XformStart:inst.XformEnd]
	xform := geom.LerpSlice(xforms, time)
	inv, invertible := xform.Invert()
	if !invertible {
		return LightSample{}, false
	}

	switch inst.Kind {
	case InstanceObject:
		light := a.Objects[inst.DataIndex].Light
		localPos := inv.MulPoint(pos)
		color, dir, lpdf := light.Sample(localPos, u, v, wavelength, time)
		return LightSample{
			Kind:         LightSampleSurface,
			Color:        color,
			Direction:    xform.MulVector(dir),
			PDF:          lpdf,
			SelectionPDF: pdf,
		}, true

	case InstanceAssembly:
		child := a.Assemblies[inst.DataIndex]
		localPos := inv.MulPoint(pos)
		localInc := inv.MulVector(inc)
		localNor := inv.MulNormal(nor)
		localNorG := inv.MulNormal(norG)

		stack.Push(xforms)
		sample, ok2 := child.SampleLights(stack, whittled, u, v, wavelength, time, localPos, localInc, localNor, localNorG, closure)
		stack.Pop()
		if !ok2 {
			return LightSample{}, false
		}

		sample.Direction = xform.MulVector(sample.Direction)
		sample.SelectionPDF *= pdf
		return sample, true
	}

	return LightSample{}, false
}
