// Package integrator walks one camera path at a time through a scene:
// sample a camera ray, resolve its intersection, estimate direct
// lighting via a shadow ray, and continue with one bsdf-sampled bounce
// until either the path escapes the scene, hits an emitter, runs out of
// bounce budget, or a sampled bounce direction has zero probability. A
// light sample with zero probability only skips that bounce's shadow ray.
//
// A path runs to completion as a single synchronous loop rather than as
// a suspendable state machine multiplexed across many in-flight paths:
// a ray batch here traces on a single thread with no suspension points,
// so nothing is lost by finishing one path before starting the next.
package integrator

import (
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/scene"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
	"github.com/achilleasa/tracecore/tracer"
	"github.com/achilleasa/tracecore/xformstack"
)

// selfOffset is the distance used to nudge shadow and bounce ray
// origins off the surface they were spawned from.
const selfOffset = 1e-3

// Resources bundles the scratch objects reused across an entire render
// rather than allocated per path: a ray batch, its traversal stack, a
// transform stack, and a one-ray intersection buffer.
type Resources struct {
	Tracer *tracer.Tracer
	Batch  *rays.Batch
	RStack *rays.Stack
	XStack *xformstack.Stack
	hit    []scene.Intersection
}

// NewResources allocates the scratch objects one render thread needs,
// sized for tracing a single ray at a time.
func NewResources(maxDepth int) *Resources {
	return &Resources{
		Tracer: tracer.New(),
		Batch:  rays.NewBatch(1),
		RStack: rays.NewStack(1, 3*maxDepth+2),
		XStack: xformstack.New(),
		hit:    make([]scene.Intersection, 1),
	}
}

// TracePath renders one sample of pixel (pixelX, pixelY), returning the
// path's accumulated spectral radiance. filmX/filmY is the pixel's
// camera-normalized coordinate before sub-pixel jitter; callers own the
// film-space mapping (resolution, aspect ratio, pixel filter extent),
// which is outside this package's scope.
func (res *Resources) TracePath(sc *scene.Scene, settings config.RenderSettings, pixelX, pixelY int, filmX, filmY float32, seed uint32, sampleIndex uint32) spectral.Sample {
	sampler := NewSampler(seed, pixelX, pixelY, sampleIndex)

	filterU, filterV := sampler.Next2D()
	lensU, lensV := sampler.Next2D()
	time := sampler.Next1D()
	wavelength := spectral.MapUnitToWavelength(sampler.Next1D())

	x := filmX + (filterU - 0.5)
	y := filmY + (filterV - 0.5)
	ray := sc.Camera.GenerateRay(x, y, time, lensU, lensV)
	ray.Wavelength = wavelength

	state := newPathState(pixelX, pixelY, sampler, wavelength)

	for {
		hit, ok := res.traceClosest(sc, ray)
		if !ok {
			background := sc.World.BackgroundColor.ToSpectralSample(wavelength)
			state.Accumulated = state.Accumulated.Add(background.Mul(state.Attenuation))
			return state.Accumulated
		}

		closure := sc.Shader(hit.ShaderIndex).Shade(hit)

		if emit, isEmit := closure.(shading.Emit); isEmit {
			state.Accumulated = state.Accumulated.Add(emit.EmittedColor(wavelength).Mul(state.Attenuation))
			return state.Accumulated
		}

		inc := ray.Dir.Normalized()

		shadowRay, havePending := res.buildShadowRay(sc, state, hit, inc, closure)

		var bounceRay rays.Ray
		haveBounce := false
		if state.Bounces < settings.MaxBounces {
			bounceRay, haveBounce = buildBounceRay(state, hit, inc, closure)
		}

		if havePending {
			if blocked := res.traceOcclusion(sc, shadowRay); !blocked {
				state.Accumulated = state.Accumulated.Add(state.Pending)
			}
		}

		if !haveBounce {
			return state.Accumulated
		}

		ray = bounceRay
		state.Bounces++
	}
}

// traceClosest resolves the closest-hit intersection for a single ray,
// reporting ok=false on a miss.
func (res *Resources) traceClosest(sc *scene.Scene, ray rays.Ray) (scene.Intersection, bool) {
	res.Batch.Reset()
	res.RStack.Reset()
	res.XStack.Clear()
	res.hit[0] = scene.Intersection{}

	idx := res.Batch.Push(ray)
	res.Tracer.Trace(sc.Root, res.Batch, []int{idx}, res.XStack, res.RStack, res.hit)

	if res.Batch.Rays[idx].MaxT >= missThreshold {
		return scene.Intersection{}, false
	}
	return res.hit[idx], true
}

// traceOcclusion reports whether anything blocks an occlusion ray
// before its own max_t.
func (res *Resources) traceOcclusion(sc *scene.Scene, ray rays.Ray) bool {
	res.Batch.Reset()
	res.RStack.Reset()
	res.XStack.Clear()

	idx := res.Batch.Push(ray)
	res.Tracer.Occlude(sc.Root, res.Batch, []int{idx}, res.XStack, res.RStack)
	return res.Batch.Rays[idx].IsDone
}

// missThreshold distinguishes an unbounded camera/bounce ray's "never
// hit anything" max_t from a genuine, finite hit distance.
const missThreshold = 1e30

// buildShadowRay samples the scene's combined light selector and, if
// the sample has nonzero probability, records the pending next-event
// contribution on state and returns the shadow ray to trace it with.
func (res *Resources) buildShadowRay(sc *scene.Scene, state *PathState, hit scene.Intersection, inc geom.Vector, closure shading.Closure) (rays.Ray, bool) {
	lightSelectN := state.Sampler.Next1D()
	lu, lv, lw := state.Sampler.Next3D()

	lightSample, ok := sc.SampleLights(res.XStack, lightSelectN, lu, lv, state.Wavelength, hit.Time, hit.Point, inc, hit.Normal, hit.GeomNormal, closure)
	if !ok || lightSample.PDF <= 0 || lightSample.SelectionPDF <= 0 {
		return rays.Ray{}, false
	}
	_ = lw // light selection's third uniform sample is consumed but unused by either light sampler shape (surface and distant lights draw their u, v from the first two)

	f := closure.Evaluate(inc, lightSample.Direction, hit.Normal, state.Wavelength)
	state.Pending = lightSample.Color.Mul(f).Mul(state.Attenuation).DivScalar(lightSample.PDF * lightSample.SelectionPDF)

	orig := hit.Point.Add(lightSample.Direction.Normalized().Scale(selfOffset))
	shadow := rays.New(orig, lightSample.Direction)
	shadow.IsOcclusion = true
	shadow.Time = hit.Time
	shadow.Wavelength = state.Wavelength
	return shadow, true
}

// buildBounceRay samples the hit closure for a new outgoing direction
// and, if it has nonzero probability, updates state's attenuation and
// returns the next bounce ray.
func buildBounceRay(state *PathState, hit scene.Intersection, inc geom.Vector, closure shading.Closure) (rays.Ray, bool) {
	bu, bv := state.Sampler.Next2D()
	dir, filter, pdf := closure.Sample(inc, hit.Normal, bu, bv, state.Wavelength)
	if pdf <= 0 {
		return rays.Ray{}, false
	}

	state.Attenuation = state.Attenuation.Mul(filter).DivScalar(pdf)

	orig := hit.Point.Add(dir.Normalized().Scale(selfOffset))
	bounce := rays.New(orig, dir)
	bounce.Time = hit.Time
	bounce.Wavelength = state.Wavelength
	return bounce, true
}
