package scene

import (
	"math"

	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
)

// Camera holds a camera's animated transform and lens parameters. All
// slices are keyframe sequences resampled by geom.LerpSlice at the ray's
// time; a single-element slice means a static value. Grounded on
// camera.rs's Camera.
type Camera struct {
	transforms      []geom.Transform
	fovs            []float32
	tfovs           []float32
	apertureRadii   []float32
	focusDistances  []float32
}

// NewCamera builds a Camera from its animated transform and field-of-view
// keyframes. If aperture/focus data is missing or degenerate (any focus
// distance of zero), focal blur is disabled by substituting a single
// zero-radius aperture and unit focus distance rather than returning an
// error, with a warning logged when only one of the two is given or a
// focus distance is zero: the original treats this as a
// recoverable authoring mistake, not a programming error.
func NewCamera(transforms []geom.Transform, fovs, apertureRadii, focusDistances []float32) *Camera {
	tracecore.Assertf(len(transforms) > 0, "scene: NewCamera: no transforms")
	tracecore.Assertf(len(fovs) > 0, "scene: NewCamera: no fovs")

	if len(apertureRadii) == 0 || len(focusDistances) == 0 {
		if len(apertureRadii) != 0 {
			tracecore.Logger().Warn("camera has aperture radius but no focus distance; disabling focal blur")
		} else if len(focusDistances) != 0 {
			tracecore.Logger().Warn("camera has focus distance but no aperture radius; disabling focal blur")
		}
		apertureRadii = []float32{0}
		focusDistances = []float32{1}
	}

	for _, d := range focusDistances {
		if d == 0 {
			tracecore.Logger().Warn("camera focal distance is zero; disabling focal blur")
			apertureRadii = []float32{0}
			focusDistances = []float32{1}
			break
		}
	}

	tfovs := make([]float32, len(fovs))
	for i, fov := range fovs {
		half := float64(fov) / 2
		s, c := math.Sincos(half)
		tfovs[i] = float32(s / c)
	}

	return &Camera{
		transforms:     transforms,
		fovs:           fovs,
		tfovs:          tfovs,
		apertureRadii:  apertureRadii,
		focusDistances: focusDistances,
	}
}

// GenerateRay maps a pixel-space sample (x, y in camera-normalized
// coordinates), a lens sample (u, v in [0,1)), and a time into a world
// space ray. Grounded on camera.rs's generate_ray.
func (c *Camera) GenerateRay(x, y, time, u, v float32) rays.Ray {
	transform := geom.LerpSlice(c.transforms, time)
	tfov := lerpSliceF32(c.tfovs, time)
	apertureRadius := lerpSliceF32(c.apertureRadii, time)
	focusDistance := lerpSliceF32(c.focusDistances, time)

	lu, lv := geom.SquareToCircle(apertureRadius*(u*2-1), apertureRadius*(v*2-1))
	orig := geom.NewPoint(lu, lv, 0)

	dir := geom.NewVector(
		(x*tfov)-(orig.X/focusDistance),
		(y*tfov)-(orig.Y/focusDistance),
		1,
	).Normalized()

	r := rays.New(transform.MulPoint(orig), transform.MulVector(dir))
	r.Time = time
	return r
}

func lerpSliceF32(s []float32, alpha float32) float32 {
	switch len(s) {
	case 0:
		panic("scene: lerpSliceF32: empty slice")
	case 1:
		return s[0]
	}
	if alpha <= 0 {
		return s[0]
	}
	if alpha >= 1 {
		return s[len(s)-1]
	}
	scaled := alpha * float32(len(s)-1)
	lo := int(scaled)
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := scaled - float32(lo)
	return s[lo]*(1-frac) + s[lo+1]*frac
}
