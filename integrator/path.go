package integrator

import (
	"github.com/achilleasa/tracecore/spectral"
)

// EventKind names the three events a path transitions through.
type EventKind int

const (
	CameraRay EventKind = iota
	BounceRay
	ShadowRay
)

// PathState retains what a path needs between events: a film-pixel
// coordinate, the LDS offset (via Sampler), the hero wavelength, a
// running attenuation, a pending contribution from the most recent
// light sample, and the accumulated color.
type PathState struct {
	PixelX, PixelY int
	Sampler        *Sampler
	Wavelength     float32
	Attenuation    spectral.Sample
	Pending        spectral.Sample
	Accumulated    spectral.Sample
	Bounces        int
}

func newPathState(pixelX, pixelY int, sampler *Sampler, wavelength float32) *PathState {
	return &PathState{
		PixelX:      pixelX,
		PixelY:      pixelY,
		Sampler:     sampler,
		Wavelength:  wavelength,
		Attenuation: spectral.FromValue(1, wavelength),
		Accumulated: spectral.NewSample(wavelength),
	}
}
