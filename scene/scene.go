package scene

import (
	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/lightaccel"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/xformstack"
)

// Scene is the complete render graph: a camera, a background/world, and
// the root assembly of instanced geometry and lights. Grounded on
// scene/scene.rs's Scene.
type Scene struct {
	Name    string
	Camera  *Camera
	World   World
	Root    *Assembly
	Shaders []SurfaceShader
}

// Shader resolves an intersection's shader index into its SurfaceShader,
// so the integrator never needs to know how shader tables are built.
func (s *Scene) Shader(shaderIndex int) SurfaceShader {
	return s.Shaders[shaderIndex]
}

// Build recursively builds the root assembly's acceleration structures.
func (s *Scene) Build(arenaAlloc *arena.Arena, settings config.RenderSettings) error {
	return s.Root.Build(arenaAlloc, settings)
}

// SampleLights chooses, with a single uniform sample n, between the
// world's unbounded lights and the root assembly's local lights,
// weighted 50/50 whenever both have nonzero energy (falling back to
// whichever side is nonzero, or LightSampleNone if neither is).
// Grounded verbatim on scene.rs's sample_lights.
func (s *Scene) SampleLights(stack *xformstack.Stack, n, u, v, wavelength, time float32, pos geom.Point, inc geom.Vector, nor, norG geom.Normal, closure shading.Closure) (LightSample, bool) {
	wlEnergy := float32(0)
	for _, l := range s.World.Lights {
		if l.ApproximateEnergy() > 0 {
			wlEnergy = 1
			break
		}
	}

	llEnergy := float32(0)
	if s.Root.LightAccel != nil && s.Root.LightAccel.ApproximateEnergy() > 0 {
		llEnergy = 1
	}

	totEnergy := wlEnergy + llEnergy
	if totEnergy <= 0 {
		return LightSample{}, false
	}

	wlProb := wlEnergy / totEnergy

	if n < wlProb {
		n = n / wlProb
		i, p := algorithm.WeightedChoice(s.World.Lights, n, func(l lightaccel.WorldLightSource) float32 { return l.ApproximateEnergy() })
		light := s.World.Lights[i]
		color, dir, pdf := light.Sample(u, v, wavelength, time)
		return LightSample{
			Kind:         LightSampleDistant,
			Color:        color,
			Direction:    dir,
			PDF:          pdf,
			SelectionPDF: p * wlProb,
		}, true
	}

	n = (n - wlProb) / (1 - wlProb)
	sample, ok := s.Root.SampleLights(stack, n, u, v, wavelength, time, pos, inc, nor, norG, closure)
	if !ok {
		return LightSample{}, false
	}
	sample.SelectionPDF *= 1 - wlProb
	return sample, true
}
