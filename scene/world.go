package scene

import (
	"github.com/achilleasa/tracecore/lightaccel"
	"github.com/achilleasa/tracecore/spectral"
)

// World holds the scene's background color and its unbounded, distant
// light sources. Grounded on world.rs/scene/world.rs.
type World struct {
	BackgroundColor spectral.XYZ
	Lights          []lightaccel.WorldLightSource
}
