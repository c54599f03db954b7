package integrator

import (
	"github.com/achilleasa/tracecore/bucket"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/scene"
)

// RenderBucket renders every pixel of checkout's bucket at
// samplesPerPixel samples each, writing every sample's XYZ contribution
// straight into checkout. width/height are the full image's resolution,
// used only to map a pixel coordinate into the camera's normalized
// [-aspect, aspect] x [-1, 1] film space.
func (res *Resources) RenderBucket(sc *scene.Scene, settings config.RenderSettings, checkout *bucket.Checkout, width, height, samplesPerPixel int, seed uint32) {
	b := checkout.Bucket()
	aspect := float32(width) / float32(height)

	for y := b.Y; y < b.Y+b.H; y++ {
		for x := b.X; x < b.X+b.W; x++ {
			filmX, filmY := pixelToFilm(x, y, width, height, aspect)
			for s := 0; s < samplesPerPixel; s++ {
				sample := res.TracePath(sc, settings, x, y, filmX, filmY, seed, uint32(s))
				checkout.AddSample(x, y, sample.ToXYZ())
			}
		}
	}
}

func pixelToFilm(x, y, width, height int, aspect float32) (float32, float32) {
	nx := (float32(x)+0.5)/float32(width)*2 - 1
	ny := (float32(y)+0.5)/float32(height)*2 - 1
	return nx * aspect, -ny
}
