package accel

import "github.com/achilleasa/tracecore/geom"

// Bounded is implemented by anything the builder can place in a BVH leaf:
// an animated slice of bounding boxes, one per uniformly-spaced time
// sample (a single-element slice means static).
type Bounded interface {
	Bounds() []geom.BBox
}
