// Package geom implements the core math primitives: Point, Vector,
// Normal, the affine Transform, scalar and SIMD-4 bounding boxes, and
// the Lerp machinery animated bounds are built from.
package geom
