// Package tracecore provides ambient facilities, logging, assertions,
// and sentinel errors, shared by the geometric acceleration and
// light-transport sampling packages that make up the rest of this
// module (arena, geom, rays, triangle, algorithm, accel, spectral,
// shading, lightaccel, xformstack, scene, tracer, integrator, bucket,
// config).
//
// Nothing in this package touches scene geometry; it exists so that every
// sub-package can share one logging configuration and one assertion style
// without introducing import cycles.
package tracecore
