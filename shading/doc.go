// Package shading implements surface closures: the small, fixed set of
// BSDF-like response functions a SurfaceShader hands back to the
// integrator at a hit point. Closures are modeled as a tagged union
// rather than an interface hierarchy, since the set is closed (emit,
// Lambert, GGX) and the integrator's hot path dispatches on it every
// bounce.
package shading
