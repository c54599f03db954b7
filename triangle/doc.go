// Package triangle implements the watertight ray-triangle intersection
// scheme of Woop et al.: axis permutation, a shear transform that aligns
// the ray with +z, and scaled barycentric edge functions computed with
// an f64 fallback when an edge function lands on exactly zero.
package triangle
