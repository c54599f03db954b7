// Package lightaccel implements light-selection queries: given a
// shading point, importance-sample one light out of the scene's light
// sources with a correct selection probability.
//
// Two accelerators are provided: Array, a degenerate uniform selector,
// and Tree, an 8-way importance-weighted tree built by collapsing a
// binary SAH split.
package lightaccel
