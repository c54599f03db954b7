// Package accel builds and traverses a two-level BVH: a binary SAH-split
// builder producing a flat node array, and a 4-ary SIMD collapse of that
// binary tree for traversal.
//
// Node storage uses slice indices rather than pointers, so the backing
// arrays can live in a single Arena allocation for the lifetime of a
// scene and never need individual frees.
package accel
