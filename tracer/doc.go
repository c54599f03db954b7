// Package tracer implements the two-level ray tracer: it walks an
// assembly's instance BVH, pushing each instance's transform onto a
// xformstack.Stack before descending into either a leaf Surface or a
// nested child Assembly, mirroring instanced-geometry hierarchies of
// arbitrary depth.
//
// Rays are transformed into each instance's local space and restored
// afterward in place: MaxT and the done flag live on the shared
// rays.Batch and persist across the push/pop, while Orig/Dir/DirInv are
// snapshotted and restored around each instance's subtree so sibling
// instances see the parent's space again.
package tracer
