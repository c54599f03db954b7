// Package scene assembles the data types the tracer walks: a Camera,
// a World of unbounded background lights, and a tree of Assembly
// instances holding Objects (surfaces and the local lights attached to
// them).
package scene
