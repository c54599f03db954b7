// Package xformstack implements the transform stack the tracer threads
// through nested assembly instances: each Push enters an instance's
// local transform, composed against whatever is already on top, and
// each Pop leaves it again. Because an instance's transform may itself
// be animated (more than one time sample), pushing resamples the
// shorter of the parent/child slices against the longer one rather than
// requiring matching lengths.
package xformstack
