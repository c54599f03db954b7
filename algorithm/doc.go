// Package algorithm provides generic slice utilities: in-place
// partitioning (single and lockstep-pair), randomized quickselect,
// weighted choice, and the resampling slice merge used to combine
// differently-sampled animated data (transform stacks, animated
// bounds).
//
// Built on plain Go generics with caller-supplied predicates, weights and
// merge functions; the swap-based two-pointer scan is the natural shape
// for in-place partitioning over a slice.
package algorithm
