package xformstack

import (
	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/algorithm"
	"github.com/achilleasa/tracecore/geom"
)

// Stack accumulates nested instance transforms into a single composed
// transform slice, available via Top. Grounded on transform_stack.rs.
type Stack struct {
	stack   []geom.Transform
	indices []int
}

// New returns an empty stack. Top on a freshly-built Stack is an empty
// slice; at least one Push is required before Top is meaningful.
func New() *Stack {
	return &Stack{indices: []int{0, 0}}
}

// Clear resets the stack to its just-constructed state, reusing its
// backing storage.
func (s *Stack) Clear() {
	s.stack = s.stack[:0]
	s.indices = append(s.indices[:0], 0, 0)
}

// Push enters a new instance's local transform(s), composed against the
// current top of the stack. xforms is the instance's own animated
// transform slice (object space to parent space); the composed result
// maps object space all the way to whatever space the stack's base is
// in.
func (s *Stack) Push(xforms []geom.Transform) {
	tracecore.Assertf(len(xforms) > 0, "xformstack: Push: empty transform slice")

	n := len(s.indices)
	i1, i2 := s.indices[n-2], s.indices[n-1]

	if len(s.stack) == 0 {
		s.stack = append(s.stack, xforms...)
	} else {
		maxLen := len(xforms)
		if i2-i1 > maxLen {
			maxLen = i2 - i1
		}
		merged := make([]geom.Transform, maxLen)
		algorithm.MergeSlicesTo(merged, s.stack[i1:i2], xforms, func(parent, child geom.Transform) geom.Transform {
			return child.Compose(parent)
		})
		s.stack = append(s.stack, merged...)
	}

	s.indices = append(s.indices, len(s.stack))
}

// Pop leaves the most recently pushed instance's transform.
func (s *Stack) Pop() {
	tracecore.Assertf(len(s.indices) > 2, "xformstack: Pop: stack is empty")

	n := len(s.indices)
	i1, i2 := s.indices[n-2], s.indices[n-1]
	s.stack = s.stack[:len(s.stack)-(i2-i1)]
	s.indices = s.indices[:n-1]
}

// Top returns the currently composed transform slice.
func (s *Stack) Top() []geom.Transform {
	n := len(s.indices)
	i1, i2 := s.indices[n-2], s.indices[n-1]
	return s.stack[i1:i2]
}

// Depth reports how many instances are currently pushed.
func (s *Stack) Depth() int {
	return len(s.indices) - 2
}
