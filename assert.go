package tracecore

import "fmt"

// Assert panics if cond is false. Use it for programming-error
// conditions: mixing spectral samples with mismatched hero wavelengths, popping an empty transform stack, writing to a ray outside
// its batch index. These are bugs in the calling code, not conditions a
// caller can recover from, so they fail fast rather than returning error.
func Assert(cond bool, msg string) {
	if !cond {
		panic("tracecore: assertion failed: " + msg)
	}
}

// Assertf is Assert with a formatted message, evaluated lazily only on
// failure.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic("tracecore: assertion failed: " + fmt.Sprintf(format, args...))
	}
}
