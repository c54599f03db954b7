// Package rays implements the Ray type (origin, direction, inverse
// direction, max-t, wavelength, time, and the is_occlusion/is_done
// flags), the Batch that holds rays as a slice of Ray values, and
// Stack, a fixed-capacity per-ray traversal stack.
package rays
