package algorithm

// QuickSelect reorders s in place so that the element that would occupy
// index n in sorted order (per less) ends up at s[n], with every element
// before it no greater and every element after it no less. Used by the
// SAH BVH builder to find median-split partitions without a full sort.
func QuickSelect[T any](s []T, n int, less func(a, b T) bool) {
	left, right := 0, len(s)
	seed := uint64(n)

	for {
		pivot := left + int(hashU64(uint64(right), seed)%uint64(right-left))
		s[pivot], s[right-1] = s[right-1], s[pivot]

		val := s[right-1]
		window := s[left : right-1]
		ii := left + Partition(window, func(v *T) bool {
			return less(*v, val)
		})
		s[ii], s[right-1] = s[right-1], s[ii]

		switch {
		case ii == n:
			return
		case ii > n:
			right = ii
		default:
			left = ii + 1
		}

		seed++
	}
}
