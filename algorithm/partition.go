package algorithm

// Partition reorders s in place so that every element for which pred
// returns true precedes every element for which it returns false, and
// returns the index of the first false element. pred is invoked exactly
// once per element and may mutate it. The SAH splitters in accel and
// lightaccel use it to partition objects around a split plane.
func Partition[T any](s []T, pred func(*T) bool) int {
	a, b := 0, len(s)

	for {
		for {
			if a == b {
				return a
			}
			if !pred(&s[a]) {
				break
			}
			a++
		}

		for {
			b--
			if a == b {
				return a
			}
			if pred(&s[b]) {
				break
			}
		}

		s[a], s[b] = s[b], s[a]
		a++
	}
}

// PartitionPair partitions two equal-length slices in lockstep, calling
// pred with the shared index and pointers into both slices.
func PartitionPair[A, B any](s1 []A, s2 []B, pred func(i int, a *A, b *B) bool) int {
	if len(s1) != len(s2) {
		panic("algorithm: PartitionPair: slice length mismatch")
	}

	a, b := 0, len(s1)

	for {
		for {
			if a == b {
				return a
			}
			if !pred(a, &s1[a], &s2[a]) {
				break
			}
			a++
		}

		for {
			b--
			if a == b {
				return a
			}
			if pred(b, &s1[b], &s2[b]) {
				break
			}
		}

		s1[a], s1[b] = s1[b], s1[a]
		s2[a], s2[b] = s2[b], s2[a]
		a++
	}
}
