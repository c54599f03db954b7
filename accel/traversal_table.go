package accel

// Topology enumerates how many of a BVH4 node's up-to-three splits are
// present.
type Topology uint8

const (
	TopOnly Topology = iota
	Left
	Right
	Full
)

// topologyOffset is the per-topology base offset into the [0, 51]
// traversal code space: Full uses codes 0-26, Left 27-35, Right 36-44
// and TopOnly 45-47.
var topologyOffset = [4]int{45, 27, 36, 0}

// calcTraversalCode computes the [0, 51] traversal code for a node given
// its up to three split axes and topology:
// code = s1 + 3*s2 + 9*s3 + topologyOffset[topology], except that a Right
// node's only child split s3 takes the weight 3.
func calcTraversalCode(s1, s2, s3 uint8, topo Topology) uint8 {
	if topo == Right {
		s2, s3 = s3, 0
	}
	return s1 + s2*3 + s3*9 + uint8(topologyOffset[topo])
}

// childCountForTopology returns how many grandchildren a topology fuses.
func childCountForTopology(topo Topology) int {
	switch topo {
	case Full:
		return 4
	case Left, Right:
		return 3
	default:
		return 2
	}
}

// traversalTable[raySignPattern][code] packs, two bits per child slot,
// the front-to-back visiting order of up to 4 children for a ray whose
// per-axis direction signs match raySignPattern (bit 0 = x negative,
// bit 1 = y negative, bit 2 = z negative).
//
// Built at init() rather than shipped as a precomputed blob: a 52-entry
// table is cheap to derive from calcTraversalCode's own definition of
// code layout.
var traversalTable [8][52]uint8

func init() {
	traversalTable = buildTraversalTable()
}

// buildTraversalTable enumerates every (s1, s2, s3, topology) combination,
// derives that node's front-to-back child visitation order for each of
// the 8 ray-sign patterns, and records it keyed by the node's traversal
// code.
//
// Visitation order follows the same rule the binary builder's traversal
// uses at each split: visit the near side (the side matching the ray's
// direction sign along the split axis) before the far side. Applied
// recursively to the node's (possibly further split) sub-trees, this
// yields a full front-to-back order of 2-4 leaves.
func buildTraversalTable() [8][52]uint8 {
	var table [8][52]uint8

	for topo := TopOnly; topo <= Full; topo++ {
		for s1 := uint8(0); s1 < 3; s1++ {
			s2Max, s3Max := uint8(1), uint8(1)
			if topo == Full {
				s2Max, s3Max = 3, 3
			} else if topo == Left {
				s2Max = 3
			} else if topo == Right {
				s3Max = 3
			}

			for s2 := uint8(0); s2 < s2Max; s2++ {
				for s3 := uint8(0); s3 < s3Max; s3++ {
					code := calcTraversalCode(s1, s2, s3, topo)

					for pattern := 0; pattern < 8; pattern++ {
						order := childOrder(s1, s2, s3, topo, pattern)
						table[pattern][code] = packOrder(order)
					}
				}
			}
		}
	}

	return table
}

// childOrder returns, for a 4-element virtual child array (unused slots
// are trailing and never referenced by childCountForTopology), the
// front-to-back visitation order for the given ray-sign pattern.
func childOrder(s1, s2, s3 uint8, topo Topology, pattern int) []int {
	signNeg := func(axis uint8) bool {
		return pattern&(1<<axis) != 0
	}

	// Top-level split over s1 separates {0,1}-side from {2,3}-side.
	topLeftFirst := !signNeg(s1)

	var leftOrder, rightOrder []int
	switch topo {
	case Full:
		leftOrder = subOrder(0, 1, s2, signNeg)
		rightOrder = subOrder(2, 3, s3, signNeg)
	case Left:
		leftOrder = subOrder(0, 1, s2, signNeg)
		rightOrder = []int{2}
	case Right:
		leftOrder = []int{0}
		rightOrder = subOrder(1, 2, s3, signNeg)
	default: // TopOnly
		leftOrder = []int{0}
		rightOrder = []int{1}
	}

	if topLeftFirst {
		return append(leftOrder, rightOrder...)
	}
	return append(rightOrder, leftOrder...)
}

func subOrder(a, b int, splitAxis uint8, signNeg func(uint8) bool) []int {
	if !signNeg(splitAxis) {
		return []int{a, b}
	}
	return []int{b, a}
}

// packOrder packs up to 4 child indices, two bits each, most-significant
// slot first: unpacked via `(code >> (inv_i*2)) & 3`.
func packOrder(order []int) uint8 {
	var code uint8
	n := len(order)
	for i, child := range order {
		shift := uint((n - 1 - i) * 2)
		code |= uint8(child) << shift
	}
	return code
}
