package wave

// levelSelector computes, in O(1), the level a new increment of v lands
// in given the current running total. The level is the position of the
// most-significant bit that is 0 in total and 1 in total+v — the top bit
// position where the carry chain flips when v is added.
//
// f = NOT total, g = NOT (total+v), h = f XOR g. Since NOT a XOR NOT b
// equals a XOR b, h is exactly total XOR (total+v): the set of bit
// positions that changed across the add. Its top set bit is the level.
func levelSelector(total, v int64, levels int) int {
	if levels <= 1 {
		return 0
	}
	f := ^total
	g := ^(total + v)
	h := f ^ g
	if h == 0 {
		return 0
	}
	j := bitLen64(uint64(h))
	if j < 0 {
		j = 0
	}
	if j >= levels {
		j = levels - 1
	}
	return j
}
