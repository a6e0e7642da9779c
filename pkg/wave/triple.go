package wave

import "container/list"

// triple is the smallest unit stored by a wave: an inserted item's
// position, value, and the running total immediately after it landed.
// Immutable once built; two list handles place it in L (chronological
// order) and in exactly one level queue, letting both structures remove
// it in O(1) without a value-equality scan.
type triple struct {
	pos int64
	v   int64
	z   int64

	level int
	lElem *list.Element // handle into the chronological list L
	qElem *list.Element // handle into l[level]
}
