package wave

import "container/list"

// chronList is the ordered list L: every live triple, oldest at the
// front, newest at the back. Every triple in any level queue is also
// here; removal from either side is O(1) given a handle.
type chronList struct {
	l *list.List
}

func newChronList() *chronList {
	return &chronList{l: list.New()}
}

func (c *chronList) len() int {
	return c.l.Len()
}

// pushBack appends t and records its handle into L.
func (c *chronList) pushBack(t *triple) {
	t.lElem = c.l.PushBack(t)
}

// front returns the oldest live triple, or nil if L is empty.
func (c *chronList) front() *triple {
	e := c.l.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*triple)
}

// back returns the newest live triple, or nil if L is empty.
func (c *chronList) back() *triple {
	e := c.l.Back()
	if e == nil {
		return nil
	}
	return e.Value.(*triple)
}

// remove drops t from L in O(1) using its recorded handle.
func (c *chronList) remove(t *triple) {
	if t.lElem == nil {
		return
	}
	c.l.Remove(t.lElem)
	t.lElem = nil
}

// walk calls fn for every live triple from oldest to newest, stopping
// early if fn returns false.
func (c *chronList) walk(fn func(t *triple) bool) {
	for e := c.l.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(*triple)) {
			return
		}
	}
}

// walkBack calls fn for every live triple from newest to oldest,
// stopping early if fn returns false.
func (c *chronList) walkBack(fn func(t *triple) bool) {
	for e := c.l.Back(); e != nil; e = e.Prev() {
		if !fn(e.Value.(*triple)) {
			return
		}
	}
}
