package shelf

import "iter"

var _ iCursor = &Cursor{}

func newCursor(q Query) *Cursor {
	qry := q.(*query)
	return &Cursor{
		query: qry,
		sto:   qry.sto,
		slot:  -1,
	}
}

// Next advances to the next matching slot. The world stays locked from the
// first call until iteration ends or Reset is called; structural changes
// made through the Enqueue methods in the meantime are applied on release.
func (c *Cursor) Next() bool {
	if !c.initialized {
		if !c.initialize() {
			return false
		}
	}
	for c.next < len(c.sto.masks) {
		slot := c.next
		c.next++
		if c.query.matches(c.sto.masks[slot]) {
			c.slot = slot
			return true
		}
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for c.Next() {
			if !yield(c.slot, Entity{index: c.slot, generation: c.sto.gens[c.slot]}) {
				c.Reset()
				return
			}
		}
	}
}

func (c *Cursor) initialize() bool {
	if err := c.query.Err(); err != nil {
		c.err = err
		return false
	}
	c.err = nil
	c.next = 0
	c.slot = -1
	c.sto.acquireCursor()
	c.initialized = true
	return true
}

// Reset ends iteration and releases the cursor's lock on the world.
func (c *Cursor) Reset() {
	c.slot = -1
	c.next = 0
	if !c.initialized {
		return
	}
	c.initialized = false
	if err := c.sto.releaseCursor(); err != nil {
		c.err = err
	}
}

func (c *Cursor) Slot() int {
	return c.slot
}

func (c *Cursor) CurrentEntity() (Entity, error) {
	return c.sto.entity(c.slot)
}

// Err returns the query error or the error raised while flushing deferred
// operations at the end of iteration.
func (c *Cursor) Err() error {
	return c.err
}

func (c *Cursor) TotalMatched() int {
	total := 0
	for _, m := range c.sto.masks {
		if c.query.matches(m) {
			total++
		}
	}
	return total
}
