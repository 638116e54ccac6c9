package shelf

import "reflect"

var _ Handle = &Cell[int]{}

// Cell is the store-owned home of one component value. Query results and
// the store hand out the same *Cell, so writes through one are seen by all.
//
// Borrows are tracked at runtime: any number of View calls may nest, but an
// Update cannot overlap any other borrow of the same cell.
type Cell[T any] struct {
	value   T
	slot    int
	readers int
	writing bool
}

func newCell[T any](slot int, value T) *Cell[T] {
	return &Cell[T]{slot: slot, value: value}
}

func (c *Cell[T]) Slot() int {
	return c.slot
}

func (c *Cell[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// View calls fn with a shared borrow of the value.
func (c *Cell[T]) View(fn func(T)) error {
	if c.writing {
		return c.conflict(false)
	}
	c.readers++
	defer func() { c.readers-- }()
	fn(c.value)
	return nil
}

// Update calls fn with an exclusive borrow of the value.
func (c *Cell[T]) Update(fn func(*T)) error {
	if c.writing || c.readers > 0 {
		return c.conflict(true)
	}
	c.writing = true
	defer func() { c.writing = false }()
	fn(&c.value)
	return nil
}

func (c *Cell[T]) Get() (T, error) {
	var out T
	err := c.View(func(v T) { out = v })
	return out, err
}

func (c *Cell[T]) Set(v T) error {
	return c.Update(func(p *T) { *p = v })
}

// Value returns a copy of the value as an any.
func (c *Cell[T]) Value() (any, error) {
	v, err := c.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Borrowed reports whether any borrow is active.
func (c *Cell[T]) Borrowed() bool {
	return c.writing || c.readers > 0
}

func (c *Cell[T]) conflict(exclusive bool) error {
	return BorrowConflictError{Slot: c.slot, Type: c.ValueType(), Exclusive: exclusive}
}

// CellOf recovers the typed cell behind a Handle.
func CellOf[T any](h Handle) (*Cell[T], error) {
	if h == nil {
		return nil, DowncastError{Want: reflect.TypeFor[T]()}
	}
	c, ok := h.(*Cell[T])
	if !ok {
		return nil, DowncastError{Want: reflect.TypeFor[T](), Got: h.ValueType()}
	}
	return c, nil
}
