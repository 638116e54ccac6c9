package shelf

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

var _ Component = AccessibleComponent[int]{}

// column is the type-erased view of one component column inside the slot table
type column interface {
	write(tbl table.Table, slot int, value any) error
	handle(tbl table.Table, slot int) Handle
}

// cellRef is the table element for a column. The table stores values, so
// each entry holds a pointer to the cell that handles share.
type cellRef[T any] struct {
	cell *Cell[T]
}

type typedColumn[T any] struct {
	accessor table.Accessor[cellRef[T]]
}

func (c typedColumn[T]) write(tbl table.Table, slot int, value any) error {
	v, ok := value.(T)
	if !ok {
		return DowncastError{Want: reflect.TypeFor[T](), Got: reflect.TypeOf(value)}
	}
	c.accessor.Get(slot, tbl).cell = newCell(slot, v)
	return nil
}

func (c typedColumn[T]) cell(tbl table.Table, slot int) *Cell[T] {
	return c.accessor.Get(slot, tbl).cell
}

func (c typedColumn[T]) handle(tbl table.Table, slot int) Handle {
	cell := c.cell(tbl, slot)
	if cell == nil {
		return nil
	}
	return cell
}

// ValueType returns the Go type of the values this component stores
func (c AccessibleComponent[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c AccessibleComponent[T]) newColumn() column {
	return typedColumn[T]{accessor: c.accessor}
}

// GetFromCursor retrieves the cell for the slot at the cursor position.
// It returns nil when the slot does not hold this component.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *Cell[T] {
	_, cell := c.GetFromCursorSafe(cursor)
	return cell
}

// GetFromCursorSafe retrieves the cell for the slot at the cursor position,
// reporting whether the slot holds this component
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *Cell[T]) {
	if cursor.slot < 0 {
		return false, nil
	}
	cell, err := getCell[T](cursor.sto, cursor.slot)
	if err != nil {
		return false, nil
	}
	return true, cell
}

// CheckCursor determines if the slot at the cursor position holds this component
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	ok, _ := c.GetFromCursorSafe(cursor)
	return ok
}

// GetFromEntity retrieves the cell of a live entity
func (c AccessibleComponent[T]) GetFromEntity(w World, e Entity) (*Cell[T], error) {
	sto := w.(*world).sto
	if err := sto.checkCurrent(e); err != nil {
		return nil, err
	}
	return getCell[T](sto, e.index)
}

// Column returns the typed, index-aligned column of a query result
func (c AccessibleComponent[T]) Column(result QueryResult) ([]*Cell[T], error) {
	handles, ok := result.column(c.ValueType())
	if !ok {
		return nil, ComponentNotFoundError{Type: c.ValueType()}
	}
	cells := make([]*Cell[T], len(handles))
	for i, h := range handles {
		cell, err := CellOf[T](h)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return cells, nil
}

func getCell[T any](sto *storage, slot int) (*Cell[T], error) {
	typ := reflect.TypeFor[T]()
	reg, ok := sto.registry.Lookup(typ)
	if !ok {
		return nil, ComponentNotRegisteredError{Type: typ}
	}
	if slot < 0 || slot >= len(sto.masks) {
		return nil, EntityDoesNotExistError{Index: slot}
	}
	if !sto.masks[slot].ContainsAll(bitMask(reg.bit)) {
		return nil, ComponentNotFoundError{Type: typ}
	}
	col, ok := reg.column.(typedColumn[T])
	if !ok {
		return nil, DowncastError{Want: typ}
	}
	return col.cell(sto.slots, slot), nil
}
