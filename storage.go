package shelf

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// storage is the component store: the slot table, one membership mask per
// slot and one generation per slot.
type storage struct {
	locks      mask.Mask
	cursors    int
	schema     table.Schema
	entryIndex table.EntryIndex
	registry   *registry
	slots      table.Table
	masks      []mask.Mask
	gens       []uint32
	opQueue    opQueue
}

func newStorage(schema table.Schema) *storage {
	return &storage{
		schema:     schema,
		entryIndex: table.Factory.NewEntryIndex(),
		registry:   newRegistry(MaxComponentTypes),
		masks:      make([]mask.Mask, 0, Config.slotCapacity),
		gens:       make([]uint32, 0, Config.slotCapacity),
		opQueue:    newOpQueue(),
	}
}

func bitMask(bit uint32) mask.Mask {
	var m mask.Mask
	m.Mark(bit)
	return m
}

func isEmpty(m mask.Mask) bool {
	return m == mask.Mask{}
}

func (sto *storage) register(c Component) error {
	if _, ok := sto.registry.Lookup(c.ValueType()); ok {
		return nil
	}
	if len(sto.masks) > 0 {
		return RegistrationClosedError{Type: c.ValueType()}
	}
	if !sto.schema.Contains(c) && sto.schema.Registered() >= sto.registry.maxCapacity {
		return TooManyComponentsError{Type: c.ValueType(), Max: sto.registry.maxCapacity}
	}
	sto.schema.Register(c)
	_, err := sto.registry.Register(c, sto.schema.RowIndexFor(c))
	return err
}

func (sto *storage) bitFor(typ reflect.Type) (uint32, error) {
	reg, ok := sto.registry.Lookup(typ)
	if !ok {
		return 0, ComponentNotRegisteredError{Type: typ}
	}
	return reg.bit, nil
}

// allocateSlot reuses the lowest tombstoned slot or appends a new one.
func (sto *storage) allocateSlot() (int, error) {
	slot := -1
	for i, m := range sto.masks {
		if isEmpty(m) {
			slot = i
			break
		}
	}
	if slot == -1 {
		if err := sto.growSlots(); err != nil {
			return -1, err
		}
		slot = len(sto.masks) - 1
	}
	sto.gens[slot]++
	return slot, nil
}

func (sto *storage) growSlots() error {
	if sto.registry.Len() > 0 {
		if sto.slots == nil {
			tbl, err := newSlotTable(sto.schema, sto.entryIndex, sto.registry.Components()...)
			if err != nil {
				return err
			}
			sto.slots = tbl
		}
		if _, err := sto.slots.NewEntries(1); err != nil {
			return err
		}
	}
	sto.masks = append(sto.masks, mask.Mask{})
	sto.gens = append(sto.gens, 0)
	return nil
}

func (sto *storage) createEntity() *EntityBuilder {
	if sto.Locked() {
		return &EntityBuilder{err: LockedStorageError{}}
	}
	slot, err := sto.allocateSlot()
	if err != nil {
		return &EntityBuilder{err: err}
	}
	return &EntityBuilder{
		sto:    sto,
		entity: Entity{index: slot, generation: sto.gens[slot]},
	}
}

// writeComponent stores value at slot and marks its bit. The slot is not
// checked for liveness: writing to a tombstone revives it.
func (sto *storage) writeComponent(slot int, value any) error {
	typ := reflect.TypeOf(value)
	reg, ok := sto.registry.Lookup(typ)
	if !ok {
		return ComponentNotRegisteredError{Type: typ}
	}
	if slot < 0 || slot >= len(sto.masks) {
		return EntityDoesNotExistError{Index: slot}
	}
	if err := reg.column.write(sto.slots, slot, value); err != nil {
		return err
	}
	sto.masks[slot].Mark(reg.bit)
	return nil
}

func (sto *storage) addComponentByEntityID(value any, index int) error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	return sto.writeComponent(index, value)
}

// deleteComponent clears the component's bit. The cell is left in place
// until the slot is written again.
func (sto *storage) deleteComponent(typ reflect.Type, index int) error {
	reg, ok := sto.registry.Lookup(typ)
	if !ok {
		return ComponentNotRegisteredError{Type: typ}
	}
	if index < 0 || index >= len(sto.masks) {
		return EntityDoesNotExistError{Index: index}
	}
	sto.masks[index].Unmark(reg.bit)
	return nil
}

func (sto *storage) deleteComponentByEntityID(c Component, index int) error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	return sto.deleteComponent(c.ValueType(), index)
}

func (sto *storage) deleteEntityByID(index int) error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	if index < 0 || index >= len(sto.masks) {
		return EntityDoesNotExistError{Index: index}
	}
	sto.masks[index] = mask.Mask{}
	return nil
}

func (sto *storage) destroyEntity(e Entity) error {
	if err := sto.checkCurrent(e); err != nil {
		return err
	}
	return sto.deleteEntityByID(e.index)
}

func (sto *storage) entity(index int) (Entity, error) {
	if index < 0 || index >= len(sto.masks) {
		return Entity{}, EntityDoesNotExistError{Index: index}
	}
	return Entity{index: index, generation: sto.gens[index]}, nil
}

// checkCurrent reports whether e still names the latest occupant of its slot.
func (sto *storage) checkCurrent(e Entity) error {
	if e.index < 0 || e.index >= len(sto.masks) {
		return EntityDoesNotExistError{Index: e.index}
	}
	if sto.gens[e.index] != e.generation {
		return StaleEntityError{Entity: e, Current: sto.gens[e.index]}
	}
	return nil
}

func (sto *storage) alive(e Entity) bool {
	return sto.checkCurrent(e) == nil && !isEmpty(sto.masks[e.index])
}

func (sto *storage) maskAt(index int) (mask.Mask, error) {
	if index < 0 || index >= len(sto.masks) {
		return mask.Mask{}, EntityDoesNotExistError{Index: index}
	}
	return sto.masks[index], nil
}

// matching yields, in ascending order, every live slot holding all of the
// required bits and none of the excluded ones.
func (sto *storage) matching(all, none mask.Mask) iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot, m := range sto.masks {
			if !matches(m, all, none) {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}
}

func matches(m, all, none mask.Mask) bool {
	if isEmpty(m) {
		return false
	}
	if !m.ContainsAll(all) {
		return false
	}
	return isEmpty(none) || m.ContainsNone(none)
}

func (sto *storage) Locked() bool {
	return sto.cursors > 0 || !isEmpty(sto.locks)
}

func (sto *storage) AddLock(bit uint32) error {
	if int(bit) >= MaxComponentTypes {
		return LockBitOutOfRangeError{Bit: bit, Max: MaxComponentTypes}
	}
	sto.locks.Mark(bit)
	return nil
}

func (sto *storage) RemoveLock(bit uint32) error {
	if int(bit) >= MaxComponentTypes {
		return LockBitOutOfRangeError{Bit: bit, Max: MaxComponentTypes}
	}
	sto.locks.Unmark(bit)
	if sto.Locked() {
		return nil
	}
	return sto.processOperationQueue()
}

func (sto *storage) acquireCursor() {
	sto.cursors++
}

func (sto *storage) releaseCursor() error {
	if sto.cursors > 0 {
		sto.cursors--
	}
	if sto.Locked() {
		return nil
	}
	return sto.processOperationQueue()
}
