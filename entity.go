package shelf

import "fmt"

// Entity names the occupant of a slot. The generation changes every time the
// slot is handed out by CreateEntity, so a handle kept across a delete and
// reuse can be told apart from the new occupant.
type Entity struct {
	index      int
	generation uint32
}

func (e Entity) Index() int {
	return e.index
}

func (e Entity) Generation() uint32 {
	return e.generation
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d:%d)", e.index, e.generation)
}

// EntityBuilder accumulates component writes against one slot. Each write
// lands immediately; the first failure is latched and every later call is
// a no-op.
type EntityBuilder struct {
	sto    *storage
	entity Entity
	err    error
}

func (b *EntityBuilder) WithComponent(value any) *EntityBuilder {
	if b == nil {
		return &EntityBuilder{err: CreateEntityNeverCalledError{}}
	}
	if b.err != nil {
		return b
	}
	if b.sto == nil {
		b.err = CreateEntityNeverCalledError{}
		return b
	}
	if err := b.sto.checkCurrent(b.entity); err != nil {
		b.err = err
		return b
	}
	if b.sto.Locked() {
		b.err = LockedStorageError{}
		return b
	}
	b.err = b.sto.writeComponent(b.entity.index, value)
	return b
}

func (b *EntityBuilder) Err() error {
	if b == nil {
		return CreateEntityNeverCalledError{}
	}
	return b.err
}

func (b *EntityBuilder) Entity() Entity {
	if b == nil {
		return Entity{}
	}
	return b.entity
}

// Build returns the entity and the first error encountered while building it.
// Components written before a failure stay in place.
func (b *EntityBuilder) Build() (Entity, error) {
	return b.Entity(), b.Err()
}
