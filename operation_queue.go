package shelf

import (
	"fmt"
	"reflect"
)

type operation struct {
	typ    operationType
	entity Entity
	values []any
	comp   reflect.Type
}

type operationType int

const (
	opNone operationType = iota - 1
	opCreate
	opDestroy
	opAddComponent
	opRemoveComponent
)

type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[Entity]struct{}
	pendingMods    map[Entity][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[Entity][]int),
	}
}

func (q *opQueue) EnqueueCreate(values []any) {
	q.createOps = append(q.createOps, operation{
		typ:    opCreate,
		values: values,
	})
}

func (q *opQueue) EnqueueDestroy(e Entity) {
	if _, exists := q.pendingDestroy[e]; exists {
		return
	}
	q.pendingDestroy[e] = struct{}{}

	// Component operations on a doomed entity become no-ops
	for _, idx := range q.pendingMods[e] {
		q.componentOps[idx].typ = opNone
	}
	delete(q.pendingMods, e)

	q.destroyOps = append(q.destroyOps, operation{
		typ:    opDestroy,
		entity: e,
	})
}

func (q *opQueue) EnqueueComponentOp(typ operationType, e Entity, value any, comp reflect.Type) {
	if _, isDestroyed := q.pendingDestroy[e]; isDestroyed {
		return
	}
	op := operation{
		typ:    typ,
		entity: e,
		comp:   comp,
	}
	if typ == opAddComponent {
		op.values = []any{value}
	}
	q.pendingMods[e] = append(q.pendingMods[e], len(q.componentOps))
	q.componentOps = append(q.componentOps, op)
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0 &&
		len(q.componentOps) == 0 &&
		len(q.destroyOps) == 0
}

func (q *opQueue) reset() {
	q.createOps = q.createOps[:0]
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// processOperationQueue applies deferred operations: creates first, then
// component changes, then destroys. Operations aimed at an entity whose slot
// has since been recycled are dropped.
func (sto *storage) processOperationQueue() error {
	if sto.opQueue.empty() {
		return nil
	}
	defer sto.opQueue.reset()

	for _, op := range sto.opQueue.createOps {
		b := sto.createEntity()
		for _, v := range op.values {
			b.WithComponent(v)
		}
		if err := b.Err(); err != nil {
			return fmt.Errorf("failed to process queued entity creation: %w", err)
		}
	}

	for _, op := range sto.opQueue.componentOps {
		if op.typ == opNone {
			continue
		}
		if sto.checkCurrent(op.entity) != nil {
			continue
		}
		switch op.typ {
		case opAddComponent:
			if err := sto.writeComponent(op.entity.index, op.values[0]); err != nil {
				return fmt.Errorf("failed to add queued component: %w", err)
			}
		case opRemoveComponent:
			if err := sto.deleteComponent(op.comp, op.entity.index); err != nil {
				return fmt.Errorf("failed to remove queued component: %w", err)
			}
		}
	}

	for _, op := range sto.opQueue.destroyOps {
		if sto.checkCurrent(op.entity) != nil {
			continue
		}
		if err := sto.deleteEntityByID(op.entity.index); err != nil {
			return fmt.Errorf("failed to destroy queued entity: %w", err)
		}
	}
	return nil
}

func (sto *storage) enqueueNewEntity(values ...any) error {
	for _, v := range values {
		if _, ok := sto.registry.Lookup(reflect.TypeOf(v)); !ok {
			return ComponentNotRegisteredError{Type: reflect.TypeOf(v)}
		}
	}
	if !sto.Locked() {
		b := sto.createEntity()
		for _, v := range values {
			b.WithComponent(v)
		}
		if err := b.Err(); err != nil {
			return fmt.Errorf("failed to create entity directly: %w", err)
		}
		return nil
	}
	sto.opQueue.EnqueueCreate(values)
	return nil
}

func (sto *storage) enqueueAddComponent(e Entity, value any) error {
	if !sto.Locked() {
		if err := sto.checkCurrent(e); err != nil {
			return err
		}
		return sto.addComponentByEntityID(value, e.index)
	}
	typ := reflect.TypeOf(value)
	if _, ok := sto.registry.Lookup(typ); !ok {
		return ComponentNotRegisteredError{Type: typ}
	}
	sto.opQueue.EnqueueComponentOp(opAddComponent, e, value, typ)
	return nil
}

func (sto *storage) enqueueRemoveComponent(e Entity, c Component) error {
	if !sto.Locked() {
		if err := sto.checkCurrent(e); err != nil {
			return err
		}
		return sto.deleteComponentByEntityID(c, e.index)
	}
	if _, ok := sto.registry.Lookup(c.ValueType()); !ok {
		return ComponentNotRegisteredError{Type: c.ValueType()}
	}
	sto.opQueue.EnqueueComponentOp(opRemoveComponent, e, nil, c.ValueType())
	return nil
}

func (sto *storage) enqueueDestroyEntity(e Entity) error {
	if !sto.Locked() {
		return sto.destroyEntity(e)
	}
	if err := sto.checkCurrent(e); err != nil {
		return err
	}
	sto.opQueue.EnqueueDestroy(e)
	return nil
}
