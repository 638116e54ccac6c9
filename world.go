package shelf

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

var _ World = &world{}

// world composes the component store and the resource store. Builders and
// queries are always bound to its own storage.
type world struct {
	sto *storage
	res *Resources
}

func newWorld(schema table.Schema) *world {
	return &world{
		sto: newStorage(schema),
		res: newResources(),
	}
}

// RegisterComponent assigns the next membership bit to each component.
// Registration must happen before the first entity is created.
func (w *world) RegisterComponent(components ...Component) error {
	for _, c := range components {
		if err := w.sto.register(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) BitFor(c Component) (uint32, error) {
	return w.sto.bitFor(c.ValueType())
}

// CreateEntity opens a slot, reusing the lowest tombstoned one if any.
func (w *world) CreateEntity() *EntityBuilder {
	return w.sto.createEntity()
}

func (w *world) EnqueueNewEntity(values ...any) error {
	return w.sto.enqueueNewEntity(values...)
}

// AddComponentByEntityID writes value into an existing slot. The slot is not
// checked for liveness.
func (w *world) AddComponentByEntityID(value any, index int) error {
	return w.sto.addComponentByEntityID(value, index)
}

func (w *world) EnqueueAddComponent(e Entity, value any) error {
	return w.sto.enqueueAddComponent(e, value)
}

func (w *world) DeleteComponentByEntityID(c Component, index int) error {
	return w.sto.deleteComponentByEntityID(c, index)
}

func (w *world) EnqueueRemoveComponent(e Entity, c Component) error {
	return w.sto.enqueueRemoveComponent(e, c)
}

// DeleteEntityByID tombstones a slot. Its cells stay behind until reused.
func (w *world) DeleteEntityByID(index int) error {
	return w.sto.deleteEntityByID(index)
}

// DestroyEntity is DeleteEntityByID guarded by the entity's generation.
func (w *world) DestroyEntity(e Entity) error {
	return w.sto.destroyEntity(e)
}

func (w *world) EnqueueDestroyEntity(e Entity) error {
	return w.sto.enqueueDestroyEntity(e)
}

func (w *world) Entity(index int) (Entity, error) {
	return w.sto.entity(index)
}

func (w *world) Alive(e Entity) bool {
	return w.sto.alive(e)
}

func (w *world) Mask(index int) (mask.Mask, error) {
	return w.sto.maskAt(index)
}

// Slots returns the number of slots, live or tombstoned.
func (w *world) Slots() int {
	return len(w.sto.masks)
}

func (w *world) Query() Query {
	return newQuery(w.sto)
}

func (w *world) AddResource(value any) {
	w.res.Add(value)
}

func (w *world) Resources() *Resources {
	return w.res
}

func (w *world) Locked() bool {
	return w.sto.Locked()
}

func (w *world) AddLock(bit uint32) error {
	return w.sto.AddLock(bit)
}

func (w *world) RemoveLock(bit uint32) error {
	return w.sto.RemoveLock(bit)
}
