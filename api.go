package shelf

import (
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// World is the single handle systems operate on. It owns the component
// store and the resource store.
type World interface {
	RegisterComponent(...Component) error
	// BitFor returns the bit position k of a registered component, not the
	// mask value 1<<k.
	BitFor(Component) (uint32, error)

	CreateEntity() *EntityBuilder
	EnqueueNewEntity(values ...any) error
	AddComponentByEntityID(value any, index int) error
	EnqueueAddComponent(e Entity, value any) error
	DeleteComponentByEntityID(c Component, index int) error
	EnqueueRemoveComponent(e Entity, c Component) error
	DeleteEntityByID(index int) error
	DestroyEntity(e Entity) error
	EnqueueDestroyEntity(e Entity) error

	Entity(index int) (Entity, error)
	Alive(Entity) bool
	Mask(index int) (mask.Mask, error)
	Slots() int

	Query() Query

	AddResource(value any)
	Resources() *Resources

	Locked() bool
	AddLock(bit uint32) error
	RemoveLock(bit uint32) error
}

// Component identifies a registrable component type. Obtain one with
// FactoryNewComponent.
type Component interface {
	table.ElementType
	ValueType() reflect.Type
	newColumn() column
}

// Handle is a type-erased reference to a store-owned component cell.
type Handle interface {
	Slot() int
	ValueType() reflect.Type
	Value() (any, error)
}

type Query interface {
	WithComponent(Component) Query
	WithoutComponent(Component) Query
	Run() (QueryResult, error)
	Count() (int, error)
	Err() error
}

type iCursor interface {
	Entities() iter.Seq2[int, Entity]
	Next() bool
}

// AccessibleComponent extends a base Component with typed access to its cells
type AccessibleComponent[T any] struct {
	table.ElementType
	accessor table.Accessor[cellRef[T]]
}

// QueryResult is a snapshot of the slots that matched a query. Components
// holds one column per requested type, in request order, index-aligned with
// Indexes.
type QueryResult struct {
	Indexes    []int
	Components [][]Handle
	types      []reflect.Type
}

// Warning: internal Dependencies abound!
type Cursor struct {
	query *query
	sto   *storage

	// Current iteration state
	slot int
	next int

	initialized bool
	err         error
}
