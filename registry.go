package shelf

import (
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

// MaxComponentTypes is the number of distinct component types a world can
// register, one per bit of the membership mask.
var MaxComponentTypes = int(unsafe.Sizeof(mask.Mask{})) * 8

type registeredComponent struct {
	bit       uint32
	component Component
	column    column
}

// registry maps a value type to its column and to the membership bit the
// schema assigned it. Bits at or above maxCapacity do not fit in a mask.
type registry struct {
	items       []registeredComponent
	itemIndices map[reflect.Type]int
	maxCapacity int
}

func newRegistry(maxCapacity int) *registry {
	return &registry{
		itemIndices: make(map[reflect.Type]int),
		maxCapacity: maxCapacity,
	}
}

func (r *registry) Register(c Component, bit uint32) (uint32, error) {
	typ := c.ValueType()
	if idx, ok := r.itemIndices[typ]; ok {
		return r.items[idx].bit, nil
	}
	if int(bit) >= r.maxCapacity {
		return 0, TooManyComponentsError{Type: typ, Max: r.maxCapacity}
	}
	r.itemIndices[typ] = len(r.items)
	r.items = append(r.items, registeredComponent{
		bit:       bit,
		component: c,
		column:    c.newColumn(),
	})
	return bit, nil
}

func (r *registry) Lookup(typ reflect.Type) (registeredComponent, bool) {
	idx, ok := r.itemIndices[typ]
	if !ok {
		return registeredComponent{}, false
	}
	return r.items[idx], true
}

func (r *registry) Components() []Component {
	comps := make([]Component, len(r.items))
	for i, item := range r.items {
		comps[i] = item.component
	}
	return comps
}

func (r *registry) Len() int {
	return len(r.items)
}
