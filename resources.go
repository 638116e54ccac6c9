package shelf

import "reflect"

// Resources holds at most one value per type, independent of entities.
// Values are boxed behind a pointer so mutable lookups change the stored copy.
type Resources struct {
	data map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{data: make(map[reflect.Type]any)}
}

// Add stores value under its dynamic type, replacing any previous value of
// that exact type. Panics on a nil value.
func (r *Resources) Add(value any) {
	if value == nil {
		panic("cannot add nil resource")
	}
	v := reflect.ValueOf(value)
	boxed := reflect.New(v.Type())
	boxed.Elem().Set(v)
	r.data[v.Type()] = boxed.Interface()
}

// Get returns a pointer to the stored value of the given type.
func (r *Resources) Get(typ reflect.Type) (any, bool) {
	res, ok := r.data[typ]
	return res, ok
}

func (r *Resources) Has(typ reflect.Type) bool {
	_, ok := r.data[typ]
	return ok
}

// Remove deletes the value of the given type. It is a no-op when absent.
func (r *Resources) Remove(typ reflect.Type) {
	delete(r.data, typ)
}

func (r *Resources) Len() int {
	return len(r.data)
}

func (r *Resources) Clear() {
	clear(r.data)
}

// ResourceOf retrieves the resource of type T as *T.
func ResourceOf[T any](r *Resources) (*T, bool) {
	res, ok := r.data[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	ptr, ok := res.(*T)
	return ptr, ok
}

// GetResource returns a copy of the world's resource of type T.
func GetResource[T any](w World) (T, bool) {
	ptr, ok := ResourceOf[T](w.Resources())
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// GetResourceMut returns the world's resource of type T for in-place mutation.
func GetResourceMut[T any](w World) (*T, bool) {
	return ResourceOf[T](w.Resources())
}

// RequireResource is GetResourceMut for systems that cannot run without the
// resource.
func RequireResource[T any](w World) (*T, error) {
	ptr, ok := ResourceOf[T](w.Resources())
	if !ok {
		return nil, ResourceNotFoundError{Type: reflect.TypeFor[T]()}
	}
	return ptr, nil
}

func DeleteResource[T any](w World) {
	w.Resources().Remove(reflect.TypeFor[T]())
}
