package shelf

import (
	"fmt"
	"reflect"
)

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "world is currently locked"
}

// ComponentNotRegisteredError reports a value or component whose type was
// never passed to RegisterComponent.
type ComponentNotRegisteredError struct {
	Type reflect.Type
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component type was never registered: %v", e.Type)
}

// CreateEntityNeverCalledError reports a builder that is not bound to a slot.
type CreateEntityNeverCalledError struct{}

func (e CreateEntityNeverCalledError) Error() string {
	return "attempted to add a component without calling CreateEntity first"
}

type EntityDoesNotExistError struct {
	Index int
}

func (e EntityDoesNotExistError) Error() string {
	return fmt.Sprintf("entity slot %d does not exist", e.Index)
}

// StaleEntityError reports an Entity handle whose slot has since been handed
// to a newer entity.
type StaleEntityError struct {
	Entity  Entity
	Current uint32
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("stale entity %v: slot is at generation %d", e.Entity, e.Current)
}

type ResourceNotFoundError struct {
	Type reflect.Type
}

func (e ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %v", e.Type)
}

// DowncastError reports a type-erased value read back as the wrong type.
// It indicates a registry or usage bug.
type DowncastError struct {
	Want, Got reflect.Type
}

func (e DowncastError) Error() string {
	return fmt.Sprintf("cannot downcast %v to %v", e.Got, e.Want)
}

type BorrowConflictError struct {
	Slot      int
	Type      reflect.Type
	Exclusive bool
}

func (e BorrowConflictError) Error() string {
	kind := "shared"
	if e.Exclusive {
		kind = "exclusive"
	}
	return fmt.Sprintf("%s borrow of %v at slot %d conflicts with an active borrow", kind, e.Type, e.Slot)
}

type RegistrationClosedError struct {
	Type reflect.Type
}

func (e RegistrationClosedError) Error() string {
	return fmt.Sprintf("cannot register %v after entities exist", e.Type)
}

type TooManyComponentsError struct {
	Type reflect.Type
	Max  int
}

func (e TooManyComponentsError) Error() string {
	return fmt.Sprintf("cannot register %v: membership mask holds at most %d component types", e.Type, e.Max)
}

type ComponentNotFoundError struct {
	Type reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component is not part of the result: %v", e.Type)
}

type LockBitOutOfRangeError struct {
	Bit uint32
	Max int
}

func (e LockBitOutOfRangeError) Error() string {
	return fmt.Sprintf("lock bit %d out of range [0, %d)", e.Bit, e.Max)
}
