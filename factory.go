package shelf

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewWorld() World {
	return newWorld(table.Factory.NewSchema())
}

// NewWorldWithSchema builds a world whose slot table uses an existing schema
func (f factory) NewWorldWithSchema(schema table.Schema) World {
	return newWorld(schema)
}

func (f factory) NewCursor(query Query) *Cursor {
	return newCursor(query)
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[cellRef[T]]()
	return AccessibleComponent[T]{
		ElementType: iden,
		accessor:    table.FactoryNewAccessor[cellRef[T]](iden),
	}
}
