package shelf

import "github.com/TheBitDrifter/table"

// newSlotTable builds the table holding one column per registered
// component. Row i of every column is slot i.
func newSlotTable(schema table.Schema, entryIndex table.EntryIndex, components ...Component) (table.Table, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	return table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
}
