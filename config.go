package shelf

import "github.com/TheBitDrifter/table"

// Config holds global configuration for newly created worlds
var Config config = config{}

type config struct {
	tableEvents  table.TableEvents
	slotCapacity int
}

// SetTableEvents configures the event callbacks of the slot table
func (c *config) SetTableEvents(te table.TableEvents) {
	c.tableEvents = te
}

// SetSlotCapacity preallocates the membership and generation vectors of new worlds
func (c *config) SetSlotCapacity(n int) {
	if n < 0 {
		n = 0
	}
	c.slotCapacity = n
}
