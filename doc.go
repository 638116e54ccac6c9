/*
Package shelf provides a small Entity-Component-System (ECS) data store for games and simulations.

Shelf keeps every registered component type in its own column of a single slot table. An entity
is simply a slot index shared by all columns; a membership mask per slot records which columns
currently hold a value for it. Deleted slots become tombstones and are reused lowest-index first.

Core Concepts:

  - Slot: an index shared by every column and the membership vector; the implicit entity.
  - Component: a registered Go type with its own column and membership bit.
  - Cell: the store-owned home of one component value, shared by every query that returns it.
  - Query: a required/excluded mask matched against each slot in ascending order.
  - Resource: a singleton value keyed by type, independent of entities.

Basic Usage:

	world := shelf.Factory.NewWorld()

	// Register components before creating entities
	position := shelf.FactoryNewComponent[Position]()
	velocity := shelf.FactoryNewComponent[Velocity]()
	world.RegisterComponent(position, velocity)

	// Create an entity
	world.CreateEntity().
		WithComponent(Position{X: 1, Y: 2}).
		WithComponent(Velocity{X: 1, Y: 1})

	// Query entities and process them
	result, _ := world.Query().
		WithComponent(position).
		WithComponent(velocity).
		Run()
	positions, _ := position.Column(result)
	velocities, _ := velocity.Column(result)
	for i := range result.Indexes {
		vel, _ := velocities[i].Get()
		positions[i].Update(func(pos *Position) {
			pos.X += vel.X
			pos.Y += vel.Y
		})
	}

A World is not safe for concurrent use. Cells track borrows at runtime and report overlapping
exclusive access with a BorrowConflictError instead of corrupting data.
*/
package shelf
