package shelf_test

import (
	"fmt"

	"github.com/TheBitDrifter/shelf"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Gravity is a world-wide resource
type Gravity struct {
	Y float64
}

// Example shows basic shelf usage with entity creation and queries
func Example_basic() {
	world := shelf.Factory.NewWorld()

	// Define and register components
	position := shelf.FactoryNewComponent[Position]()
	velocity := shelf.FactoryNewComponent[Velocity]()
	name := shelf.FactoryNewComponent[Name]()
	world.RegisterComponent(position, velocity, name)

	// Create entities
	for i := 0; i < 5; i++ {
		world.CreateEntity().WithComponent(Position{})
	}
	for i := 0; i < 3; i++ {
		world.CreateEntity().WithComponent(Position{}).WithComponent(Velocity{})
	}
	world.CreateEntity().
		WithComponent(Position{X: 10, Y: 20}).
		WithComponent(Velocity{X: 1, Y: 2}).
		WithComponent(Name{Value: "Player"})

	// Count entities with position and velocity
	matchCount, _ := world.Query().WithComponent(position).WithComponent(velocity).Count()
	fmt.Printf("Found %d entities with position and velocity\n", matchCount)

	// Process the named entity
	result, _ := world.Query().
		WithComponent(name).
		WithComponent(position).
		WithComponent(velocity).
		Run()
	names, _ := name.Column(result)
	positions, _ := position.Column(result)
	velocities, _ := velocity.Column(result)

	for i, slot := range result.Indexes {
		nme, _ := names[i].Get()
		vel, _ := velocities[i].Get()
		positions[i].Update(func(pos *Position) {
			pos.X += vel.X
			pos.Y += vel.Y
		})
		pos, _ := positions[i].Get()
		fmt.Printf("Updated %s in slot %d to position (%.1f, %.1f)\n", nme.Value, slot, pos.X, pos.Y)
	}

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player in slot 8 to position (11.0, 22.0)
}

// Example_cursor shows cursor iteration with deferred destruction
func Example_cursor() {
	world := shelf.Factory.NewWorld()
	position := shelf.FactoryNewComponent[Position]()
	world.RegisterComponent(position)

	for i := 0; i < 4; i++ {
		world.CreateEntity().WithComponent(Position{X: float64(i)})
	}

	cursor := shelf.Factory.NewCursor(world.Query().WithComponent(position))
	for _, entity := range cursor.Entities() {
		pos, _ := position.GetFromCursor(cursor).Get()
		if pos.X < 2 {
			world.EnqueueDestroyEntity(entity)
		}
	}

	remaining, _ := world.Query().WithComponent(position).Count()
	fmt.Printf("%d entities remain\n", remaining)

	// Freed slots are reused lowest first
	entity, _ := world.CreateEntity().WithComponent(Position{X: 9}).Build()
	fmt.Printf("New entity took slot %d\n", entity.Index())

	// Output:
	// 2 entities remain
	// New entity took slot 0
}

// Example_resources shows singleton resources
func Example_resources() {
	world := shelf.Factory.NewWorld()
	world.AddResource(Gravity{Y: -9.8})

	if g, ok := shelf.GetResourceMut[Gravity](world); ok {
		g.Y *= 2
	}
	g, _ := shelf.GetResource[Gravity](world)
	fmt.Printf("Gravity: %.1f\n", g.Y)

	shelf.DeleteResource[Gravity](world)
	_, err := shelf.RequireResource[Gravity](world)
	fmt.Println(err)

	// Output:
	// Gravity: -19.6
	// resource not found: shelf_test.Gravity
}
