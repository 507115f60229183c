package ecs_test

import (
	"fmt"

	"github.com/plus3/idvs/ecs"
)

// ExampleQuery demonstrates using queries for repeated iteration.
// Unlike Views, Queries take a snapshot of their matches in Execute, so the
// same frame can walk the results several times without joining the
// component storages again. Structural changes belong on Commands until the
// next Execute.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	storage.Insert(20, Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})
	storage.Insert(0, Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Insert(10, Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	query.Execute()

	fmt.Printf("Moving entities (%d):\n", query.Len())
	for id, item := range query.Iter() {
		newX := item.Position.X + item.Velocity.DX
		newY := item.Position.Y + item.Velocity.DY
		fmt.Printf("%d: (%.0f, %.0f) -> (%.0f, %.0f)\n", id, item.Position.X, item.Position.Y, newX, newY)
	}

	// Output:
	// Moving entities (3):
	// 0: (0, 0) -> (1, 0)
	// 10: (10, 10) -> (10, 11)
	// 20: (20, 20) -> (19, 19)
}
