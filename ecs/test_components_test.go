package ecs_test

import (
	"testing"

	"github.com/plus3/idvs/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type AI struct {
	State int
}

// Custom primitive types for testing non-pointer components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

type RefComponent struct {
	Ref *Position
}

func registerTestComponents(registry *ecs.ComponentRegistry, kind ecs.StorageKind) {
	ecs.RegisterComponentKind[Position](registry, kind)
	ecs.RegisterComponentKind[Velocity](registry, kind)
	ecs.RegisterComponentKind[Name](registry, kind)
	ecs.RegisterComponentKind[Health](registry, kind)
	ecs.RegisterComponentKind[AI](registry, kind)
	ecs.RegisterComponentKind[Score](registry, kind)
	ecs.RegisterComponentKind[Tag](registry, kind)
	ecs.RegisterComponentKind[Temperature](registry, kind)
	ecs.RegisterComponentKind[Inventory](registry, kind)
	ecs.RegisterComponentKind[RefComponent](registry, kind)
	ecs.RegisterComponentKind[string](registry, kind)
	ecs.RegisterComponentKind[int](registry, kind)
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	registerTestComponents(registry, ecs.KindIDV)
	return registry
}

// forEachKind runs fn against a fresh registry for every storage kind.
func forEachKind(t *testing.T, fn func(t *testing.T, registry *ecs.ComponentRegistry)) {
	for _, kind := range []ecs.StorageKind{ecs.KindIDV, ecs.KindVec} {
		t.Run(string(kind), func(t *testing.T) {
			registry := ecs.NewComponentRegistry()
			registerTestComponents(registry, kind)
			fn(t, registry)
		})
	}
}
