package ecs_test

import (
	"testing"

	"github.com/plus3/idvs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movable struct {
	*Position
	*Velocity
}

func TestViewGet(t *testing.T) {
	forEachKind(t, func(t *testing.T, registry *ecs.ComponentRegistry) {
		storage := ecs.NewStorage(registry)
		storage.Insert(10, Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})
		storage.Insert(11, Position{X: 5, Y: 6})

		view := ecs.NewView[movable](storage)

		item := view.Get(10)
		require.NotNil(t, item)
		assert.Equal(t, float32(1), item.Position.X)
		assert.Equal(t, float32(4), item.Velocity.DY)

		assert.Nil(t, view.Get(11))
		assert.Nil(t, view.Get(12))
	})
}

func TestViewFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Insert(3, Position{X: 7}, Velocity{DX: 8})

	view := ecs.NewView[movable](storage)

	var item movable
	assert.True(t, view.Fill(3, &item))
	assert.Equal(t, float32(7), item.Position.X)
	assert.Equal(t, float32(8), item.Velocity.DX)

	assert.False(t, view.Fill(4, &item))
}

func TestViewComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Insert(0, Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[movable](storage)
	item := view.Get(0)
	item.Position.X += item.Velocity.DX
	item.Position.Y += item.Velocity.DY

	pos := ecs.ReadComponent[Position](storage, 0)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)
}

func TestViewIter(t *testing.T) {
	forEachKind(t, func(t *testing.T, registry *ecs.ComponentRegistry) {
		storage := ecs.NewStorage(registry)
		storage.Insert(900, Position{X: 900}, Velocity{DX: 1})
		storage.Insert(5, Position{X: 5}, Velocity{DX: 1})
		storage.Insert(6, Position{X: 6})
		storage.Insert(7, Velocity{DX: 7})
		storage.Insert(1<<20, Position{X: 1 << 20}, Velocity{DX: 1})

		view := ecs.NewView[movable](storage)

		var ids []ecs.Index
		for id, item := range view.Iter() {
			ids = append(ids, id)
			assert.Equal(t, float32(id), item.Position.X)
		}
		assert.Equal(t, []ecs.Index{5, 900, 1 << 20}, ids)
	})
}

func TestViewIterEmpty(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movable](storage)

	for range view.Iter() {
		t.Fatal("unexpected entity")
	}

	// Velocity storage exists only once something was stored in it.
	storage.Insert(1, Position{})
	for range view.Iter() {
		t.Fatal("unexpected entity")
	}
}

func TestViewIterEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for id := ecs.Index(0); id < 10; id++ {
		storage.Insert(id, Position{}, Velocity{})
	}

	view := ecs.NewView[movable](storage)
	count := 0
	for range view.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewValues(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Insert(1, Position{}, Velocity{DX: 1})
	storage.Insert(2, Position{}, Velocity{DX: 2})

	view := ecs.NewView[movable](storage)
	var total float32
	for item := range view.Values() {
		total += item.Velocity.DX
	}
	assert.Equal(t, float32(3), total)
}

func TestViewIterAfterMaintain(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for id := ecs.Index(0); id < 8; id++ {
		storage.Insert(id, Position{X: float32(id)}, Velocity{})
	}
	storage.Maintain(ecs.LivenessFunc(func(id ecs.Index) bool { return id >= 4 }))

	view := ecs.NewView[movable](storage)
	var ids []ecs.Index
	for id := range view.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.Index{4, 5, 6, 7}, ids)
}

type movableWithHealth struct {
	*Position
	Health *Health `ecs:"optional"`
}

func TestViewOptionalComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Insert(1, Position{X: 1}, Health{Current: 10})
	storage.Insert(2, Position{X: 2})

	view := ecs.NewView[movableWithHealth](storage)

	seen := make(map[ecs.Index]*Health)
	for id, item := range view.Iter() {
		seen[id] = item.Health
	}
	require.Len(t, seen, 2)
	require.NotNil(t, seen[1])
	assert.Equal(t, 10, seen[1].Current)
	assert.Nil(t, seen[2])
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.PanicsWithValue(t, "View type parameter must be a struct", func() {
		ecs.NewView[int](storage)
	})
	assert.PanicsWithValue(t, "View struct fields must be pointer types", func() {
		ecs.NewView[struct{ Position }](storage)
	})
	assert.PanicsWithValue(t, `invalid ecs tag value: "maybe" (only "optional" is supported)`, func() {
		ecs.NewView[struct {
			Pos *Position `ecs:"maybe"`
		}](storage)
	})
	assert.PanicsWithValue(t, "View struct needs at least one required component", func() {
		ecs.NewView[struct {
			Pos *Position `ecs:"optional"`
		}](storage)
	})
}

func TestViewInsert(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movableWithHealth](storage)

	view.Insert(40, movableWithHealth{Position: &Position{X: 4}})
	view.Insert(41, movableWithHealth{Position: &Position{X: 5}, Health: &Health{Current: 3}})

	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, 40).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, 40))
	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, 41).Current)

	assert.PanicsWithValue(t, "required component is nil in View.Insert", func() {
		view.Insert(42, movableWithHealth{})
	})
}
