package ecs_test

import (
	"testing"

	"github.com/plus3/idvs/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Insert(4, Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Insert(1, Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Insert(700, Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Insert(2, Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())

		var ids []ecs.Index
		for id := range query.Iter() {
			ids = append(ids, id)
		}
		assert.Equal(t, []ecs.Index{1, 4, 700}, ids)
	})

	t.Run("panics without execute", func(t *testing.T) {
		freshQuery := ecs.NewQuery[struct {
			*Position
			*Velocity
		}](storage)

		assert.Panics(t, func() {
			for range freshQuery.Iter() {
			}
		})
		assert.Panics(t, func() {
			for range freshQuery.Values() {
			}
		})
	})

	t.Run("cache is a snapshot", func(t *testing.T) {
		query.Execute()
		storage.Insert(5, Position{}, Velocity{})

		assert.Equal(t, 3, query.Len())
		count := 0
		for range query.Values() {
			count++
		}
		assert.Equal(t, 3, count)

		query.Execute()
		assert.Equal(t, 4, query.Len())
		storage.Delete(5)
	})

	t.Run("mutations reach storage", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			item.Position.X += item.Velocity.DX
		}

		assert.Equal(t, float32(1.5), ecs.ReadComponent[Position](storage, 4).X)
		assert.Equal(t, float32(6.5), ecs.ReadComponent[Position](storage, 700).X)
		assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, 2).X)
	})
}
