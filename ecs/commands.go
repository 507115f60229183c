package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands provides a buffer for deferred storage operations that are applied in one batch.
// This prevents structural changes to the storage while pointers obtained from it are in use.
type Commands struct {
	inserts []insertCommand
	deletes []Index
	removes []removeComponentCommand
	defers  []deferCommand
	deleted *intmap.Map[Index, struct{}]
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{
		deleted: intmap.New[Index, struct{}](64),
	}
}

type deferCommand struct {
	fn func()
}

type insertCommand struct {
	entity     Index
	components []any
}

type removeComponentCommand struct {
	entity   Index
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Insert queues attaching components to an entity.
func (c *Commands) Insert(entity Index, components ...any) {
	c.inserts = append(c.inserts, insertCommand{entity: entity, components: components})
}

// Delete queues removing every component of an entity.
func (c *Commands) Delete(entity Index) {
	c.deletes = append(c.deletes, entity)
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Index, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.inserts) + len(c.deletes) + len(c.removes) + len(c.defers)
}

// Flush flushes all commands to the provided storage, reseting the buffer state.
// Deletes run first; removals and inserts queued for a deleted entity are dropped.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
		c.deleted.Put(id, struct{}{})
	}

	for _, cmd := range c.removes {
		if _, gone := c.deleted.Get(cmd.entity); !gone {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.inserts {
		if _, gone := c.deleted.Get(cmd.entity); !gone {
			storage.Insert(cmd.entity, cmd.components...)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.inserts = c.inserts[:0]
	c.deletes = c.deletes[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	c.deleted.Clear()
}
