package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"reflect"
	"time"

	"github.com/plus3/idvs/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

// workload plays the entity allocator: it issues sparse entity indices,
// retires them either explicitly through Commands or silently through the
// liveness set, and drives the storage through a Scheduler each frame.
type workload struct {
	cfg       Config
	log       *slog.Logger
	rng       *rand.Rand
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	alive   *ecs.EntitySet
	pending *ecs.EntitySet // retired but not yet cleaned up
	ids     []ecs.Index

	lastCleanup time.Duration
}

func newWorkload(cfg Config, kind ecs.StorageKind, seed int64, logger *slog.Logger) *workload {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponentKind[Position](registry, kind)
	ecs.RegisterComponentKind[Velocity](registry, kind)
	ecs.RegisterComponentKind[Health](registry, kind)

	storage := ecs.NewStorage(registry)
	w := &workload{
		cfg:       cfg,
		log:       logger.With("storage", kind),
		rng:       rand.New(rand.NewSource(seed)),
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		alive:     ecs.NewEntitySet(cfg.Entities),
		pending:   ecs.NewEntitySet(cfg.Churn * cfg.CleanEvery),
		ids:       make([]ecs.Index, 0, cfg.Entities),
	}

	w.scheduler.Register(&MovementSystem{})
	w.scheduler.Register(&DecaySystem{})
	w.scheduler.Register(&ChurnSystem{w: w})
	w.scheduler.Register(&CleanupSystem{w: w})
	return w
}

// issue picks an unused entity index and gives it 1 to 3 components.
func (w *workload) issue() {
	var id ecs.Index
	for {
		id = ecs.Index(w.rng.Int63n(w.cfg.Span))
		if !w.alive.Contains(id) && !w.pending.Contains(id) {
			break
		}
	}

	w.alive.Add(id)
	w.ids = append(w.ids, id)

	w.storage.Insert(id, Position{X: w.rng.Float32(), Y: w.rng.Float32()})
	if w.rng.Intn(2) == 0 {
		w.storage.Insert(id, Velocity{DX: w.rng.Float32(), DY: w.rng.Float32()})
	}
	if w.rng.Intn(3) == 0 {
		w.storage.Insert(id, Health{Current: 10, Max: 10})
	}
}

// retire removes a random live entity. Explicit retirements are queued as a
// delete on commands; the rest are left for the next cleanup pass. Either way
// the index stays reserved until the next cleanup.
func (w *workload) retire(commands *ecs.Commands, explicit bool) {
	i := w.rng.Intn(len(w.ids))
	id := w.ids[i]
	w.ids[i] = w.ids[len(w.ids)-1]
	w.ids = w.ids[:len(w.ids)-1]

	w.alive.Remove(id)
	w.pending.Add(id)
	if explicit {
		commands.Delete(id)
	}
}

// step runs one frame and reports how long the cleanup took, if one ran.
func (w *workload) step(dt float32) time.Duration {
	w.lastCleanup = 0
	w.scheduler.Once(float64(dt))
	return w.lastCleanup
}

// verify checks that exactly the live entities hold a Position.
func (w *workload) verify() error {
	w.storage.Maintain(w.alive)
	w.pending.Clear()

	positions := w.storage.Entities(reflect.TypeOf(Position{}))
	if len(positions) != len(w.ids) {
		return fmt.Errorf("%d entities hold a position, want %d", len(positions), len(w.ids))
	}
	for _, id := range positions {
		if !w.alive.Contains(id) {
			return fmt.Errorf("retired entity %d still holds a position", id)
		}
	}
	return nil
}

// MovementSystem integrates velocities. Entities retired since the last
// cleanup still hold components and move too.
type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for m := range s.Entities.Values() {
		m.Position.X += m.Velocity.DX * dt
		m.Position.Y += m.Velocity.DY * dt
	}
}

// DecaySystem drains health and drops the component once it runs out.
type DecaySystem struct {
	Entities ecs.Query[struct{ *Health }]
}

func (s *DecaySystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Entities.Iter() {
		item.Health.Current--
		if item.Health.Current <= 0 {
			frame.Commands.RemoveComponent(id, reflect.TypeOf(Health{}))
		}
	}
}

// ChurnSystem retires cfg.Churn entities and issues as many new ones.
type ChurnSystem struct {
	w *workload
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	for i := range s.w.cfg.Churn {
		s.w.retire(frame.Commands, i%2 == 0)
	}
	for range s.w.cfg.Churn {
		s.w.issue()
	}
}

// CleanupSystem runs Maintain every cfg.CleanEvery frames.
type CleanupSystem struct {
	w *workload
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.Number%s.w.cfg.CleanEvery != 0 {
		return
	}
	start := time.Now()
	frame.Storage.Maintain(s.w.alive)
	s.w.lastCleanup = time.Since(start)
	s.w.log.Debug("cleanup", "frame", frame.Number, "retired", s.w.pending.Len(), "took", s.w.lastCleanup)
	s.w.pending.Clear()
}
