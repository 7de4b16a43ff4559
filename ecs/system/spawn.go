package system

import (
	"log"

	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
)

// SpawnDispatchSystem drains the spawn queue once per tick and turns each
// request into an entity. Requests queued while draining wait for the next
// tick.
type SpawnDispatchSystem struct {
	// Spawn defaults to entity.Spawn.
	Spawn func(w *ecs.World, req placement.SpawnRequest) (ecs.Entity, error)
}

func NewSpawnDispatchSystem() *SpawnDispatchSystem {
	return &SpawnDispatchSystem{Spawn: entity.Spawn}
}

func (s *SpawnDispatchSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	q := spawnQueue(w)
	if len(q.Requests) == 0 {
		return
	}
	pending := q.Requests
	q.Requests = nil

	spawn := s.Spawn
	if spawn == nil {
		spawn = entity.Spawn
	}
	for _, req := range pending {
		e, err := spawn(w, req)
		if err != nil {
			log.Printf("spawn: %s at (%.1f,%.1f) facing %s: %v", req.Kind, req.Pos.X, req.Pos.Y, req.Facing, err)
			w.Events().Push(ecs.Event{Type: ecs.EventSpawnFailed, Data: req})
			continue
		}
		w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Data: req})
	}
}
