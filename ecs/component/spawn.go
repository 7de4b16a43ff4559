package component

import "github.com/milk9111/bramble/placement"

// SpawnQueue is the single world-wide list of pending spawns. Producers
// append; the dispatch system drains it once per tick.
type SpawnQueue struct {
	Requests []placement.SpawnRequest
}

func (q *SpawnQueue) Push(r placement.SpawnRequest) {
	q.Requests = append(q.Requests, r)
}

var SpawnQueueComponent = NewComponent[SpawnQueue]()

// PlacementDebug keeps the last placement plan an emitter evaluated so the
// debug overlay can draw it.
type PlacementDebug struct {
	Plan placement.Plan
	Age  float64
}

var PlacementDebugComponent = NewComponent[PlacementDebug]()
