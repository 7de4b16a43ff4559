package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
	"github.com/milk9111/bramble/placement"
)

func newIgel(t *testing.T, w *ecs.World, variant string) ecs.Entity {
	t.Helper()
	// 32x30 collider standing on y=96.
	e, err := entity.NewCreatureAt(w, creature.KindBushIgel, 64, 66, map[string]map[string]any{
		"creature": {"variant": variant},
	})
	if err != nil {
		t.Fatalf("build igel: %v", err)
	}
	return e
}

func groundIgel(t *testing.T, w *ecs.World, e ecs.Entity) {
	t.Helper()
	contact, ok := ecs.Get(w, e, component.ContactComponent.Kind())
	if !ok {
		t.Fatalf("igel has no contact component")
	}
	contact.Grounded = true
}

func TestBushIgelSpawnsOnlyWhileRolling(t *testing.T) {
	w := newGroundWorld(t, 6, 8, 3)
	e := newIgel(t, w, "corrupted")
	igel, _ := ecs.Get(w, e, component.BushIgelComponent.Kind())
	sys := NewBushIgelSystem()
	q := spawnQueue(w)

	w.SetDeltaTime(0.1)
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if len(q.Requests) != 0 {
		t.Fatalf("igel spawned while walking, got %d", len(q.Requests))
	}
	if igel.Spawner.Timer != creature.IgelIdleDelay {
		t.Fatalf("expected the idle delay while walking, got %v", igel.Spawner.Timer)
	}

	igel.Rolling = true
	igel.Spawner.Timer = 0
	groundIgel(t, w, e)
	sys.Update(w)
	if len(q.Requests) != 1 {
		t.Fatalf("expected a root once rolling, got %d", len(q.Requests))
	}
	req := q.Requests[0]
	if req.Kind != creature.KindRoot || req.Facing != placement.Up || req.Pos != (cp.Vector{X: 80, Y: 128}) {
		t.Fatalf("unexpected request %+v", req)
	}
	if igel.Spawner.Timer != 0.2 {
		t.Fatalf("expected the corrupted spawn period, got %v", igel.Spawner.Timer)
	}

	_ = ecs.Add(w, e, component.FrozenComponent.Kind(), &component.Frozen{Remaining: 1})
	igel.Spawner.Timer = 0
	sys.Update(w)
	if len(q.Requests) != 1 {
		t.Fatalf("frozen igel must not spawn")
	}
}

func TestBushIgelNeedsSolidGround(t *testing.T) {
	// Only three floor rows: the footprint under the igel pokes out of the grid.
	w := newGroundWorld(t, 6, 6, 3)
	e := newIgel(t, w, "corrupted")
	igel, _ := ecs.Get(w, e, component.BushIgelComponent.Kind())
	igel.Rolling = true
	igel.Spawner.Timer = 0
	groundIgel(t, w, e)

	w.SetDeltaTime(0.1)
	NewBushIgelSystem().Update(w)
	if n := len(spawnQueue(w).Requests); n != 0 {
		t.Fatalf("expected no root, got %d", n)
	}
	dbg, ok := ecs.Get(w, e, component.PlacementDebugComponent.Kind())
	if !ok || !dbg.Plan.Supported || dbg.Plan.Solid {
		t.Fatalf("expected a supported but hollow plan, got %+v", dbg)
	}
}

func TestAirborneBushIgelSummonsNoRoot(t *testing.T) {
	w := newGroundWorld(t, 6, 8, 3)
	e := newIgel(t, w, "corrupted")
	igel, _ := ecs.Get(w, e, component.BushIgelComponent.Kind())
	igel.Rolling = true
	igel.Spawner.Timer = 0

	w.SetDeltaTime(0.1)
	NewBushIgelSystem().Update(w)
	if n := len(spawnQueue(w).Requests); n != 0 {
		t.Fatalf("airborne igel summoned %d roots", n)
	}
	if ecs.Has(w, e, component.PlacementDebugComponent.Kind()) {
		t.Fatalf("airborne igel must not evaluate a placement")
	}
	if igel.Spawner.Timer != 0.2 {
		t.Fatalf("expected the spawn timer to restart, got %v", igel.Spawner.Timer)
	}
}

func TestBushIgelDropsIvyBehind(t *testing.T) {
	w := newGroundWorld(t, 6, 8, 3)
	e := newIgel(t, w, "normal")
	igel, _ := ecs.Get(w, e, component.BushIgelComponent.Kind())
	igel.Rolling = true
	igel.Spawner.Timer = 0

	w.SetDeltaTime(0.1)
	NewBushIgelSystem().Update(w)
	q := spawnQueue(w)
	if len(q.Requests) != 1 {
		t.Fatalf("expected one ivy, got %d", len(q.Requests))
	}
	req := q.Requests[0]
	// The prefab walks left, so the ivy lands to the right and faces away.
	if req.Kind != creature.KindViciousIvy || req.Facing != placement.Right {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Pos != (cp.Vector{X: 112, Y: 41}) {
		t.Fatalf("expected ivy at (112,41), got %+v", req.Pos)
	}
	if igel.Spawner.Timer != 0.75 {
		t.Fatalf("expected the normal spawn period, got %v", igel.Spawner.Timer)
	}
}
