package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/levels"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/prefabs"
)

func TestBuildEveryPrefab(t *testing.T) {
	for _, name := range prefabs.Names() {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, name)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if !ecs.Has(w, e, component.TransformComponent.Kind()) {
				t.Fatalf("expected a transform")
			}
		})
	}
}

func TestBuildEntityErrors(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "missing.yaml"); err == nil {
		t.Fatalf("expected error for a missing prefab")
	}
	_, err := BuildEntityWith(w, "root_trap.yaml", map[string]map[string]any{
		"root_trap": {"direction": "sideways"},
	})
	if err == nil {
		t.Fatalf("expected error for a bad direction")
	}
	_, err = BuildEntityWith(w, "snail.yaml", map[string]map[string]any{
		"creature": {"direction": "up"},
	})
	if err == nil {
		t.Fatalf("expected error for a vertical walking direction")
	}
	if got := len(ecs.Entities(w)); got != 0 {
		t.Fatalf("failed builds must not leave entities, got %d", got)
	}
}

func TestRootTrapOverrides(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewRootTrapAt(w, 64, 32, propOverrides(creature.KindRootTrap, map[string]any{
		"direction":   "left",
		"on_step":     true,
		"spawn_delay": 1.5,
	}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	trap, ok := ecs.Get(w, e, component.RootTrapComponent.Kind())
	if !ok {
		t.Fatalf("expected root trap component")
	}
	if trap.Facing != placement.Left || !trap.Latch.OnStep || trap.Latch.SpawnDelay != 1.5 {
		t.Fatalf("overrides not applied: %+v", trap)
	}
	if trap.Latch.InitialDelay != 0 {
		t.Fatalf("expected prefab initial delay 0, got %v", trap.Latch.InitialDelay)
	}
	box, ok := Bounds(w, e)
	if !ok || box.X != 64 || box.Y != 32 || box.Width != 32 || box.Height != 32 {
		t.Fatalf("expected 32x32 box at (64,32), got %+v", box)
	}
}

func TestRootTrapFlip(t *testing.T) {
	tests := []struct {
		direction string
		want      placement.Facing
	}{
		{"up", placement.Down},
		{"down", placement.Up},
		{"left", placement.Left},
		{"right", placement.Right},
	}
	for _, tc := range tests {
		t.Run(tc.direction, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := NewRootTrapAt(w, 0, 0, propOverrides(creature.KindRootTrap, map[string]any{
				"direction": tc.direction,
				"flip":      true,
			}))
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			trap, _ := ecs.Get(w, e, component.RootTrapComponent.Kind())
			if trap.Facing != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, trap.Facing)
			}
		})
	}
}

func TestCreaturePropsRouting(t *testing.T) {
	got := propOverrides(creature.KindExperiencedLeaf, map[string]any{
		"variant":       "spiny",
		"invincibility": 2.0,
	})
	if got["creature"]["variant"] != "spiny" {
		t.Fatalf("variant should go to the creature component, got %v", got)
	}
	if got["leaf"]["invincibility"] != 2.0 {
		t.Fatalf("invincibility should go to the leaf component, got %v", got)
	}
	if propOverrides(creature.KindSnail, nil) != nil {
		t.Fatalf("no props should mean no overrides")
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("pit.json")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("load to world: %v", err)
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"tile layers", len(w.Query(component.TileLayerComponent.Kind())), 1},
		{"bounds", len(w.Query(component.LevelBoundsComponent.Kind())), 1},
		{"spawn queue", len(w.Query(component.SpawnQueueComponent.Kind())), 1},
		{"traps", len(w.Query(component.RootTrapComponent.Kind())), 1},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Fatalf("%s: expected %d, got %d", c.name, c.want, c.got)
		}
	}

	be, _ := ecs.First(w, component.LevelBoundsComponent.Kind())
	b, _ := ecs.Get(w, be, component.LevelBoundsComponent.Kind())
	if b.Width != 192 || b.Height != 192 {
		t.Fatalf("expected 192x192 bounds, got %+v", b)
	}

	if _, err := EnsureSpawnQueue(w); err != nil {
		t.Fatal(err)
	}
	if n := len(w.Query(component.SpawnQueueComponent.Kind())); n != 1 {
		t.Fatalf("EnsureSpawnQueue must not add a second queue, got %d", n)
	}
}

func TestSpawnLeaf(t *testing.T) {
	w := ecs.NewWorld()
	e, err := Spawn(w, placement.SpawnRequest{
		Kind:          creature.KindExperiencedLeaf,
		Variant:       creature.LeafCorrupted,
		Pos:           cp.Vector{X: 100, Y: 50},
		Facing:        placement.Right,
		Invincibility: 1,
	})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	c, _ := ecs.Get(w, e, component.CreatureComponent.Kind())
	if c.Variant != creature.LeafCorrupted || c.Facing != placement.Right {
		t.Fatalf("unexpected creature %+v", c)
	}
	if c.Stats.FallSpeed != 80 {
		t.Fatalf("corrupted stats not applied, got %+v", c.Stats)
	}
	leaf, _ := ecs.Get(w, e, component.LeafComponent.Kind())
	if leaf.Flight.Invincibility != 1 {
		t.Fatalf("expected 1s invincibility, got %v", leaf.Flight.Invincibility)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 100 || tr.Y != 50 {
		t.Fatalf("expected transform at (100,50), got %+v", tr)
	}
}

func TestSpawnRoot(t *testing.T) {
	w := ecs.NewWorld()
	req := placement.SpawnRequest{Kind: creature.KindRoot, Pos: cp.Vector{X: 48, Y: 96}, Facing: placement.Up}
	e, err := Spawn(w, req)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	root, ok := ecs.Get(w, e, component.RootComponent.Kind())
	if !ok {
		t.Fatalf("expected root component")
	}
	want := placement.CandidateRect(req.Pos, req.Facing)
	if root.Footprint != want {
		t.Fatalf("expected footprint %+v, got %+v", want, root.Footprint)
	}
	if root.GrowTime <= 0 || root.HoldTime <= 0 || root.RetractTime <= 0 {
		t.Fatalf("expected timings from the prefab, got %+v", root)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 48 || tr.Y != 144 {
		t.Fatalf("expected root centered at (48,144), got %+v", tr)
	}
}
