package system

import (
	"testing"

	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/ecs/entity"
)

func creatureAt(t *testing.T, w *ecs.World, kind creature.Kind, variant string, cx, cy float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewCreatureAt(w, kind, 0, 0, map[string]map[string]any{
		"creature": {"variant": variant},
	})
	if err != nil {
		t.Fatalf("build %s: %v", kind, err)
	}
	if err := entity.SetEntityTransform(w, e, cx, cy, 0); err != nil {
		t.Fatal(err)
	}
	return e
}

func variantOf(w *ecs.World, e ecs.Entity) creature.Variant {
	c, _ := ecs.Get(w, e, component.CreatureComponent.Kind())
	return c.Variant
}

func TestSpinyLeafCorruptsWalker(t *testing.T) {
	w := ecs.NewWorld()
	creatureAt(t, w, creature.KindExperiencedLeaf, "spiny", 100, 100)
	snail := creatureAt(t, w, creature.KindSnail, "normal", 110, 100)

	NewContactSystem().Update(w)

	if got := variantOf(w, snail); got != 1 {
		t.Fatalf("expected the snail corrupted, got variant %d", got)
	}
	if len(eventsOf(w, ecs.EventCorrupted)) != 1 {
		t.Fatalf("expected one corrupted event")
	}
	c, _ := ecs.Get(w, snail, component.CreatureComponent.Kind())
	if c.Sprite != creature.Lookup(creature.KindSnail).DefaultSprite(1) {
		t.Fatalf("sprite not reloaded: %q", c.Sprite)
	}

	// Already corrupted: a second touch changes nothing.
	NewContactSystem().Update(w)
	if len(eventsOf(w, ecs.EventCorrupted)) != 1 {
		t.Fatalf("corrupted twice")
	}
}

func TestNormalLeafAndCorruptedWalkerBothDie(t *testing.T) {
	w := ecs.NewWorld()
	leaf := creatureAt(t, w, creature.KindExperiencedLeaf, "normal", 100, 100)
	snail := creatureAt(t, w, creature.KindSnail, "corrupted", 110, 100)

	NewContactSystem().Update(w)

	if !isDead(w, leaf) || !isDead(w, snail) {
		t.Fatalf("expected both dead")
	}
	NewCleanupSystem().Update(w)
	if ecs.IsAlive(w, leaf) || ecs.IsAlive(w, snail) {
		t.Fatalf("cleanup should destroy dead creatures")
	}
}

func TestSpinyLeafReplacesNormalLeaf(t *testing.T) {
	w := ecs.NewWorld()
	creatureAt(t, w, creature.KindExperiencedLeaf, "spiny", 100, 100)
	victim := creatureAt(t, w, creature.KindExperiencedLeaf, "normal", 110, 100)

	NewContactSystem().Update(w)

	if !isDead(w, victim) {
		t.Fatalf("expected the normal leaf replaced")
	}
	q := spawnQueue(w)
	if len(q.Requests) != 1 {
		t.Fatalf("expected one replacement, got %d", len(q.Requests))
	}
	req := q.Requests[0]
	if req.Kind != creature.KindExperiencedLeaf || req.Variant != creature.LeafCorrupted {
		t.Fatalf("unexpected replacement %+v", req)
	}
	if req.Pos.X != 110 || req.Pos.Y != 100 {
		t.Fatalf("expected the replacement in place, got %+v", req.Pos)
	}
}

func TestInvincibleLeafIgnoresContact(t *testing.T) {
	w := ecs.NewWorld()
	leaf := creatureAt(t, w, creature.KindExperiencedLeaf, "spiny", 100, 100)
	l, _ := ecs.Get(w, leaf, component.LeafComponent.Kind())
	l.Flight.Invincibility = 1
	snail := creatureAt(t, w, creature.KindSnail, "normal", 110, 100)

	NewContactSystem().Update(w)
	if got := variantOf(w, snail); got != 0 {
		t.Fatalf("invincible leaf corrupted the snail")
	}
}

func newStompingPlayer(t *testing.T, w *ecs.World, cx, cy float64) (ecs.Entity, *component.Player) {
	t.Helper()
	pe, err := entity.NewPlayerAt(w, 0, 0)
	if err != nil {
		t.Fatalf("build player: %v", err)
	}
	if err := entity.SetEntityTransform(w, pe, cx, cy, 0); err != nil {
		t.Fatal(err)
	}
	v, _ := ecs.Get(w, pe, component.VelocityComponent.Kind())
	v.Y = 200
	p, _ := ecs.Get(w, pe, component.PlayerComponent.Kind())
	return pe, p
}

func TestPlayerStomps(t *testing.T) {
	tests := []struct {
		name      string
		variant   string
		buttJump  bool
		wantDead  bool
		wantHurt  bool
		wantSpawn int
	}{
		{"normal leaf dies", "normal", false, true, false, 0},
		{"spiny leaf hurts", "spiny", false, false, true, 0},
		{"butt jump degrades spiny", "spiny", true, true, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			// Leaf box spans y 88..112; player box ends at y 90.
			leaf := creatureAt(t, w, creature.KindExperiencedLeaf, tt.variant, 100, 100)
			pe, p := newStompingPlayer(t, w, 100, 75)
			p.ButtJump = tt.buttJump

			NewContactSystem().Update(w)

			if isDead(w, leaf) != tt.wantDead {
				t.Fatalf("dead: expected %v", tt.wantDead)
			}
			if hurt := p.Health < 3; hurt != tt.wantHurt {
				t.Fatalf("hurt: expected %v, health %d", tt.wantHurt, p.Health)
			}
			if got := len(spawnQueue(w).Requests); got != tt.wantSpawn {
				t.Fatalf("expected %d spawns, got %d", tt.wantSpawn, got)
			}
			v, _ := ecs.Get(w, pe, component.VelocityComponent.Kind())
			if !tt.wantHurt && v.Y >= 0 {
				t.Fatalf("expected a bounce, got vy %v", v.Y)
			}
		})
	}
}

func TestDegradedLeafIsInvincible(t *testing.T) {
	w := ecs.NewWorld()
	creatureAt(t, w, creature.KindExperiencedLeaf, "spiny", 100, 100)
	_, p := newStompingPlayer(t, w, 100, 75)
	p.ButtJump = true

	NewContactSystem().Update(w)
	req := spawnQueue(w).Requests[0]
	if req.Variant != creature.LeafCorrupted || req.Invincibility != creature.DegradeInvincibility {
		t.Fatalf("unexpected degrade request %+v", req)
	}
}

func TestSideTouchHurtsPlayerOnce(t *testing.T) {
	w := ecs.NewWorld()
	creatureAt(t, w, creature.KindSnail, "normal", 100, 100)
	pe, p := newStompingPlayer(t, w, 110, 100)
	v, _ := ecs.Get(w, pe, component.VelocityComponent.Kind())
	v.Y = 0

	sys := NewContactSystem()
	sys.Update(w)
	sys.Update(w)
	if p.Health != 2 {
		t.Fatalf("expected one hit through the cooldown, health %d", p.Health)
	}
	if len(eventsOf(w, ecs.EventPlayerHurt)) != 1 {
		t.Fatalf("expected one hurt event")
	}
}

func TestStarPlayerKnocksCreaturesOut(t *testing.T) {
	w := ecs.NewWorld()
	snail := creatureAt(t, w, creature.KindSnail, "normal", 100, 100)
	spiny := creatureAt(t, w, creature.KindExperiencedLeaf, "spiny", 100, 100)
	pe, p := newStompingPlayer(t, w, 110, 100)
	v, _ := ecs.Get(w, pe, component.VelocityComponent.Kind())
	v.Y = 0
	p.Invincible = 5

	NewContactSystem().Update(w)
	if !isDead(w, snail) || !isDead(w, spiny) {
		t.Fatalf("expected both knocked out")
	}
	if p.Health != 3 {
		t.Fatalf("star player was hurt")
	}
	if n := len(spawnQueue(w).Requests); n != 1 {
		t.Fatalf("expected the spiny leaf to degrade, got %d spawns", n)
	}
}

func TestHazardHurtsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	pe, p := newStompingPlayer(t, w, 100, 100)
	hz := ecs.CreateEntity(w)
	_ = ecs.Add(w, hz, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 120})
	_ = ecs.Add(w, hz, component.HazardComponent.Kind(), &component.Hazard{Width: 32, Height: 32, OffsetX: -16, OffsetY: -16, Damage: 1})

	NewHazardSystem().Update(w)
	if p.Health != 2 {
		t.Fatalf("expected the hazard to hurt, health %d", p.Health)
	}
	evts := eventsOf(w, ecs.EventPlayerHurt)
	if len(evts) != 1 || evts[0].Entity != pe {
		t.Fatalf("unexpected events %+v", evts)
	}
}
