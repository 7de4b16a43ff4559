package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/bramble/creature"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/placement"
	"github.com/milk9111/bramble/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"player":          addPlayer,
	"input":           addInput,
	"transform":       addTransform,
	"creature":        addCreature,
	"leaf":            addLeaf,
	"bush_igel":       addBushIgel,
	"root_trap":       addRootTrap,
	"root":            addRoot,
	"hazard":          addHazard,
	"physics_body":    addPhysicsBody,
	"collision_layer": addCollisionLayer,
	"contact":         addContact,
	"ai_config":       addAIConfig,
	"ai_state":        addAIState,
	"ttl":             addTTL,
	"appearance":      addAppearance,
}

var componentBuildOrder = []string{
	"player_tag",
	"player",
	"input",
	"transform",
	"creature",
	"leaf",
	"bush_igel",
	"root_trap",
	"root",
	"hazard",
	"physics_body",
	"collision_layer",
	"contact",
	"ai_config",
	"ai_state",
	"ttl",
	"appearance",
}

// BuildEntity creates an entity from a prefab spec.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, nil)
}

// BuildEntityWith creates an entity from a prefab spec after replacing
// individual component fields, keyed by component then field name.
func BuildEntityWith(w *ecs.World, prefabPath string, overrides map[string]map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if len(overrides) > 0 {
		spec = spec.WithOverrides(overrides)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

// SetEntityTransform moves e, creating its transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("player spec: %w", err)
	}
	health := spec.Health
	if health <= 0 {
		health = 1
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
		Health:    health,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func parseFacing(s string, fallback placement.Facing) (placement.Facing, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return placement.ParseFacing(s)
}

func addCreature(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CreatureComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("creature spec: %w", err)
	}
	kind, err := creature.ParseKind(spec.Kind)
	if err != nil {
		return err
	}
	variant, err := creature.ParseVariant(kind, spec.Variant)
	if err != nil {
		return err
	}
	facing, err := parseFacing(spec.Direction, placement.Left)
	if err != nil {
		return err
	}
	if facing.Vertical() {
		return fmt.Errorf("creature %s cannot walk %s", kind, facing)
	}

	c := &component.Creature{
		Kind:         kind,
		Facing:       facing,
		TurnAtLedges: spec.TurnAtLedges,
		SpeedScale:   1,
	}
	c.SetVariant(variant)
	if spec.Sprite != "" {
		c.Sprite = spec.Sprite
	}
	return ecs.Add(w, e, component.CreatureComponent.Kind(), c)
}

func addLeaf(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LeafComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("leaf spec: %w", err)
	}
	leaf := &component.Leaf{}
	leaf.Flight.Invincibility = spec.Invincibility
	return ecs.Add(w, e, component.LeafComponent.Kind(), leaf)
}

func addBushIgel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BushIgelComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("bush igel spec: %w", err)
	}
	igel := &component.BushIgel{
		IvyOffsetX: spec.IvyOffsetX,
		IvyOffsetY: spec.IvyOffsetY,
	}
	igel.Spawner.Timer = creature.IgelInitialDelay
	if spec.InitialDelay != nil {
		igel.Spawner.Timer = *spec.InitialDelay
	}
	return ecs.Add(w, e, component.BushIgelComponent.Kind(), igel)
}

func addRootTrap(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RootTrapComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("root trap spec: %w", err)
	}
	facing, err := parseFacing(spec.Direction, placement.Up)
	if err != nil {
		return err
	}
	if spec.Flip {
		facing = facing.FlipVertical()
	}
	trap := &component.RootTrap{
		Facing: facing,
		Sticky: spec.Sticky,
		Width:  spec.Width,
		Height: spec.Height,
	}
	if trap.Width <= 0 {
		trap.Width = 32
	}
	if trap.Height <= 0 {
		trap.Height = 32
	}
	trap.Latch = creature.TrapLatch{
		InitialDelay: spec.InitialDelay,
		SpawnDelay:   creature.DefaultSpawnDelay,
		OnStep:       spec.OnStep,
	}
	if spec.SpawnDelay != nil {
		trap.Latch.SpawnDelay = *spec.SpawnDelay
	}
	return ecs.Add(w, e, component.RootTrapComponent.Kind(), trap)
}

func addRoot(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RootComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("root spec: %w", err)
	}
	return ecs.Add(w, e, component.RootComponent.Kind(), &component.Root{
		Facing:      placement.Up,
		GrowTime:    spec.GrowTime,
		HoldTime:    spec.HoldTime,
		RetractTime: spec.RetractTime,
	})
}

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HazardComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("hazard spec: %w", err)
	}
	damage := spec.Damage
	if damage <= 0 {
		damage = 1
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Damage:  damage,
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("physics body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Static:   spec.Static,
		Sensor:   spec.Sensor,
		MaxFall:  spec.MaxFall,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("collision layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: spec.Category,
		Mask:     spec.Mask,
	})
}

func addContact(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ContactComponent.Kind(), &component.Contact{})
}

func addAIConfig(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AIConfigComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("ai config spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("ai config needs a script")
	}
	if _, err := prefabs.LoadScript(spec.Script); err != nil {
		return fmt.Errorf("ai config: %w", err)
	}
	return ecs.Add(w, e, component.AIConfigComponent.Kind(), &component.AIConfig{Script: spec.Script})
}

func addAIState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if err := ecs.Add(w, e, component.AIStateComponent.Kind(), &component.AIState{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.AIContextComponent.Kind(), &component.AIContext{})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Seconds})
}

func addAppearance(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AppearanceComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("appearance spec: %w", err)
	}
	a := &component.Appearance{Hidden: spec.Hidden}
	if spec.Color != nil {
		a.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.AppearanceComponent.Kind(), a)
}
