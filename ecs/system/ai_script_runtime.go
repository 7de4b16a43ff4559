package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bramble/ecs"
	"github.com/milk9111/bramble/ecs/component"
	"github.com/milk9111/bramble/prefabs"
)

type aiActionContext struct {
	World   *ecs.World
	Entity  ecs.Entity
	Config  *component.AIConfig
	State   *component.AIState
	Context *component.AIContext
	PlayerX float64
	PlayerY float64
}

type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	initial    component.StateID
	pending    component.StateID
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "update" {
	update(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

func (s *AISystem) updateFromScript(ctx *aiActionContext) {
	rt, err := s.getScriptRuntime(ctx.Entity, ctx.Config.Script)
	if err != nil {
		log.Printf("ai: entity=%s load script %q: %v", ctx.Entity, ctx.Config.Script, err)
		return
	}

	if ctx.State.Current == "" {
		ctx.State.Current = rt.initial
		ctx.State.Entered = false
	}

	engine := buildAIScriptEngine(ctx, rt)
	if !ctx.State.Entered {
		if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
			log.Printf("ai: entity=%s script onEnter error: %v", ctx.Entity, err)
			return
		}
		ctx.State.Entered = true
	}

	if err := rt.runPhase("update", ctx.State.Current, engine); err != nil {
		log.Printf("ai: entity=%s script update error: %v", ctx.Entity, err)
		return
	}

	if rt.pending == "" || rt.pending == ctx.State.Current {
		rt.pending = ""
		return
	}

	prev := ctx.State.Current
	if err := rt.runPhase("exit", prev, engine); err != nil {
		log.Printf("ai: entity=%s script onExit error: %v", ctx.Entity, err)
		return
	}

	ctx.State.Current = rt.pending
	ctx.State.Next = ""
	rt.pending = ""

	if err := rt.runPhase("enter", ctx.State.Current, engine); err != nil {
		log.Printf("ai: entity=%s script onEnter error: %v", ctx.Entity, err)
	}
}

func (s *AISystem) getScriptRuntime(ent ecs.Entity, scriptPath string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("no script configured")
	}
	if rt, ok := s.scriptCache[ent]; ok && rt != nil && rt.scriptPath == scriptPath {
		return rt, nil
	}

	scriptBytes, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + aiLifecycleDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &aiScriptRuntime{
		scriptPath: scriptPath,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
		initial:    component.StateID("idle"),
	}

	// Run once with no phase to evaluate the script's globals.
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := rt.runPhase("noop", rt.initial, noop); err != nil {
		return nil, err
	}
	if compiled.IsDefined("initial_state") {
		if v := strings.TrimSpace(compiled.Get("initial_state").String()); v != "" {
			rt.initial = component.StateID(v)
		}
	}

	s.scriptCache[ent] = rt
	return rt, nil
}

func (rt *aiScriptRuntime) runPhase(phase string, current component.StateID, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", string(current)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vectorObject(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func buildAIScriptEngine(ctx *aiActionContext, rt *aiScriptRuntime) *tengo.ImmutableMap {
	w, e := ctx.World, ctx.Entity
	values := map[string]tengo.Object{}

	fn := func(name string, f func(args ...tengo.Object) (tengo.Object, error)) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("transition", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		rt.pending = component.StateID(name)
		ctx.State.Next = rt.pending
		return tengo.TrueValue, nil
	})

	fn("is_grounded", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(isGrounded(w, e)), nil
	})

	fn("is_frozen", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(isFrozen(w, e)), nil
	})

	fn("facing", func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: c.Facing.String()}, nil
	})

	fn("turn", func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		c.Facing = c.Facing.Opposite()
		return tengo.TrueValue, nil
	})

	fn("variant", func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Int{Value: int64(c.Variant)}, nil
	})

	fn("set_speed_scale", func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(w, e, component.CreatureComponent.Kind())
		if !ok || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		scale, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		c.SpeedScale = scale
		return tengo.TrueValue, nil
	})

	fn("set_rolling", func(args ...tengo.Object) (tengo.Object, error) {
		igel, ok := ecs.Get(w, e, component.BushIgelComponent.Kind())
		if !ok || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		igel.Rolling = !args[0].IsFalsy()
		return tengo.TrueValue, nil
	})

	fn("set_timer", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		seconds, ok := tengo.ToFloat64(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		ctx.Context.Timer = seconds
		return tengo.TrueValue, nil
	})

	fn("tick_timer", func(args ...tengo.Object) (tengo.Object, error) {
		ctx.Context.Timer -= w.DeltaTime()
		return boolObject(ctx.Context.Timer <= 0), nil
	})

	fn("get_position", func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return vectorObject(0, 0), nil
		}
		return vectorObject(t.X, t.Y), nil
	})

	fn("get_player_position", func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.PlayerX, ctx.PlayerY), nil
	})

	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("ai: entity=%s: %s", e, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
