package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// WithOverrides returns a copy of spec whose component maps have the given
// keys replaced. A component missing from spec is added.
func (spec EntityBuildSpec) WithOverrides(overrides map[string]map[string]any) EntityBuildSpec {
	out := EntityBuildSpec{Name: spec.Name, Components: make(map[string]any, len(spec.Components))}
	for name, raw := range spec.Components {
		out.Components[name] = raw
	}
	for name, values := range overrides {
		merged := map[string]any{}
		if base, ok := out.Components[name].(map[string]any); ok {
			for k, v := range base {
				merged[k] = v
			}
		}
		for k, v := range values {
			merged[k] = v
		}
		out.Components[name] = merged
	}
	return out
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
	Sensor   bool    `yaml:"sensor"`
	MaxFall  float64 `yaml:"max_fall"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type AppearanceComponentSpec struct {
	Color  *YAMLColor `yaml:"color"`
	Hidden bool       `yaml:"hidden"`
}

type CreatureComponentSpec struct {
	Kind         string `yaml:"kind"`
	Variant      string `yaml:"variant"`
	Sprite       string `yaml:"sprite"`
	Direction    string `yaml:"direction"`
	TurnAtLedges bool   `yaml:"turn_at_ledges"`
}

type LeafComponentSpec struct {
	Invincibility float64 `yaml:"invincibility"`
}

type BushIgelComponentSpec struct {
	InitialDelay *float64 `yaml:"initial_delay"`
	IvyOffsetX   float64  `yaml:"ivy_offset_x"`
	IvyOffsetY   float64  `yaml:"ivy_offset_y"`
}

type RootTrapComponentSpec struct {
	Width        float64  `yaml:"width"`
	Height       float64  `yaml:"height"`
	InitialDelay float64  `yaml:"initial_delay"`
	SpawnDelay   *float64 `yaml:"spawn_delay"`
	OnStep       bool     `yaml:"on_step"`
	Direction    string   `yaml:"direction"`
	Sticky       bool     `yaml:"sticky"`
	// Flip mirrors the trap top to bottom after Direction is read.
	Flip bool `yaml:"flip"`
}

type RootComponentSpec struct {
	GrowTime    float64 `yaml:"grow_time"`
	HoldTime    float64 `yaml:"hold_time"`
	RetractTime float64 `yaml:"retract_time"`
}

type HazardComponentSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Damage  int     `yaml:"damage"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Health    int     `yaml:"health"`
}

type AIConfigComponentSpec struct {
	Script string `yaml:"script"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}
