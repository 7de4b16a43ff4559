package creature

// Stats are the tuning values a creature takes on when its variant changes.
type Stats struct {
	WalkSpeed    float64
	FallSpeed    float64
	RiseStrength float64
	RiseTime     float64
	// SpawnPeriod is the delay between hazards for spawning kinds.
	SpawnPeriod float64
}

// Behavior is the per-kind function table. Entries left nil fall back to
// the defaults in Lookup.
type Behavior struct {
	Variants        []string
	DefaultSprite   func(v Variant) string
	Stats           func(v Variant) Stats
	Corrupted       func(v Variant) bool
	Corrupt         func(v Variant) (Variant, bool)
	ExplosionSprite func(v Variant) string
	Snipable        func(v Variant) bool
	Flammable       func(v Variant) bool
}

// corruptibleAt builds the pair of corruption funcs for kinds whose
// corrupted variant is a single index reached from one clean index.
func corruptibleAt(clean, corrupted Variant) (func(Variant) bool, func(Variant) (Variant, bool)) {
	is := func(v Variant) bool { return v == corrupted }
	to := func(v Variant) (Variant, bool) {
		if v == clean {
			return corrupted, true
		}
		return v, false
	}
	return is, to
}

func spriteTable(def string, byVariant map[Variant]string) func(Variant) string {
	return func(v Variant) string {
		if s, ok := byVariant[v]; ok {
			return s
		}
		return def
	}
}

var behaviors = map[Kind]Behavior{}

func init() {
	simple := func(name string, walk float64) Behavior {
		is, to := corruptibleAt(0, 1)
		return Behavior{
			Variants:      []string{"normal", "corrupted"},
			DefaultSprite: spriteTable("images/creatures/"+name+"/"+name+".sprite", nil),
			Stats:         func(Variant) Stats { return Stats{WalkSpeed: walk} },
			Corrupted:     is,
			Corrupt:       to,
		}
	}

	behaviors[KindWalkingLeaf] = simple("walkingleaf", 60)
	behaviors[KindViciousIvy] = simple("vicious_ivy", 80)
	behaviors[KindMrTree] = simple("mrtree", 50)
	behaviors[KindSnail] = simple("snail", 80)

	jumpyIs, jumpyTo := corruptibleAt(1, 2)
	behaviors[KindJumpy] = Behavior{
		Variants:      []string{"normal", "frozen", "corrupted"},
		DefaultSprite: spriteTable("images/creatures/jumpy/left-right.sprite", nil),
		Corrupted:     jumpyIs,
		Corrupt:       jumpyTo,
	}

	igel := simple("igel", 80)
	igel.DefaultSprite = spriteTable("images/creatures/igel/igel.sprite", map[Variant]string{
		IgelCorrupted: "images/creatures/igel/corrupted/corrupted_igel.sprite",
	})
	igel.Stats = func(v Variant) Stats {
		switch v {
		case IgelCorrupted:
			return Stats{WalkSpeed: 80, SpawnPeriod: 0.2}
		default:
			return Stats{WalkSpeed: 80, SpawnPeriod: 0.75}
		}
	}
	behaviors[KindBushIgel] = igel

	behaviors[KindExperiencedLeaf] = Behavior{
		Variants: []string{"normal", "corrupted", "spiny"},
		DefaultSprite: spriteTable("images/creatures/walkingleaf/walkingleaf.sprite", map[Variant]string{
			LeafCorrupted: "images/creatures/walkingleaf/corrupted/rotten_leaf.sprite",
			LeafSpiny:     "images/creatures/vicious_ivy/corrupted/rotten_ivy.sprite",
		}),
		Stats: leafStats,
		Corrupted: func(v Variant) bool {
			return v == LeafCorrupted
		},
		// A normal leaf is not retyped in place; it is replaced by a new
		// corrupted leaf (see ResolveContact).
		Corrupt: func(v Variant) (Variant, bool) {
			if v == LeafNormal {
				return LeafCorrupted, true
			}
			return v, false
		},
		ExplosionSprite: spriteTable("images/particles/walkingleaf.sprite", map[Variant]string{
			LeafCorrupted: "images/particles/rottenleaf.sprite",
			LeafSpiny:     "images/particles/rottenleaf.sprite",
		}),
		Snipable:  func(v Variant) bool { return v != LeafSpiny },
		Flammable: func(v Variant) bool { return v != LeafSpiny },
	}

	behaviors[KindRootTrap] = Behavior{
		Variants:      []string{"normal"},
		DefaultSprite: spriteTable("images/creatures/mole/corrupted/root.sprite", nil),
	}
	behaviors[KindRoot] = Behavior{
		Variants:      []string{"normal"},
		DefaultSprite: spriteTable("images/creatures/mole/corrupted/root.sprite", nil),
	}
}

func leafStats(v Variant) Stats {
	switch v {
	case LeafCorrupted:
		return Stats{WalkSpeed: 85, FallSpeed: 80, RiseStrength: -40, RiseTime: 3.5}
	case LeafSpiny:
		return Stats{WalkSpeed: 65, FallSpeed: 90, RiseStrength: -40, RiseTime: 4}
	default:
		return Stats{WalkSpeed: 100, FallSpeed: 35, RiseStrength: -50, RiseTime: 3}
	}
}

// Lookup returns the behavior table for k with every nil entry filled in.
func Lookup(k Kind) Behavior {
	b := behaviors[k]
	if len(b.Variants) == 0 {
		b.Variants = []string{"normal"}
	}
	if b.DefaultSprite == nil {
		b.DefaultSprite = func(Variant) string { return "" }
	}
	if b.Stats == nil {
		b.Stats = func(Variant) Stats { return Stats{} }
	}
	if b.Corrupted == nil {
		b.Corrupted = func(Variant) bool { return false }
	}
	if b.Corrupt == nil {
		b.Corrupt = func(v Variant) (Variant, bool) { return v, false }
	}
	if b.ExplosionSprite == nil {
		b.ExplosionSprite = func(Variant) string { return "" }
	}
	if b.Snipable == nil {
		b.Snipable = func(Variant) bool { return true }
	}
	if b.Flammable == nil {
		b.Flammable = func(Variant) bool { return true }
	}
	return b
}

// IsCorrupted is the capability query replacing per-type checks: does this
// creature currently wear a corrupted variant.
func IsCorrupted(k Kind, v Variant) bool {
	return Lookup(k).Corrupted(v)
}

// CorruptTarget reports the variant a spiny leaf turns k into, if any.
func CorruptTarget(k Kind, v Variant) (Variant, bool) {
	return Lookup(k).Corrupt(v)
}
