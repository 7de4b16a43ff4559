package creature

import "math"

// UnfreezeCooldown is how long a thawed leaf waits before it may fly again.
const UnfreezeCooldown = 0.5

// DegradeInvincibility is granted to the corrupted leaf a spiny leaf degrades into.
const DegradeInvincibility = 1.0

// Flight is the experienced leaf's airborne state machine.
type Flight struct {
	Flying        bool
	HasFlown      bool
	Timer         float64
	Invincibility float64
	Cooldown      float64
}

// FlightInput is what the leaf knows about itself this tick.
type FlightInput struct {
	OnGround bool
	Frozen   bool
	Stats    Stats
}

// Step advances the machine by dt. When the leaf is flying the returned
// velocity must replace the body's vertical velocity.
func (f *Flight) Step(dt float64, in FlightInput) (vy float64, override bool) {
	if f.Invincibility > 0 {
		f.Invincibility = math.Max(0, f.Invincibility-dt)
		return 0, false
	}

	if f.Cooldown > 0 {
		f.Cooldown = math.Max(0, f.Cooldown-dt)
	}

	if !in.OnGround && !f.Flying && !f.HasFlown && !in.Frozen && f.Cooldown <= 0 {
		f.Flying = true
		f.HasFlown = true
		f.Timer = in.Stats.RiseTime
	}

	// Ice holds the flight where it is until the leaf thaws.
	if f.Flying && !in.Frozen {
		f.Timer -= dt
		if f.Timer <= 0 {
			f.Flying = false
			f.Timer = 0
		} else {
			vy, override = in.Stats.RiseStrength, true
		}
	}

	if in.OnGround {
		f.Flying = false
		f.HasFlown = false
	}

	return vy, override
}

// Unfreeze stops flight and blocks a new one for UnfreezeCooldown.
func (f *Flight) Unfreeze() {
	f.Flying = false
	f.HasFlown = true
	f.Timer = 0
	f.Cooldown = UnfreezeCooldown
}

// Invincible reports whether the leaf currently ignores collisions and tile hurts.
func (f *Flight) Invincible() bool {
	return f.Invincibility > 0
}

// Visible is the blink phase while invincible.
func (f *Flight) Visible() bool {
	if !f.Invincible() {
		return true
	}
	return int(math.Floor(f.Invincibility*10))%2 == 0
}

// SquishOutcome is what happens when a player lands on a leaf.
type SquishOutcome int

const (
	SquishDie SquishOutcome = iota
	SquishBounce
	SquishDegrade
	SquishHurtPlayer
	SquishFrozen
)

// ResolveSquish decides a player stomp on a leaf of variant v.
func ResolveSquish(v Variant, f Flight, frozen, playerInvincible, buttJump bool) SquishOutcome {
	switch {
	case f.Invincible():
		return SquishBounce
	case frozen:
		return SquishFrozen
	case v == LeafSpiny && (playerInvincible || buttJump):
		return SquishDegrade
	case v == LeafSpiny:
		return SquishHurtPlayer
	default:
		return SquishDie
	}
}

// KillFallOutcome is what happens when a leaf is knocked out of play.
type KillFallOutcome int

const (
	KillFallDie KillFallOutcome = iota
	KillFallIgnore
	KillFallDegrade
)

// ResolveKillFall decides a kill-fall on a leaf of variant v.
func ResolveKillFall(v Variant, f Flight) KillFallOutcome {
	switch {
	case f.Invincible():
		return KillFallIgnore
	case v == LeafSpiny:
		return KillFallDegrade
	default:
		return KillFallDie
	}
}

// ContactOutcome is the result of a leaf touching another creature.
type ContactOutcome int

const (
	ContactNone ContactOutcome = iota
	// ContactBothDie: a normal leaf met a corrupted creature.
	ContactBothDie
	// ContactCorrupt: the other creature switches to the returned variant.
	ContactCorrupt
	// ContactReplace: the other creature is a normal leaf and is replaced by
	// a new corrupted one.
	ContactReplace
)

// ResolveContact decides what a leaf of variant v does to a creature of
// kind other with variant ov.
func ResolveContact(v Variant, f Flight, other Kind, ov Variant) (ContactOutcome, Variant) {
	if f.Invincible() {
		return ContactNone, ov
	}
	switch v {
	case LeafNormal:
		if IsCorrupted(other, ov) {
			return ContactBothDie, ov
		}
	case LeafSpiny:
		next, ok := CorruptTarget(other, ov)
		if !ok {
			return ContactNone, ov
		}
		if other == KindExperiencedLeaf {
			return ContactReplace, next
		}
		return ContactCorrupt, next
	}
	return ContactNone, ov
}
