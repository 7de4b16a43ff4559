package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	Health    int
	// Invincible counts down star invincibility in seconds.
	Invincible float64
	ButtJump   bool
	// HurtCooldown blocks further damage after a hit.
	HurtCooldown float64
}

var PlayerComponent = NewComponent[Player]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Input is the player's intent for this tick, filled by the game loop.
type Input struct {
	Left, Right, Jump, Down bool
	// Star toggles star invincibility; Freeze ices nearby creatures.
	Star, Freeze bool
}

var InputComponent = NewComponent[Input]()
