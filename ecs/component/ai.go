package component

// StateID identifies an AI script state.
type StateID string

// AIState stores the current script state.
type AIState struct {
	Current StateID
	Next    StateID
	// Entered is false until the state's onEnter handler has run.
	Entered bool
}

// AIContext stores per-entity AI runtime data.
type AIContext struct {
	Timer float64
}

// AIConfig names the tengo script driving this entity.
type AIConfig struct {
	Script string
}

var AIStateComponent = NewComponent[AIState]()
var AIContextComponent = NewComponent[AIContext]()
var AIConfigComponent = NewComponent[AIConfig]()
