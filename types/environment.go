package types

// State of the environment that policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions legal from the state
	Actions() []Action
}

// An Action that a policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// Transition is the observed outcome of applying an action.
type Transition struct {
	Next     State
	Reward   float64
	Terminal bool
	// Success is set on terminal transitions where the mission
	// succeeded: the exit was reached with nothing left to rescue.
	Success bool
}

type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step applies the action and reports the transition
	Step(Action) Transition
}
