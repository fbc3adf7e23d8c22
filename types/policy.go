package types

// Policy chooses actions and learns from observed transitions.
type Policy interface {
	// NextAction picks among the legal actions of the state.
	// The bool is false when the policy cannot choose.
	NextAction(int, State, []Action) (Action, bool)
	// Update feeds back the transition that resulted from the action
	Update(int, State, Action, Transition)
	// UpdateIteration is called once at the end of each episode
	UpdateIteration(int, *Trace)
	Reset()
}

// ConvergenceTracker is implemented by policies whose value table can be
// compared against a checkpoint of itself.
type ConvergenceTracker interface {
	// Delta reports the largest absolute change of any table entry
	// since the last checkpoint.
	Delta() float64
	// Checkpoint advances the comparison point to the current table.
	Checkpoint()
}

// StepEvent describes one applied transition for observers.
type StepEvent struct {
	Episode    int
	MaxEpisode int
	Step       int
	State      State
	Action     Action
	Transition Transition
	Epsilon    float64
}

// Monitor receives step events from a running loop. OnStep returns false
// when the user requested termination. Implementations own all pacing and
// rendering; the loops never block on anything else.
type Monitor interface {
	OnStep(StepEvent) bool
	// OnEpisodeEnd reports the accumulated reward of the finished episode.
	OnEpisodeEnd(episode int, reward float64, success bool)
}
