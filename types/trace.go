package types

import "encoding/json"

// Trace of an episode as triplets (state, action, transition)
type Trace struct {
	states      []State
	actions     []Action
	transitions []Transition
}

func NewTrace() *Trace {
	return &Trace{
		states:      make([]State, 0),
		actions:     make([]Action, 0),
		transitions: make([]Transition, 0),
	}
}

func (t *Trace) Append(step int, state State, action Action, tr Transition) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.transitions = append(t.transitions, tr)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, Transition, bool) {
	if i >= len(t.states) {
		return nil, nil, Transition{}, false
	}
	return t.states[i], t.actions[i], t.transitions[i], true
}

func (t *Trace) Last() (State, Action, Transition, bool) {
	if len(t.states) < 1 {
		return nil, nil, Transition{}, false
	}
	lastIndex := len(t.states) - 1
	return t.states[lastIndex], t.actions[lastIndex], t.transitions[lastIndex], true
}

// TotalReward sums the rewards of all recorded steps.
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, tr := range t.transitions {
		total += tr.Reward
	}
	return total
}

type traceJSON struct {
	States     []string  `json:"states"`
	Actions    []string  `json:"actions"`
	NextStates []string  `json:"next_states"`
	Rewards    []float64 `json:"rewards"`
}

// MarshalJSON records the trace as parallel arrays of state and action
// keys, the format the explorer reads back.
func (t *Trace) MarshalJSON() ([]byte, error) {
	out := traceJSON{
		States:     make([]string, len(t.states)),
		Actions:    make([]string, len(t.actions)),
		NextStates: make([]string, len(t.transitions)),
		Rewards:    make([]float64, len(t.transitions)),
	}
	for i := range t.states {
		out.States[i] = t.states[i].Hash()
		out.Actions[i] = t.actions[i].Hash()
		out.NextStates[i] = t.transitions[i].Next.Hash()
		out.Rewards[i] = t.transitions[i].Reward
	}
	return json.Marshal(out)
}
