package explorer

// Trace mirrors the serialized replay trace: parallel lists of state and
// action keys plus the reward of every step.
type Trace struct {
	States     []string  `json:"states"`
	Actions    []string  `json:"actions"`
	NextStates []string  `json:"next_states"`
	Rewards    []float64 `json:"rewards"`
}

func NewTrace() *Trace {
	return &Trace{
		States:     make([]string, 0),
		Actions:    make([]string, 0),
		NextStates: make([]string, 0),
		Rewards:    make([]float64, 0),
	}
}

func (t *Trace) Len() int {
	return len(t.States)
}

func (t *Trace) Get(index int) (string, string, string, float64) {
	if index >= len(t.States) {
		return "", "", "", 0
	}
	return t.States[index], t.Actions[index], t.NextStates[index], t.Rewards[index]
}

func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, r := range t.Rewards {
		total += r
	}
	return total
}
