package policies

import (
	"github.com/zeu5/rescue-rl/types"
)

// GreedyPolicy follows a learned table deterministically: the legal action
// with the maximum estimate wins, ties resolving to the fixed action order.
// Purely evaluative, no updates.
type GreedyPolicy struct {
	qTable *QTable
}

var _ types.Policy = &GreedyPolicy{}

func NewGreedyPolicy(table *QTable) *GreedyPolicy {
	return &GreedyPolicy{qTable: table}
}

func (g *GreedyPolicy) Table() *QTable {
	return g.qTable
}

func (g *GreedyPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := g.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

func (g *GreedyPolicy) Update(step int, state types.State, action types.Action, tr types.Transition) {
}

func (g *GreedyPolicy) UpdateIteration(episode int, trace *types.Trace) {
}

func (g *GreedyPolicy) Reset() {
}
