package policies

import (
	"time"

	"github.com/zeu5/rescue-rl/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// EpsilonGreedyConfig are the learning parameters of the policy.
type EpsilonGreedyConfig struct {
	Alpha   float64
	Gamma   float64
	Epsilon float64
	// Epsilon never decays below this floor
	EpsilonFloor float64
	// Multiplicative decay applied on every selection
	DecayRate float64
	// Seed for the exploration source, 0 picks a time-based seed
	Seed uint64
}

// EpsilonGreedyPolicy selects actions with a decaying epsilon-greedy rule
// and learns with the one-step tabular update. Exploration prefers legal
// actions whose estimate is still exactly zero, treating them as
// unexplored.
type EpsilonGreedyPolicy struct {
	qTable  *QTable
	prev    *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	initial float64
	floor   float64
	decay   float64
	src     rand.Source
	rand    *rand.Rand
}

var _ types.Policy = &EpsilonGreedyPolicy{}
var _ types.ConvergenceTracker = &EpsilonGreedyPolicy{}
var _ types.ExplorationReporter = &EpsilonGreedyPolicy{}

func NewEpsilonGreedyPolicy(config EpsilonGreedyConfig, table *QTable) *EpsilonGreedyPolicy {
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)
	return &EpsilonGreedyPolicy{
		qTable:  table,
		prev:    table.Clone(),
		alpha:   config.Alpha,
		gamma:   config.Gamma,
		epsilon: config.Epsilon,
		initial: config.Epsilon,
		floor:   config.EpsilonFloor,
		decay:   config.DecayRate,
		src:     src,
		rand:    rand.New(src),
	}
}

func (p *EpsilonGreedyPolicy) Table() *QTable {
	return p.qTable
}

func (p *EpsilonGreedyPolicy) Epsilon() float64 {
	return p.epsilon
}

func (p *EpsilonGreedyPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	p.decayEpsilon()

	if p.rand.Float64() < p.epsilon {
		// explore, preferring untouched entries
		zero := make([]types.Action, 0, len(actions))
		for _, a := range actions {
			if p.qTable.Get(state.Hash(), a.Hash(), 0) == 0 {
				zero = append(zero, a)
			}
		}
		candidates := actions
		if len(zero) > 0 {
			candidates = zero
		}
		return p.sample(candidates)
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := p.qTable.MaxAmong(state.Hash(), availableActions, 0)
	if maxAction == "" {
		return nil, false
	}
	return actionsMap[maxAction], true
}

// uniform pick through the weighted sampler
func (p *EpsilonGreedyPolicy) sample(candidates []types.Action) (types.Action, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	weights := make([]float64, len(candidates))
	for i := range weights {
		weights[i] = 1
	}
	i, ok := sampleuv.NewWeighted(weights, p.src).Take()
	if !ok {
		return nil, false
	}
	return candidates[i], true
}

func (p *EpsilonGreedyPolicy) Update(step int, state types.State, action types.Action, tr types.Transition) {
	target := tr.Reward
	if !tr.Terminal {
		// the backup ranges over what the policy can actually do next;
		// entries of never-legal actions stay frozen at zero and must
		// not floor the target
		legal := tr.Next.Actions()
		hashes := make([]string, len(legal))
		for i, a := range legal {
			hashes[i] = a.Hash()
		}
		_, nextMax := p.qTable.MaxAmong(tr.Next.Hash(), hashes, 0)
		target = tr.Reward + p.gamma*nextMax
	}
	curVal := p.qTable.Get(state.Hash(), action.Hash(), 0)
	p.qTable.Set(state.Hash(), action.Hash(), (1-p.alpha)*curVal+p.alpha*target)
}

func (p *EpsilonGreedyPolicy) UpdateIteration(episode int, trace *types.Trace) {
}

func (p *EpsilonGreedyPolicy) Reset() {
	states := p.qTable.States()
	for _, s := range states {
		row, _ := p.qTable.GetAll(s)
		for a := range row {
			p.qTable.Set(s, a, 0)
		}
	}
	p.prev = p.qTable.Clone()
	p.epsilon = p.initial
}

func (p *EpsilonGreedyPolicy) Delta() float64 {
	return p.qTable.MaxDelta(p.prev)
}

func (p *EpsilonGreedyPolicy) Checkpoint() {
	p.prev = p.qTable.Clone()
}

// epsilon decays on every selection and never drops below the floor
func (p *EpsilonGreedyPolicy) decayEpsilon() {
	p.epsilon = (1 - p.decay) * p.epsilon
	if p.epsilon < p.floor {
		p.epsilon = p.floor
	}
}
