package policies

import (
	"math"
	"testing"

	"github.com/zeu5/rescue-rl/types"
)

type testState string

func (s testState) Hash() string {
	return string(s)
}

func (s testState) Actions() []types.Action {
	return actionsOf(testActions...)
}

// edgeState has a restricted legal action set, like a border cell.
type edgeState struct {
	hash    string
	actions []types.Action
}

func (s *edgeState) Hash() string {
	return s.hash
}

func (s *edgeState) Actions() []types.Action {
	return s.actions
}

type testAction string

func (a testAction) Hash() string {
	return string(a)
}

func actionsOf(hashes ...string) []types.Action {
	actions := make([]types.Action, len(hashes))
	for i, h := range hashes {
		actions[i] = testAction(h)
	}
	return actions
}

func newTestPolicy(epsilon, floor, decay float64, table *QTable) *EpsilonGreedyPolicy {
	return NewEpsilonGreedyPolicy(EpsilonGreedyConfig{
		Alpha:        0.7,
		Gamma:        0.8,
		Epsilon:      epsilon,
		EpsilonFloor: floor,
		DecayRate:    decay,
		Seed:         42,
	}, table)
}

func TestEpsilonDecaysToFloor(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s"}, testActions)
	policy := newTestPolicy(1.0, 0.1, 0.02, table)

	prev := policy.Epsilon()
	for i := 0; i < 500; i++ {
		policy.NextAction(i, testState("s"), actionsOf(testActions...))
		eps := policy.Epsilon()
		if eps > prev {
			t.Errorf("epsilon increased from %f to %f", prev, eps)
		}
		if eps < 0.1 {
			t.Errorf("epsilon fell below the floor: %f", eps)
		}
		prev = eps
	}
	if prev != 0.1 {
		t.Errorf("expected epsilon at the floor after 500 steps, got %f", prev)
	}
}

func TestTerminalUpdateIgnoresSuccessor(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s", "next"}, testActions)
	table.Set("next", "up", 50)
	policy := newTestPolicy(1.0, 0.1, 0.02, table)

	policy.Update(0, testState("s"), testAction("up"), types.Transition{
		Next:     testState("next"),
		Reward:   -100,
		Terminal: true,
	})
	expected := 0.7 * -100.0
	if v := table.Get("s", "up", 0); math.Abs(v-expected) > 1e-9 {
		t.Errorf("expected %f for a terminal update, got %f", expected, v)
	}
}

func TestUpdateBootstrapsFromSuccessor(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s", "next"}, testActions)
	table.Set("next", "left", 10)
	policy := newTestPolicy(1.0, 0.1, 0.02, table)

	policy.Update(0, testState("s"), testAction("up"), types.Transition{
		Next:   testState("next"),
		Reward: -1,
	})
	expected := 0.7 * (-1 + 0.8*10.0)
	if v := table.Get("s", "up", 0); math.Abs(v-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, v)
	}
}

func TestUpdateBootstrapsFromLegalActionsOnly(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s", "next"}, testActions)
	table.Set("next", "up", -5)
	table.Set("next", "down", -3)
	policy := newTestPolicy(1.0, 0.1, 0.02, table)

	// left and right entries of the successor sit at zero but are not
	// legal there, so the backup must use the best legal value
	next := &edgeState{hash: "next", actions: actionsOf("up", "down")}
	policy.Update(0, testState("s"), testAction("up"), types.Transition{
		Next:   next,
		Reward: -1,
	})
	expected := 0.7 * (-1 + 0.8*-3.0)
	if v := table.Get("s", "up", 0); math.Abs(v-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, v)
	}
}

func TestExplorationPrefersUntriedActions(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s"}, testActions)
	table.Set("s", "up", 4)
	table.Set("s", "down", -2)
	table.Set("s", "left", 1)

	// floor pinned at 1 keeps the policy exploring on every step
	policy := newTestPolicy(1.0, 1.0, 0.02, table)
	for i := 0; i < 50; i++ {
		action, ok := policy.NextAction(i, testState("s"), actionsOf(testActions...))
		if !ok {
			t.Fatalf("no action selected")
		}
		if action.Hash() != "right" {
			t.Errorf("expected the untried action right, got %s", action.Hash())
		}
	}
}

func TestExploitationFollowsLegalMax(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s"}, testActions)
	table.Set("s", "up", 1)
	table.Set("s", "down", 5)
	table.Set("s", "left", 9)

	// zero epsilon exploits on every step
	policy := newTestPolicy(0, 0, 0, table)
	action, ok := policy.NextAction(0, testState("s"), actionsOf("up", "down"))
	if !ok {
		t.Fatalf("no action selected")
	}
	if action.Hash() != "down" {
		t.Errorf("expected down among the legal actions, got %s", action.Hash())
	}
}

func TestResetRestoresExploration(t *testing.T) {
	table := NewQTable()
	table.Init([]string{"s"}, testActions)
	policy := newTestPolicy(1.0, 0.1, 0.5, table)

	for i := 0; i < 5; i++ {
		policy.NextAction(i, testState("s"), actionsOf(testActions...))
	}
	policy.Update(0, testState("s"), testAction("up"), types.Transition{
		Next:   testState("s"),
		Reward: -1,
	})
	if policy.Epsilon() >= 1.0 {
		t.Fatalf("epsilon did not decay: %f", policy.Epsilon())
	}

	policy.Reset()
	if policy.Epsilon() != 1.0 {
		t.Errorf("expected epsilon restored to 1.0, got %f", policy.Epsilon())
	}
	if v := table.Get("s", "up", 0); v != 0 {
		t.Errorf("expected values cleared on reset, got %f", v)
	}
	if d := policy.Delta(); d != 0 {
		t.Errorf("expected no delta after reset, got %f", d)
	}
}
