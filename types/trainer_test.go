package types_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/zeu5/rescue-rl/types"
)

type fakeState struct {
	hash    string
	actions []types.Action
}

func (s *fakeState) Hash() string {
	return s.hash
}

func (s *fakeState) Actions() []types.Action {
	return s.actions
}

type fakeAction string

func (a fakeAction) Hash() string {
	return string(a)
}

// scriptedEnv terminates after a fixed number of steps with the configured
// outcome, staying in a single state the whole time.
type scriptedEnv struct {
	steps   int
	success bool
	state   *fakeState
	count   int
}

func newScriptedEnv(steps int, success bool) *scriptedEnv {
	return &scriptedEnv{
		steps:   steps,
		success: success,
		state: &fakeState{
			hash:    "s",
			actions: []types.Action{fakeAction("stay")},
		},
	}
}

func (e *scriptedEnv) Reset() types.State {
	e.count = 0
	return e.state
}

func (e *scriptedEnv) Step(action types.Action) types.Transition {
	e.count++
	tr := types.Transition{Next: e.state, Reward: -1}
	if e.count >= e.steps {
		tr.Terminal = true
		tr.Success = e.success
	}
	return tr
}

// frozenPolicy always takes the first action and never changes its table.
type frozenPolicy struct{}

func (p *frozenPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	return actions[0], true
}

func (p *frozenPolicy) Update(step int, state types.State, action types.Action, tr types.Transition) {
}

func (p *frozenPolicy) UpdateIteration(episode int, trace *types.Trace) {
}

func (p *frozenPolicy) Reset() {
}

func (p *frozenPolicy) Delta() float64 {
	return 0
}

func (p *frozenPolicy) Checkpoint() {
}

type quitMonitor struct{}

func (m *quitMonitor) OnStep(ev types.StepEvent) bool {
	return false
}

func (m *quitMonitor) OnEpisodeEnd(episode int, reward float64, success bool) {
}

func TestConvergenceRequiresSuccess(t *testing.T) {
	config := types.TrainerConfig{Name: "test", Episodes: 5, Tolerance: 0.1}

	// a settled table does not converge while episodes end in a hazard
	trainer := types.NewTrainer(config, newScriptedEnv(3, false), &frozenPolicy{}, nil)
	report := trainer.Run(context.Background())
	if report.Converged {
		t.Errorf("failed episodes must not converge")
	}
	if report.Episodes != 5 {
		t.Errorf("expected all 5 episodes to run, got %d", report.Episodes)
	}

	// the same table converges immediately once an episode succeeds
	trainer = types.NewTrainer(config, newScriptedEnv(3, true), &frozenPolicy{}, nil)
	report = trainer.Run(context.Background())
	if !report.Converged {
		t.Errorf("expected convergence after a successful settled episode")
	}
	if report.Episodes != 1 {
		t.Errorf("expected a single episode, got %d", report.Episodes)
	}
}

func TestTrainerHorizonCapsEpisodes(t *testing.T) {
	config := types.TrainerConfig{Name: "test", Episodes: 2, Horizon: 7, Tolerance: 0.1}
	trainer := types.NewTrainer(config, newScriptedEnv(1000, false), &frozenPolicy{}, nil)
	report := trainer.Run(context.Background())

	if report.Episodes != 2 {
		t.Errorf("expected 2 episodes, got %d", report.Episodes)
	}
	if len(report.Rewards) != 2 {
		t.Fatalf("expected 2 recorded rewards, got %d", len(report.Rewards))
	}
	for i, reward := range report.Rewards {
		if reward != -7 {
			t.Errorf("expected reward -7 for the capped episode %d, got %f", i, reward)
		}
	}
	if report.Converged {
		t.Errorf("a truncated episode must not converge")
	}
}

func TestTrainerStopsOnMonitorQuit(t *testing.T) {
	config := types.TrainerConfig{Name: "test", Episodes: 10, Tolerance: 0.1}
	trainer := types.NewTrainer(config, newScriptedEnv(3, true), &frozenPolicy{}, &quitMonitor{})
	report := trainer.Run(context.Background())

	if !report.Interrupted {
		t.Errorf("expected the run marked interrupted")
	}
	if report.Episodes != 1 {
		t.Errorf("expected the run to stop within the first episode, got %d", report.Episodes)
	}
}

func TestTrainerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := types.TrainerConfig{Name: "test", Episodes: 10, Tolerance: 0.1}
	trainer := types.NewTrainer(config, newScriptedEnv(3, true), &frozenPolicy{}, nil)
	report := trainer.Run(ctx)
	if !report.Interrupted {
		t.Errorf("expected the run marked interrupted")
	}
	if len(report.Rewards) != 0 {
		t.Errorf("expected no episodes recorded, got %d", len(report.Rewards))
	}
}

func TestRolloutOutcomes(t *testing.T) {
	trace, success, quit := types.Rollout(context.Background(), newScriptedEnv(3, true), &frozenPolicy{}, 100, nil)
	if !success || quit {
		t.Errorf("expected a clean successful rollout, got success %v quit %v", success, quit)
	}
	if trace.Len() != 3 {
		t.Errorf("expected 3 recorded steps, got %d", trace.Len())
	}

	// the horizon truncates before the terminal step
	trace, success, _ = types.Rollout(context.Background(), newScriptedEnv(10, true), &frozenPolicy{}, 4, nil)
	if success {
		t.Errorf("a truncated rollout is not a success")
	}
	if trace.Len() != 4 {
		t.Errorf("expected 4 recorded steps, got %d", trace.Len())
	}
	if _, _, tr, ok := trace.Last(); !ok || tr.Terminal {
		t.Errorf("expected the last transition non terminal")
	}
}

func TestTraceMarshalShape(t *testing.T) {
	s1 := &fakeState{hash: "(3, 3)"}
	s2 := &fakeState{hash: "(2, 3)"}
	s3 := &fakeState{hash: "(2, 2)"}

	trace := types.NewTrace()
	trace.Append(0, s1, fakeAction("up"), types.Transition{Next: s2, Reward: -1})
	trace.Append(1, s2, fakeAction("left"), types.Transition{Next: s3, Reward: 10})

	data, err := json.Marshal(trace)
	if err != nil {
		t.Fatalf("marshal failed: %s", err)
	}
	decoded := struct {
		States     []string  `json:"states"`
		Actions    []string  `json:"actions"`
		NextStates []string  `json:"next_states"`
		Rewards    []float64 `json:"rewards"`
	}{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %s", err)
	}

	expectedStates := []string{"(3, 3)", "(2, 3)"}
	expectedActions := []string{"up", "left"}
	expectedNext := []string{"(2, 3)", "(2, 2)"}
	expectedRewards := []float64{-1, 10}
	for i := range expectedStates {
		if decoded.States[i] != expectedStates[i] {
			t.Errorf("expected state %s at %d, got %s", expectedStates[i], i, decoded.States[i])
		}
		if decoded.Actions[i] != expectedActions[i] {
			t.Errorf("expected action %s at %d, got %s", expectedActions[i], i, decoded.Actions[i])
		}
		if decoded.NextStates[i] != expectedNext[i] {
			t.Errorf("expected next state %s at %d, got %s", expectedNext[i], i, decoded.NextStates[i])
		}
		if decoded.Rewards[i] != expectedRewards[i] {
			t.Errorf("expected reward %f at %d, got %f", expectedRewards[i], i, decoded.Rewards[i])
		}
	}
	if trace.TotalReward() != 9 {
		t.Errorf("expected total reward 9, got %f", trace.TotalReward())
	}
}
