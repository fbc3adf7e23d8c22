package types

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// TrainerConfig carries the episode-level knobs of a training run.
type TrainerConfig struct {
	Name string
	// Episode cap
	Episodes int
	// Per-episode step cap, 0 means unbounded
	Horizon int
	// Symmetric band on table deltas for the convergence check
	Tolerance float64
}

// ExplorationReporter exposes the current exploration rate for display.
type ExplorationReporter interface {
	Epsilon() float64
}

// Trainer drives episodes of a policy against an environment until the
// value table converges after a successful episode, or the episode cap is
// reached. Convergence is only checked when the policy tracks it.
type Trainer struct {
	config      TrainerConfig
	policy      Policy
	environment Environment
	tracker     ConvergenceTracker
	explorer    ExplorationReporter
	monitor     Monitor
}

// Report of a completed training run.
type Report struct {
	Name string `json:"name"`
	// Episodes actually run
	Episodes    int  `json:"episodes"`
	Converged   bool `json:"converged"`
	Interrupted bool `json:"interrupted"`
	// Accumulated reward per episode
	Rewards        []float64 `json:"rewards"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
}

func NewTrainer(config TrainerConfig, environment Environment, policy Policy, monitor Monitor) *Trainer {
	tracker, _ := policy.(ConvergenceTracker)
	explorer, _ := policy.(ExplorationReporter)
	return &Trainer{
		config:      config,
		policy:      policy,
		environment: environment,
		tracker:     tracker,
		explorer:    explorer,
		monitor:     monitor,
	}
}

// Run trains until convergence or the episode cap. The returned report is
// valid even when the run was interrupted by the user or the context.
func (t *Trainer) Run(ctx context.Context) *Report {
	report := &Report{
		Name:    t.config.Name,
		Rewards: make([]float64, 0, t.config.Episodes),
	}
	start := time.Now()
	epPadding := len(strconv.Itoa(t.config.Episodes))

	for episode := 0; episode < t.config.Episodes; episode++ {
		select {
		case <-ctx.Done():
			report.Interrupted = true
			report.ElapsedSeconds = time.Since(start).Seconds()
			return report
		default:
		}

		trace, success, quit := t.runEpisode(ctx, episode)
		reward := trace.TotalReward()
		report.Rewards = append(report.Rewards, reward)
		report.Episodes = episode + 1
		if quit {
			report.Interrupted = true
			break
		}
		if t.monitor != nil {
			t.monitor.OnEpisodeEnd(episode, reward, success)
		} else {
			fmt.Printf("\rEpisode:%*d/%d, Steps:%5d, Reward:%8.1f, Eps:%.3f",
				epPadding, episode+1, t.config.Episodes, trace.Len(), reward, t.epsilon())
		}

		// The table must settle across a fully successful episode.
		// A hazard-terminated episode never converges, and neither
		// does an exit that left a victim behind.
		if t.tracker != nil {
			if t.tracker.Delta() <= t.config.Tolerance && success {
				report.Converged = true
				break
			}
			t.tracker.Checkpoint()
		}
	}
	if t.monitor == nil {
		fmt.Println("")
	}
	report.ElapsedSeconds = time.Since(start).Seconds()
	return report
}

// run a single episode and return the resulting trace, whether it ended at
// the exit, and whether the user requested termination
func (t *Trainer) runEpisode(ctx context.Context, episode int) (*Trace, bool, bool) {
	state := t.environment.Reset()
	trace := NewTrace()
	success := false

	for step := 0; t.config.Horizon == 0 || step < t.config.Horizon; step++ {
		select {
		case <-ctx.Done():
			return trace, false, true
		default:
		}
		actions := state.Actions()
		if len(actions) == 0 {
			break
		}
		action, ok := t.policy.NextAction(step, state, actions)
		if !ok {
			break
		}
		tr := t.environment.Step(action)
		t.policy.Update(step, state, action, tr)
		trace.Append(step, state, action, tr)

		if tr.Terminal {
			success = tr.Success
		}
		if t.monitor != nil {
			ev := StepEvent{
				Episode:    episode,
				MaxEpisode: t.config.Episodes,
				Step:       step,
				State:      state,
				Action:     action,
				Transition: tr,
				Epsilon:    t.epsilon(),
			}
			if !t.monitor.OnStep(ev) {
				return trace, success, true
			}
		}
		if tr.Terminal {
			break
		}
		state = tr.Next
	}
	t.policy.UpdateIteration(episode, trace)
	return trace, success, false
}

func (t *Trainer) epsilon() float64 {
	if t.explorer == nil {
		return 0
	}
	return t.explorer.Epsilon()
}
