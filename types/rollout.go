package types

import "context"

// Rollout runs a single episode of the policy without learning updates,
// recording the traversed trace. Returns the trace, whether the mission
// succeeded, and whether the user requested termination.
func Rollout(ctx context.Context, environment Environment, policy Policy, horizon int, monitor Monitor) (*Trace, bool, bool) {
	state := environment.Reset()
	trace := NewTrace()

	for step := 0; horizon == 0 || step < horizon; step++ {
		select {
		case <-ctx.Done():
			return trace, false, true
		default:
		}
		actions := state.Actions()
		if len(actions) == 0 {
			break
		}
		action, ok := policy.NextAction(step, state, actions)
		if !ok {
			break
		}
		tr := environment.Step(action)
		trace.Append(step, state, action, tr)

		if monitor != nil {
			ev := StepEvent{
				Episode:    0,
				MaxEpisode: 1,
				Step:       step,
				State:      state,
				Action:     action,
				Transition: tr,
			}
			if !monitor.OnStep(ev) {
				return trace, tr.Terminal && tr.Success, true
			}
		}
		if tr.Terminal {
			return trace, tr.Success, false
		}
		state = tr.Next
	}
	return trace, false, false
}
