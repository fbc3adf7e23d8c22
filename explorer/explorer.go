package explorer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/policies"
	"github.com/zeu5/rescue-rl/store"
)

type Explorer struct {
	Level  grid.Level
	QTable *policies.QTable
	Traces []*Trace
}

// Create an explorer over the learned table and recorded traces of a
// level. A missing trace artifact is not an error, the table alone can be
// explored.
func NewExplorer(ctx context.Context, st store.Store, level grid.Level) (*Explorer, error) {
	e := &Explorer{
		Level:  level,
		QTable: policies.NewQTable(),
		Traces: make([]*Trace, 0),
	}

	data, err := st.Load(ctx, store.TableArtifact(level.Name))
	if err != nil {
		return nil, fmt.Errorf("error reading table: %s", err)
	}
	if err := json.Unmarshal(data, e.QTable); err != nil {
		return nil, fmt.Errorf("error parsing table: %s", err)
	}

	if traceData, err := st.Load(ctx, store.TraceArtifact(level.Name)); err == nil {
		e.Traces, err = readTraces(traceData)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func readTraces(data []byte) ([]*Trace, error) {
	traces := make([]*Trace, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	maxTraceSize := 5 * 1024 * 1024
	scanner.Buffer(make([]byte, maxTraceSize), maxTraceSize)
	for scanner.Scan() {
		bs := scanner.Bytes()
		if len(bs) >= maxTraceSize {
			return traces, errors.New("error trace too big")
		}
		if len(bs) == 0 {
			continue
		}
		t := NewTrace()
		if err := json.Unmarshal(bs, t); err != nil {
			return traces, fmt.Errorf("error reading trace contents: %s", err)
		}
		if len(t.States) != len(t.Actions) || len(t.Actions) != len(t.NextStates) || len(t.States) != len(t.Rewards) {
			return traces, fmt.Errorf("number of states, actions and next states mismatched")
		}
		traces = append(traces, t)
	}
	if err := scanner.Err(); err != nil {
		return traces, fmt.Errorf("failed to read traces: %s", err)
	}
	return traces, nil
}

// Example invocation - ./rescue-rl explore easy
func ExploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "explore [level]",
		Long: "Explore the choices of a learned table and the recorded traces",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := grid.LevelFor(args[0])
			if err != nil {
				return err
			}
			saveDir, _ := cmd.Flags().GetString("save")
			storeURI, _ := cmd.Flags().GetString("store")
			if storeURI == "" {
				storeURI = saveDir
			}
			st, err := store.Open(storeURI)
			if err != nil {
				return err
			}
			exp, err := NewExplorer(cmd.Context(), st, level)
			if err != nil {
				return err
			}

			exp.Interact()
			return nil
		},
	}
}
