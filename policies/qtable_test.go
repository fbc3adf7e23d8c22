package policies

import (
	"encoding/json"
	"fmt"
	"testing"
)

var testActions = []string{"up", "down", "left", "right"}

func gridStates(size int) []string {
	states := make([]string, 0, size*size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			states = append(states, fmt.Sprintf("(%d, %d)", r, c))
		}
	}
	return states
}

func TestQTableInitZero(t *testing.T) {
	table := NewQTable()
	states := gridStates(4)
	table.Init(states, testActions)

	if table.Size() != len(states)*len(testActions) {
		t.Errorf("expected %d entries, got %d", len(states)*len(testActions), table.Size())
	}
	for _, s := range states {
		row, ok := table.GetAll(s)
		if !ok {
			t.Errorf("missing row for state %s", s)
			continue
		}
		if len(row) != len(testActions) {
			t.Errorf("expected %d actions for %s, got %d", len(testActions), s, len(row))
		}
		for a, val := range row {
			if val != 0 {
				t.Errorf("expected zero for %s %s, got %f", s, a, val)
			}
		}
	}
}

func TestQTableSetOverwrites(t *testing.T) {
	table := NewQTable()
	table.Init(gridStates(2), testActions)
	table.Set("(0, 1)", "down", 2.5)
	table.Set("(0, 1)", "down", -1.5)
	if v := table.Get("(0, 1)", "down", 0); v != -1.5 {
		t.Errorf("expected -1.5 after overwrite, got %f", v)
	}
}

func TestQTableMaxAmongTies(t *testing.T) {
	table := NewQTable()
	table.Init(gridStates(2), testActions)

	// all zero, the first action listed wins
	action, val := table.MaxAmong("(1, 1)", []string{"up", "left"}, 0)
	if action != "up" || val != 0 {
		t.Errorf("expected up with 0, got %s with %f", action, val)
	}

	table.Set("(1, 1)", "left", 3)
	action, val = table.MaxAmong("(1, 1)", []string{"up", "left"}, 0)
	if action != "left" || val != 3 {
		t.Errorf("expected left with 3, got %s with %f", action, val)
	}
}

func TestQTableMaxDelta(t *testing.T) {
	table := NewQTable()
	table.Init(gridStates(2), testActions)
	prev := table.Clone()

	table.Set("(0, 0)", "down", 0.2)
	table.Set("(1, 0)", "right", -0.4)
	if d := table.MaxDelta(prev); d != 0.4 {
		t.Errorf("expected delta 0.4, got %f", d)
	}
	if d := table.MaxDelta(table.Clone()); d != 0 {
		t.Errorf("expected no delta against a clone, got %f", d)
	}
}

func TestQTableRoundTrip(t *testing.T) {
	table := NewQTable()
	states := gridStates(4)
	table.Init(states, testActions)
	table.Set("(0, 1)", "left", 5)
	table.Set("(2, 2)", "up", 10)
	table.Set("(3, 3)", "right", -100)

	data, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("marshal failed: %s", err)
	}
	loaded := NewQTable()
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("unmarshal failed: %s", err)
	}
	if loaded.Size() != table.Size() {
		t.Errorf("expected %d entries after round trip, got %d", table.Size(), loaded.Size())
	}
	for _, s := range states {
		before, _ := table.MaxAmong(s, testActions, 0)
		after, _ := loaded.MaxAmong(s, testActions, 0)
		if before != after {
			t.Errorf("greedy choice for %s changed after round trip: %s to %s", s, before, after)
		}
	}
}
