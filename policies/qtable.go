package policies

import (
	"encoding/json"
	"math"
	"sort"
)

// QTable is a two-level value table keyed by state and action hashes.
// Init populates every pair of a run up front, so the key set stays fixed
// and reads never allocate.
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

// Init creates a zero entry for every state/action pair.
func (q *QTable) Init(states []string, actions []string) {
	for _, s := range states {
		q.table[s] = make(map[string]float64, len(actions))
		for _, a := range actions {
			q.table[s][a] = 0
		}
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	row, ok := q.table[state]
	if !ok {
		return def
	}
	val, ok := row[action]
	if !ok {
		return def
	}
	return val
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// GetAll returns a copy of the row for the state.
func (q *QTable) GetAll(state string) (map[string]float64, bool) {
	row, ok := q.table[state]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(row))
	for a, val := range row {
		out[a] = val
	}
	return out, true
}

// Max returns the best entry of the full row, regardless of which actions
// are legal. Only the value is meaningful to callers since map order makes
// the action nondeterministic on ties.
func (q *QTable) Max(state string, def float64) (string, float64) {
	row, ok := q.table[state]
	if !ok || len(row) == 0 {
		return "", def
	}
	maxAction := ""
	maxVal := float64(math.MinInt)
	for a, val := range row {
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// MaxAmong returns the best entry restricted to the given actions. Ties
// resolve to the earliest action in the slice.
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	maxAction := ""
	maxVal := float64(math.MinInt)
	for _, a := range actions {
		val := q.Get(state, a, def)
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

// States lists the state keys in sorted order.
func (q *QTable) States() []string {
	states := make([]string, 0, len(q.table))
	for s := range q.table {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Size reports the number of state/action entries.
func (q *QTable) Size() int {
	n := 0
	for _, row := range q.table {
		n += len(row)
	}
	return n
}

// Clone deep-copies the table.
func (q *QTable) Clone() *QTable {
	clone := NewQTable()
	for s, row := range q.table {
		clone.table[s] = make(map[string]float64, len(row))
		for a, val := range row {
			clone.table[s][a] = val
		}
	}
	return clone
}

// MaxDelta reports the largest absolute difference of any entry between
// the two tables. Entries missing on either side count from zero.
func (q *QTable) MaxDelta(other *QTable) float64 {
	maxDelta := 0.0
	seen := func(s, a string, val float64) {
		d := math.Abs(val - other.Get(s, a, 0))
		if d > maxDelta {
			maxDelta = d
		}
	}
	for s, row := range q.table {
		for a, val := range row {
			seen(s, a, val)
		}
	}
	for s, row := range other.table {
		for a := range row {
			if _, ok := q.table[s]; !ok {
				seen(s, a, q.Get(s, a, 0))
			} else if _, ok := q.table[s][a]; !ok {
				seen(s, a, 0)
			}
		}
	}
	return maxDelta
}

func (q *QTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.table)
}

func (q *QTable) UnmarshalJSON(data []byte) error {
	table := make(map[string]map[string]float64)
	if err := json.Unmarshal(data, &table); err != nil {
		return err
	}
	q.table = table
	return nil
}
