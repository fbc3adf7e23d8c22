package grid

import (
	"sort"
)

// Snapshot is a serializable view of the environment after a step,
// consumed by the console and web renderers. The grid fields are filled by
// the environment, the run fields by whoever drives it.
type Snapshot struct {
	Level         string     `json:"level"`
	Size          int        `json:"size"`
	Robot         Position   `json:"robot"`
	Fire          []Position `json:"fire"`
	Critical      []Position `json:"critical"`
	Stable        []Position `json:"stable"`
	Exit          Position   `json:"exit"`
	Score         int        `json:"score"`
	TotalVictims  int        `json:"total_victims"`
	RobotStatus   string     `json:"robot_status"`
	MissionStatus string     `json:"mission_status"`

	Episode    int                           `json:"episode"`
	MaxEpisode int                           `json:"max_episode"`
	Step       int                           `json:"step"`
	Reward     float64                       `json:"reward"`
	Epsilon    float64                       `json:"epsilon"`
	Terminal   bool                          `json:"terminal"`
	Values     map[string]map[string]float64 `json:"values,omitempty"`
}

// Snapshot captures the current grid contents.
func (e *RescueEnvironment) Snapshot() Snapshot {
	return Snapshot{
		Level:         e.level.Name,
		Size:          e.level.Size,
		Robot:         e.pos,
		Fire:          sortedPositions(e.fire),
		Critical:      sortedPositions(e.critical),
		Stable:        sortedPositions(e.stable),
		Exit:          e.level.Exit(),
		Score:         e.score,
		TotalVictims:  e.level.Victims(),
		RobotStatus:   e.robotStatus,
		MissionStatus: e.missionStatus,
	}
}

func sortedPositions(set map[Position]bool) []Position {
	positions := make([]Position, 0, len(set))
	for p := range set {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Row == positions[j].Row {
			return positions[i].Col < positions[j].Col
		}
		return positions[i].Row < positions[j].Row
	})
	return positions
}
