package grid

import (
	"github.com/zeu5/rescue-rl/types"
)

const (
	StatusRescued  = "Rescued Victim"
	StatusExploded = "Robot Exploded"
	StatusExit     = "Exit Found"

	MissionSucceeded = "Mission Succeed!"
	MissionFailed    = "Mission Failed!"
)

// Movement of the robot by one cell
type Movement struct {
	Direction string
}

var _ types.Action = &Movement{}

func (m *Movement) Hash() string {
	return m.Direction
}

var (
	MoveUp    = &Movement{"up"}
	MoveDown  = &Movement{"down"}
	MoveLeft  = &Movement{"left"}
	MoveRight = &Movement{"right"}
	// AllMovements fixes the order actions are enumerated in
	AllMovements []types.Action = []types.Action{
		MoveUp,
		MoveDown,
		MoveLeft,
		MoveRight,
	}
)

// ActionHashes lists the action keys in enumeration order.
func ActionHashes() []string {
	hashes := make([]string, len(AllMovements))
	for i, a := range AllMovements {
		hashes[i] = a.Hash()
	}
	return hashes
}

// RobotState is the position of the robot on a bounded grid.
type RobotState struct {
	Pos  Position
	Size int
}

var _ types.State = &RobotState{}

func (s *RobotState) Hash() string {
	return s.Pos.Hash()
}

// Actions legal at the position. Moves that would leave the grid are
// excluded.
func (s *RobotState) Actions() []types.Action {
	actions := make([]types.Action, 0, 4)
	if s.Pos.Row != 0 {
		actions = append(actions, MoveUp)
	}
	if s.Pos.Row != s.Size-1 {
		actions = append(actions, MoveDown)
	}
	if s.Pos.Col != 0 {
		actions = append(actions, MoveLeft)
	}
	if s.Pos.Col != s.Size-1 {
		actions = append(actions, MoveRight)
	}
	return actions
}

// Rewards parametrize the environment feedback. Step is the cost of moving
// onto an empty cell and should be negative.
type Rewards struct {
	Critical float64
	Stable   float64
	Exit     float64
	Fire     float64
	Step     float64
}

func DefaultRewards() Rewards {
	return Rewards{
		Critical: 10,
		Stable:   8,
		Exit:     5,
		Fire:     -100,
		Step:     -1,
	}
}

// RescueEnvironment simulates a robot moving on a fixed grid to pick up
// victims and reach the exit without stepping into fire. Victims disappear
// once rescued and reappear on Reset.
type RescueEnvironment struct {
	level   Level
	rewards Rewards

	pos           Position
	fire          map[Position]bool
	critical      map[Position]bool
	stable        map[Position]bool
	score         int
	robotStatus   string
	missionStatus string
}

var _ types.Environment = &RescueEnvironment{}

func NewRescueEnvironment(level Level, rewards Rewards) *RescueEnvironment {
	e := &RescueEnvironment{
		level:   level,
		rewards: rewards,
		fire:    positionSet(level.Fire),
	}
	e.Reset()
	return e
}

// Reset places the robot at the start and restores all victims.
func (e *RescueEnvironment) Reset() types.State {
	e.pos = e.level.Start()
	e.critical = positionSet(e.level.Critical)
	e.stable = positionSet(e.level.Stable)
	e.score = 0
	e.robotStatus = ""
	e.missionStatus = ""
	return e.state()
}

// Step moves the robot. Moves that would leave the grid keep the robot in
// place. The reward depends on the cell the robot lands on, checked before
// a rescued victim is removed from the grid.
func (e *RescueEnvironment) Step(action types.Action) types.Transition {
	if movement, ok := action.(*Movement); ok {
		e.pos = e.move(movement)
	}
	tr := types.Transition{}
	switch {
	case e.critical[e.pos]:
		tr.Reward = e.rewards.Critical
		delete(e.critical, e.pos)
		e.score += 1
		e.robotStatus = StatusRescued
	case e.stable[e.pos]:
		tr.Reward = e.rewards.Stable
		delete(e.stable, e.pos)
		e.score += 1
		e.robotStatus = StatusRescued
	case e.pos == e.level.Exit():
		tr.Reward = e.rewards.Exit
		tr.Terminal = true
		e.robotStatus = StatusExit
		// leaving a victim behind ends the episode but fails the mission
		if e.score == e.level.Victims() {
			tr.Success = true
			e.missionStatus = MissionSucceeded
		} else {
			e.missionStatus = MissionFailed
		}
	case e.fire[e.pos]:
		tr.Reward = e.rewards.Fire
		tr.Terminal = true
		e.robotStatus = StatusExploded
		e.missionStatus = MissionFailed
	default:
		tr.Reward = e.rewards.Step
		e.robotStatus = ""
	}
	tr.Next = e.state()
	return tr
}

func (e *RescueEnvironment) move(m *Movement) Position {
	next := e.pos
	switch m.Direction {
	case "up":
		if next.Row != 0 {
			next.Row -= 1
		}
	case "down":
		if next.Row != e.level.Size-1 {
			next.Row += 1
		}
	case "left":
		if next.Col != 0 {
			next.Col -= 1
		}
	case "right":
		if next.Col != e.level.Size-1 {
			next.Col += 1
		}
	}
	return next
}

func (e *RescueEnvironment) state() *RobotState {
	return &RobotState{Pos: e.pos, Size: e.level.Size}
}

func (e *RescueEnvironment) Level() Level {
	return e.level
}

func (e *RescueEnvironment) Position() Position {
	return e.pos
}

func (e *RescueEnvironment) Score() int {
	return e.score
}

func (e *RescueEnvironment) RobotStatus() string {
	return e.robotStatus
}

func (e *RescueEnvironment) MissionStatus() string {
	return e.missionStatus
}

func positionSet(positions []Position) map[Position]bool {
	set := make(map[Position]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}
