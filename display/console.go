package display

import (
	"fmt"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/types"
)

// ValueSource exposes the learned action values for display. Satisfied by
// the policies value table.
type ValueSource interface {
	States() []string
	GetAll(state string) (map[string]float64, bool)
}

// ConsoleMonitor redraws the grid on the terminal after every step, paced
// by a fixed delay. With debug set it also prints the action values at the
// robot's position.
type ConsoleMonitor struct {
	env    *grid.RescueEnvironment
	values ValueSource
	delay  time.Duration
	debug  bool
}

var _ types.Monitor = &ConsoleMonitor{}

func NewConsoleMonitor(env *grid.RescueEnvironment, values ValueSource, delay time.Duration, debug bool) *ConsoleMonitor {
	return &ConsoleMonitor{
		env:    env,
		values: values,
		delay:  delay,
		debug:  debug,
	}
}

func (m *ConsoleMonitor) OnStep(e types.StepEvent) bool {
	snapshot := m.env.Snapshot()
	fmt.Print("\033[H\033[2J")
	fmt.Printf("Episode: %d/%d, Step: %d, Eps: %.3f\n", e.Episode+1, e.MaxEpisode, e.Step+1, e.Epsilon)
	fmt.Printf("Score: %d/%d\n\n", snapshot.Score, snapshot.TotalVictims)
	m.printGrid(snapshot)
	fmt.Printf("\nReward: %.1f\n", e.Transition.Reward)
	if snapshot.RobotStatus != "" {
		fmt.Println(aurora.Yellow(snapshot.RobotStatus))
	}
	if snapshot.MissionStatus == grid.MissionSucceeded {
		fmt.Println(aurora.Green(snapshot.MissionStatus))
	} else if snapshot.MissionStatus != "" {
		fmt.Println(aurora.Red(snapshot.MissionStatus))
	}
	if m.debug && m.values != nil {
		m.printValues(e.Transition.Next.Hash())
	}
	time.Sleep(m.delay)
	if e.Transition.Terminal {
		time.Sleep(2 * m.delay)
	}
	return true
}

func (m *ConsoleMonitor) OnEpisodeEnd(episode int, reward float64, success bool) {
	fmt.Printf("Episode %d done, Reward: %.1f\n", episode+1, reward)
}

func (m *ConsoleMonitor) printGrid(s grid.Snapshot) {
	fire := positionSet(s.Fire)
	critical := positionSet(s.Critical)
	stable := positionSet(s.Stable)
	for r := 0; r < s.Size; r++ {
		for c := 0; c < s.Size; c++ {
			p := grid.Position{Row: r, Col: c}
			switch {
			case p == s.Robot:
				fmt.Print(aurora.Green(fmt.Sprintf(" %s ", "R")))
			case fire[p]:
				fmt.Print(aurora.Red(fmt.Sprintf(" %s ", "F")))
			case critical[p]:
				fmt.Print(aurora.Magenta(fmt.Sprintf(" %s ", "C")))
			case stable[p]:
				fmt.Print(aurora.Cyan(fmt.Sprintf(" %s ", "S")))
			case p == s.Exit:
				fmt.Print(aurora.White(fmt.Sprintf(" %s ", "E")))
			default:
				fmt.Print(" . ")
			}
			fmt.Print(aurora.White("|"))
		}
		fmt.Printf("\n")
	}
}

func (m *ConsoleMonitor) printValues(state string) {
	row, ok := m.values.GetAll(state)
	if !ok {
		return
	}
	fmt.Printf("Values at %s:", state)
	for _, action := range grid.ActionHashes() {
		fmt.Printf(" %s: %.2f", action, row[action])
	}
	fmt.Printf("\n")
}

func positionSet(positions []grid.Position) map[grid.Position]bool {
	set := make(map[grid.Position]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}
