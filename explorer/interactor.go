package explorer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zeu5/rescue-rl/grid"
)

// Runs the main interactive loop
func (e *Explorer) Interact() {
	fmt.Printf("%s", e.header())
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s", e.prompt())

		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		option, err := strconv.Atoi(strings.Replace(optionS, "\n", "", -1))
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		fmt.Println("------------------------------------")
		switch option {
		case 1:
			fmt.Printf("%s", e.getInitialStates())
		case 2:
			fmt.Printf("Enter the state key: ")
			stateK, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("Invalid input! Try again")
				continue
			}
			fmt.Printf("%s", e.getQValues(strings.Replace(stateK, "\n", "", -1)))
		case 3:
			fmt.Printf("%s", e.getPolicyMap())
		case 4:
			fmt.Printf("Enter trace number (1-%d): ", len(e.Traces))
			traceNoS, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("Invalid input! Try again")
				continue
			}
			traceNo, err := strconv.Atoi(strings.Replace(traceNoS, "\n", "", -1))
			if err != nil {
				fmt.Println("Invalid input! Not a number. Try again")
				continue
			}
			if traceNo < 1 || traceNo > len(e.Traces) {
				fmt.Printf("Invalid input! Should be between (1-%d). Try again\n", len(e.Traces))
				continue
			}
			e.interactTrace(traceNo-1, reader)
		case 5:
			fmt.Println("Quitting! Thank you")
			return
		default:
			fmt.Println("Wrong choice! Try again!")
		}
	}
}

// greedy choice per cell, rendered as arrows on the level map
func (e *Explorer) getPolicyMap() string {
	arrows := map[string]string{
		"up":    "^",
		"down":  "v",
		"left":  "<",
		"right": ">",
	}
	fire := make(map[grid.Position]bool)
	for _, p := range e.Level.Fire {
		fire[p] = true
	}
	out := "Greedy policy:\n"
	for r := 0; r < e.Level.Size; r++ {
		for c := 0; c < e.Level.Size; c++ {
			p := grid.Position{Row: r, Col: c}
			switch {
			case p == e.Level.Exit():
				out += " E "
			case fire[p]:
				out += " F "
			default:
				state := &grid.RobotState{Pos: p, Size: e.Level.Size}
				hashes := make([]string, 0, 4)
				for _, a := range state.Actions() {
					hashes = append(hashes, a.Hash())
				}
				best, _ := e.QTable.MaxAmong(p.Hash(), hashes, 0)
				out += fmt.Sprintf(" %s ", arrows[best])
			}
		}
		out += "\n"
	}
	return out
}

func (e *Explorer) getQValues(state string) string {
	values, ok := e.QTable.GetAll(state)
	if !ok {
		return "No such state in the q table\n"
	}
	if len(values) == 0 {
		return "No values in the q table for the corresponding state\n"
	}
	out := "Q values are:\n"
	for _, action := range grid.ActionHashes() {
		if v, ok := values[action]; ok {
			out += fmt.Sprintf("%s: %f\n", action, v)
		}
	}
	return out
}

func (e *Explorer) getInitialStates() string {
	initalStates := make(map[string]int)
	for _, t := range e.Traces {
		if t.Len() == 0 {
			continue
		}
		i := t.States[0]
		if _, ok := initalStates[i]; !ok {
			initalStates[i] = 0
		}
		initalStates[i] += 1
	}
	out := "Initial states are:\n"
	for k, o := range initalStates {
		out += fmt.Sprintf("%s: %d\n", k, o)
	}
	return out
}

func (e *Explorer) header() string {
	return `
Welcome to the q table explorer!
	`
}

func (e *Explorer) prompt() string {
	return `
------------------------------------
Select one of the following options:
1. Show initial states
2. Show QValues
3. Show the greedy policy map
4. Explore a trace
5. Quit
Enter your choice: `
}

func (e *Explorer) tracePrompt() string {
	return `
---------------------------------------------
Step(s) QValues(d) Prev(p) Last(l) Quit(q): `
}

func (e *Explorer) interactTrace(traceNo int, reader *bufio.Reader) {
	stepCount := 0
	trace := e.Traces[traceNo]
	if trace.Len() == 0 {
		fmt.Println("Empty trace!")
		return
	}
	fmt.Println("---------------------------------------------")
	for {
		s, a, ns, reward := trace.Get(stepCount)
		fmt.Printf("For step %d\nState: %s\nAction: %s\nNextState: %s\nReward: %.1f\n", stepCount+1, s, a, ns, reward)
		fmt.Printf("%s", e.tracePrompt())
		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		fmt.Println("---------------------------------------------")
		option := strings.Replace(optionS, "\n", "", -1)
		switch option {
		case "s":
			if stepCount == trace.Len()-1 {
				fmt.Println("No more steps!")
				continue
			}
			stepCount += 1
		case "d":
			fmt.Printf("%s", e.getQValues(s))
		case "p":
			if stepCount == 0 {
				fmt.Printf("No more steps!")
				continue
			}
			stepCount -= 1
		case "l":
			stepCount = trace.Len() - 1
		case "q":
			return
		default:
			fmt.Println("Invalid option! Try again.")
		}
	}
}
