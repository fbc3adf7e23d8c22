package main

import (
	"fmt"

	"github.com/zeu5/rescue-rl/missions"
)

// main entry point to all the missions
func main() {
	rootCommand := missions.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
	}
}
