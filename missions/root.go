package missions

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/rescue-rl/explorer"
	"github.com/zeu5/rescue-rl/store"
)

var (
	saveDir  string
	storeURI string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use: "rescue-rl",
	}
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save run artifacts in the specified folder")
	rootCommand.PersistentFlags().StringVar(&storeURI, "store", "", "Artifact store, a folder or redis://addr (defaults to the save folder)")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(ReplayCommand())
	rootCommand.AddCommand(PlotCommand())
	rootCommand.AddCommand(explorer.ExploreCommand())
	return rootCommand
}

// openStore resolves the persistent store flags.
func openStore() (store.Store, error) {
	if storeURI != "" {
		return store.Open(storeURI)
	}
	return store.Open(saveDir)
}
