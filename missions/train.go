package missions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/rescue-rl/config"
	"github.com/zeu5/rescue-rl/display"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/policies"
	"github.com/zeu5/rescue-rl/store"
	"github.com/zeu5/rescue-rl/types"
)

// RunOptions carry the presentation knobs shared by train and replay.
type RunOptions struct {
	Render bool
	Serve  string
	Delay  time.Duration
	Debug  bool
	Seed   uint64
}

func Train(ctx context.Context, levelName string, cfg *config.Config, opts RunOptions) error {
	level, err := grid.LevelFor(levelName)
	if err != nil {
		// unknown levels train on easy
		level = grid.EasyLevel()
	}

	env := grid.NewRescueEnvironment(level, grid.Rewards{
		Critical: cfg.Rewards.Critical,
		Stable:   cfg.Rewards.Stable,
		Exit:     cfg.Rewards.Exit,
		Fire:     cfg.Rewards.Fire,
		Step:     cfg.Rewards.Step,
	})
	table := policies.NewQTable()
	table.Init(level.StateHashes(), grid.ActionHashes())
	policy := policies.NewEpsilonGreedyPolicy(policies.EpsilonGreedyConfig{
		Alpha:        cfg.Learning.Alpha,
		Gamma:        cfg.Learning.Gamma,
		Epsilon:      cfg.Learning.Epsilon,
		EpsilonFloor: cfg.Learning.EpsilonFloor,
		DecayRate:    cfg.Learning.DecayRate,
		Seed:         opts.Seed,
	}, table)

	var monitor types.Monitor
	var server *display.Server
	if opts.Serve != "" {
		server = display.NewServer(ctx, opts.Serve, env, table, opts.Delay)
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Printf("Serving the run at http://%s\n", opts.Serve)
		monitor = server
	} else if opts.Render {
		monitor = display.NewConsoleMonitor(env, table, opts.Delay, opts.Debug)
	}

	trainer := types.NewTrainer(types.TrainerConfig{
		Name:      level.Name,
		Episodes:  cfg.Training.Episodes,
		Horizon:   cfg.Training.Horizon,
		Tolerance: cfg.Training.Tolerance,
	}, env, policy, monitor)

	report := trainer.Run(ctx)
	if report.Converged {
		fmt.Printf("Done learning, converged after %d episodes in %.2fs\n", report.Episodes, report.ElapsedSeconds)
	} else {
		fmt.Printf("Done learning, ran %d episodes in %.2fs\n", report.Episodes, report.ElapsedSeconds)
	}

	if report.Interrupted {
		fmt.Println("Run interrupted, skipping save")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	tableData, err := json.Marshal(table)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, store.TableArtifact(level.Name), tableData); err != nil {
		return err
	}
	reportData, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := st.Save(ctx, store.ReportArtifact(level.Name), reportData); err != nil {
		return err
	}
	fmt.Printf("Saved the table and report for level %q\n", level.Name)

	if server != nil {
		fmt.Println("Holding the final state, quit from the page or press Ctrl-C to exit")
		<-server.Done()
	}
	return nil
}

func TrainCommand() *cobra.Command {
	var levelName string
	var episodes int
	var horizon int
	var configFile string
	var render bool
	var serve string
	var delay time.Duration
	var debug bool
	var seed uint64
	var cpuprofile string
	var memprofile string

	cmd := &cobra.Command{
		Use:  "train",
		Long: "Train the rescue robot on a level and save the learned table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			stopProfiling, err := startProfiling(cpuprofile, memprofile)
			if err != nil {
				return err
			}
			defer stopProfiling()

			cfg := config.Default()
			if configFile != "" {
				var err error
				cfg, err = config.FromFile(configFile)
				if err != nil {
					return err
				}
			}
			// explicit flags win over the config file
			if cmd.Flags().Changed("episodes") {
				cfg.Training.Episodes = episodes
			}
			if cmd.Flags().Changed("horizon") {
				cfg.Training.Horizon = horizon
			}

			return Train(ctx, levelName, cfg, RunOptions{
				Render: render,
				Serve:  serve,
				Delay:  delay,
				Debug:  debug,
				Seed:   seed,
			})
		},
	}
	cmd.PersistentFlags().StringVarP(&levelName, "level", "l", "easy", "Level to train on (easy, hard or a YAML level file)")
	cmd.PersistentFlags().IntVarP(&episodes, "episodes", "e", 1000, "Number of episodes to run")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", 0, "Step cap per episode, 0 means unbounded")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config with learning parameters and rewards")
	cmd.PersistentFlags().BoolVar(&render, "render", false, "Render each step on the console")
	cmd.PersistentFlags().StringVar(&serve, "serve", "", "Serve a live web view at the given address, e.g. :8080")
	cmd.PersistentFlags().DurationVar(&delay, "delay", 500*time.Millisecond, "Delay between rendered steps")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show the action values at the robot position")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for the exploration RNG, 0 uses the clock")
	cmd.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile of the run to this file in the save folder")
	cmd.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a heap profile after the run to this file in the save folder")
	return cmd
}
