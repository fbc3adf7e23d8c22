package missions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeu5/rescue-rl/display"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/policies"
	"github.com/zeu5/rescue-rl/store"
	"github.com/zeu5/rescue-rl/types"
)

func Replay(ctx context.Context, levelName string, horizon int, record bool, opts RunOptions) error {
	level, err := grid.LevelFor(levelName)
	if err != nil {
		return fmt.Errorf("unknown level %q: %s", levelName, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	data, err := st.Load(ctx, store.TableArtifact(level.Name))
	if err != nil {
		return fmt.Errorf("error reading table, train the level first: %s", err)
	}
	table := policies.NewQTable()
	if err := json.Unmarshal(data, table); err != nil {
		return fmt.Errorf("error parsing table: %s", err)
	}
	policy := policies.NewGreedyPolicy(table)
	env := grid.NewRescueEnvironment(level, grid.DefaultRewards())

	var monitor types.Monitor
	var server *display.Server
	if opts.Serve != "" {
		server = display.NewServer(ctx, opts.Serve, env, table, opts.Delay)
		if err := server.Start(); err != nil {
			return err
		}
		fmt.Printf("Serving the replay at http://%s\n", opts.Serve)
		monitor = server
	} else if opts.Render {
		monitor = display.NewConsoleMonitor(env, table, opts.Delay, opts.Debug)
	}

	start := time.Now()
	trace, success, quit := types.Rollout(ctx, env, policy, horizon, monitor)

	fmt.Printf("Replay finished in %d steps (%.2fs), Reward: %.1f\n",
		trace.Len(), time.Since(start).Seconds(), trace.TotalReward())
	fmt.Printf("Score: %d/%d\n", env.Score(), level.Victims())
	if env.MissionStatus() != "" {
		fmt.Println(env.MissionStatus())
	}
	if _, _, tr, ok := trace.Last(); ok && !tr.Terminal && !quit {
		fmt.Printf("No terminal state within %d steps, the table may need more training\n", horizon)
	}
	if !success && quit {
		fmt.Println("Replay interrupted")
		return nil
	}

	if record {
		traceData, err := json.Marshal(trace)
		if err != nil {
			return err
		}
		if err := st.Save(ctx, store.TraceArtifact(level.Name), append(traceData, '\n')); err != nil {
			return err
		}
		fmt.Printf("Recorded the trace for level %q\n", level.Name)
	}

	if server != nil {
		fmt.Println("Holding the final state, quit from the page or press Ctrl-C to exit")
		<-server.Done()
	}
	return nil
}

func ReplayCommand() *cobra.Command {
	var levelName string
	var horizon int
	var record bool
	var render bool
	var serve string
	var delay time.Duration
	var debug bool

	cmd := &cobra.Command{
		Use:  "replay",
		Long: "Follow a learned table greedily through a level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return Replay(ctx, levelName, horizon, record, RunOptions{
				Render: render,
				Serve:  serve,
				Delay:  delay,
				Debug:  debug,
			})
		},
	}
	cmd.PersistentFlags().StringVarP(&levelName, "level", "l", "easy", "Level to replay (easy, hard or a YAML level file)")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", 100, "Step cap, guards against cycles in an undertrained table")
	cmd.PersistentFlags().BoolVar(&record, "record", true, "Record the replay trace")
	cmd.PersistentFlags().BoolVar(&render, "render", false, "Render each step on the console")
	cmd.PersistentFlags().StringVar(&serve, "serve", "", "Serve a live web view at the given address, e.g. :8080")
	cmd.PersistentFlags().DurationVar(&delay, "delay", 500*time.Millisecond, "Delay between rendered steps")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show the action values at the robot position")
	return cmd
}
