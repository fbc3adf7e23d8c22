package missions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/rescue-rl/grid"
	"github.com/zeu5/rescue-rl/policies"
	"github.com/zeu5/rescue-rl/store"
	"github.com/zeu5/rescue-rl/types"
	"github.com/zeu5/rescue-rl/util"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func Plot(ctx context.Context, levelName string, window int) error {
	level, err := grid.LevelFor(levelName)
	if err != nil {
		return fmt.Errorf("unknown level %q: %s", levelName, err)
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	reportData, err := st.Load(ctx, store.ReportArtifact(level.Name))
	if err != nil {
		return fmt.Errorf("error reading report, train the level first: %s", err)
	}
	report := &types.Report{}
	if err := json.Unmarshal(reportData, report); err != nil {
		return fmt.Errorf("error parsing report: %s", err)
	}

	tableData, err := st.Load(ctx, store.TableArtifact(level.Name))
	if err != nil {
		return fmt.Errorf("error reading table: %s", err)
	}
	table := policies.NewQTable()
	if err := json.Unmarshal(tableData, table); err != nil {
		return fmt.Errorf("error parsing table: %s", err)
	}

	// plots are always files, regardless of the artifact store
	if err := os.MkdirAll(saveDir, 0777); err != nil {
		return fmt.Errorf("error creating save directory: %s", err)
	}

	if err := plotRewards(report, window, path.Join(saveDir, fmt.Sprintf("rewards_%s.png", level.Name))); err != nil {
		return err
	}
	if err := plotValues(level, table, path.Join(saveDir, fmt.Sprintf("values_%s.png", level.Name))); err != nil {
		return err
	}
	fmt.Printf("Saved the plots for level %q in %s\n", level.Name, saveDir)
	return nil
}

func plotRewards(report *types.Report, window int, figPath string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Training rewards (%s)", report.Name)
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Accumulated reward"

	series := [][]float64{report.Rewards, util.MovingAverage(report.Rewards, window)}
	names := []string{"reward", fmt.Sprintf("average (%d)", window)}
	for i := 0; i < len(series); i++ {
		points := make(plotter.XYs, len(series[i]))
		for j, v := range series[i] {
			points[j] = plotter.XY{
				X: float64(j),
				Y: v,
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			continue
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, figPath)
}

func plotValues(level grid.Level, table *policies.QTable, figPath string) error {
	dataSet := grid.NewValueDataSet(level, table)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Best values (%s)", level.Name)
	p.Add(plotter.NewHeatMap(dataSet, palette.Heat(16, 1)))
	return p.Save(4*vg.Inch, 4*vg.Inch, figPath)
}

func PlotCommand() *cobra.Command {
	var levelName string
	var window int

	cmd := &cobra.Command{
		Use:  "plot",
		Long: "Plot the training rewards and the learned value surface of a level",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Plot(cmd.Context(), levelName, window)
		},
	}
	cmd.PersistentFlags().StringVarP(&levelName, "level", "l", "easy", "Level whose artifacts to plot")
	cmd.PersistentFlags().IntVar(&window, "window", 10, "Smoothing window for the reward curve")
	return cmd
}
