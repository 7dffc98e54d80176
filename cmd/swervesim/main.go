package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/robosim-dev/swervesim/internal/arena"
	"github.com/robosim-dev/swervesim/internal/config"
	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/export"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/metrics"
	"github.com/robosim-dev/swervesim/internal/scenario"
	"github.com/robosim-dev/swervesim/internal/storage"
	"github.com/robosim-dev/swervesim/internal/viz"
)

var (
	dataDir    string
	duration   float64
	speed      float64
	omega      float64
	interval   float64
	mass       float64
	gyroDrift  float64
	configFile string
	preset     string
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "swervesim",
		Short: "swerve drivetrain simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".swervesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a drivetrain scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the driven path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&speed, "speed", 3.0, "commanded speed (m/s)")
	cmd.Flags().Float64Var(&omega, "omega", 2.0, "commanded angular velocity (rad/s)")
	cmd.Flags().Float64Var(&interval, "interval", 0.5, "reversal interval (skid)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "robot mass (kg)")
	cmd.Flags().Float64Var(&gyroDrift, "gyro-drift", 0.0, "gyro drift stddev (rad/sqrt(s))")
}

// resolveConfig builds the effective config from preset, config file, and
// CLI flags, in ascending priority.
func resolveConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(scenarioName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Scenario = scenarioName
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("omega") {
		cfg.Omega = omega
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = interval
	}
	if cmd.Flags().Changed("mass") {
		cfg.Robot.Mass = mass
	}
	if cmd.Flags().Changed("gyro-drift") {
		cfg.Robot.GyroDrift = gyroDrift
	}

	return cfg, nil
}

// buildRig assembles an arena with a single drivetrain from the config.
func buildRig(cfg *config.Config) (*arena.Arena, *drivetrain.Drivetrain, error) {
	a := arena.New()
	battery, err := cfg.NewBattery()
	if err != nil {
		return nil, nil, err
	}
	d, err := drivetrain.New(a, battery, cfg.DrivetrainConfig(), drivetrain.Pose{})
	if err != nil {
		return nil, nil, err
	}
	return a, d, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, err := cfg.BuildScenario()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	a, d, err := buildRig(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", sc.Name())
	start := time.Now()

	result, err := scenario.Run(context.Background(), a, d, sc, cfg.Duration,
		&metrics.PeakSpeed{}, &metrics.SlipFraction{}, &metrics.Distance{}, &metrics.ControlEffort{})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Robot.Mass, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tMASS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.1fkg\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Mass,
		)
	}

	return w.Flush()
}

// Plot columns by samples.csv index.
var plotColumns = []struct {
	index   int
	caption string
}{
	{4, "vx (m/s)"},
	{5, "vy (m/s)"},
	{6, "omega (rad/s)"},
	{10, "slipping modules"},
	{11, "mean drive voltage (V)"},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(rows))

	for _, col := range plotColumns {
		data := make([]float64, len(rows))
		for i := range rows {
			data[i] = rows[i][col.index]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return fmt.Errorf("not enough data to export")
	}

	result := &scenario.Result{Scenario: meta.Scenario, Samples: make([]scenario.Sample, len(rows))}
	for i, row := range rows {
		result.Samples[i] = scenario.Sample{
			Time: row[0],
			Pose: drivetrain.Pose{
				Position: geom.Vector2{X: row[1], Y: row[2]},
				Heading:  geom.NewRotation2(row[3]),
			},
			Actual: kinematics.ChassisSpeeds{VX: row[4], VY: row[5], Omega: row[6]},
		}
	}

	fmt.Println(export.TrajectoryToSVG(result, svgWidth, svgHeight, "#00ff88"))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, err := cfg.BuildScenario()
	if err != nil {
		return err
	}

	m := viz.NewModel(func() (*arena.Arena, *drivetrain.Drivetrain, error) {
		return buildRig(cfg)
	}, sc)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
