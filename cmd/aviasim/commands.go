package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/aviasim/internal/analysis"
	"github.com/san-kum/aviasim/internal/automation"
	"github.com/san-kum/aviasim/internal/config"
	"github.com/san-kum/aviasim/internal/display"
	"github.com/san-kum/aviasim/internal/dynamo"
	"github.com/san-kum/aviasim/internal/experiment"
	"github.com/san-kum/aviasim/internal/export"
	"github.com/san-kum/aviasim/internal/logging"
	"github.com/san-kum/aviasim/internal/render"
	"github.com/san-kum/aviasim/internal/scenario"
	"github.com/san-kum/aviasim/internal/viz"
)

func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.NewLogger(cfg.LogLevel, os.Stderr), nil
}

func execute(cmd *cobra.Command) (*config.Config, *experiment.Outcome, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out, err := experiment.New(cfg, logger).Run(ctx)
	if err != nil {
		return nil, nil, describe(err)
	}
	return cfg, out, nil
}

// describe adds a hint for the failures a user can act on.
func describe(err error) error {
	var verr *dynamo.ValidationError
	var derr *dynamo.DivergedError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("%w (use --policy autocorrect to raise restrictions automatically)", err)
	case errors.As(err, &derr):
		return fmt.Errorf("%w (try --integrator rk45 or smaller coefficients)", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("run timed out: %w (raise --timeout)", err)
	}
	return err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	_, out, err := execute(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.StatusOK.Render(fmt.Sprintf("run %s completed in %v", out.ID, out.Elapsed)))
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("mode %s, integrator %s, %d samples, %d steps, %d rejected",
		out.Mode, out.Integrator, out.Result.Len(), out.Result.StepsTaken, out.Result.StepsRejected)))
	fmt.Println()
	fmt.Println(viz.ScenarioTable(out.Scenario))
	fmt.Println(viz.SeriesTable(out.Panel, 30))
	fmt.Println(viz.BoxWithTitle("metrics", viz.MetricsTable(out.Result.Metrics)))

	if showChart {
		printCharts(out.Panel)
	}
	if showRadar {
		printRadar(out.Panel)
	}
	return nil
}

func showScenario(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	if asYAML {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(sc)
	}
	fmt.Println(viz.ScenarioTable(sc))
	return nil
}

func showDrivers(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	fmt.Println(viz.DriverTable(sc))
	if showChart {
		traj := &dynamo.Trajectory{Times: dynamo.Grid(config.DefaultSamples)}
		for range traj.Times {
			traj.States = append(traj.States, sc.State())
		}
		panel := display.Build(sc, traj, display.DefaultOptions())
		fmt.Println(viz.DriverChart(panel.Drivers, viz.DefaultChartOptions()))
	}
	return nil
}

func showCouplings(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	fmt.Println(viz.CouplingTable(sc))
	return nil
}

func buildScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	sc, _, err := experiment.New(cfg, logger).Scenario()
	if err != nil {
		return nil, describe(err)
	}
	return sc, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	_, out, err := execute(cmd)
	if err != nil {
		return err
	}
	printCharts(out.Panel)
	printRadar(out.Panel)
	return nil
}

func printCharts(panel *display.Panel) {
	opts := viz.DefaultChartOptions()
	fmt.Println(viz.Chart(panel.Plotted, "indicators (normalized)", opts))
	fmt.Println()
	fmt.Println(viz.DriverChart(panel.Drivers, opts))
	fmt.Println()
}

func printRadar(panel *display.Panel) {
	for _, frame := range panel.Radar {
		fmt.Println(viz.Radar(frame, 10))
		fmt.Println(viz.Separator(40))
	}
}

func renderRun(cmd *cobra.Command, args []string) error {
	cfg, out, err := execute(cmd)
	if err != nil {
		return err
	}

	opts := []render.Option{render.WithFormat(format)}
	if labels {
		opts = append(opts, render.WithLabeler(render.MidpointLabels{Short: true}))
	}
	dir := filepath.Join(cfg.OutputDir, out.ID)
	paths, err := render.New(opts...).WritePanel(dir, out.Panel)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, out, err := execute(cmd)
	if err != nil {
		return err
	}

	switch toStdout {
	case "json":
		return export.WriteJSON(os.Stdout, export.NewRecord(out))
	case "csv":
		return export.WriteCSV(os.Stdout, &out.Result.Trajectory)
	case "":
	default:
		return fmt.Errorf("unknown stdout format: %s (want json or csv)", toStdout)
	}

	paths, err := export.Save(cfg.OutputDir, out)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	names := args
	registry := experiment.NewRegistry()
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	exp := experiment.New(cfg, logger)
	sc, m, err := exp.Scenario()
	if err != nil {
		return describe(err)
	}
	opts, err := cfg.DisplayOptions()
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators over %d samples\n\n", cfg.Samples)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_X1\tFINAL_X8\tSTEPS\tREJECTED\tTIME")

	for _, name := range names {
		start := time.Now()
		out, err := exp.RunScenario(cmd.Context(), sc, m, name, opts)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		final := out.Result.States[out.Result.Len()-1]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%d\t%d\t%v\n",
			name, final[0], final[dynamo.NumIndicators-1], out.Result.StepsTaken, out.Result.StepsRejected, time.Since(start))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:     cfg,
		Field:    sweepField,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBREACHES\tFIRST_BREACH\tFINAL_X8\n", sweepField)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.4f\terror: %v\n", r.Value, r.Err)
			continue
		}
		first := "-"
		if r.FirstBreach >= 0 {
			first = fmt.Sprintf("%.2f", r.FirstBreach)
		}
		fmt.Fprintf(w, "%.4f\t%.0f\t%s\t%.4f\n", r.Value, r.Breaches, first, r.FinalState[dynamo.NumIndicators-1])
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:      cfg,
		NumTrials: trials,
		Seed:      cfg.Scenario.Seed,
	}, logger)
	if err != nil {
		return err
	}

	breached, clear, failed := automation.MonteCarloStats(results)
	fmt.Printf("%d trials from seed %d\n", len(results), cfg.Scenario.Seed)
	fmt.Println(viz.StatusWarn.Render(fmt.Sprintf("breached: %d", breached)))
	fmt.Println(viz.StatusOK.Render(fmt.Sprintf("clear:    %d", clear)))
	if failed > 0 {
		fmt.Println(viz.StatusError.Render(fmt.Sprintf("failed:   %d", failed)))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	var traj *dynamo.Trajectory
	if runFile != "" {
		loaded, err := export.Load(runFile)
		if err != nil {
			return err
		}
		traj = loaded
	} else {
		_, out, err := execute(cmd)
		if err != nil {
			return err
		}
		traj = &out.Result.Trajectory
	}
	portrait, err := analysis.NewPhasePortrait(traj, xAxis-1, yAxis-1)
	if err != nil {
		return err
	}
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	sc, _, err := experiment.New(cfg, logger).Scenario()
	if err != nil {
		return describe(err)
	}
	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	report, err := analysis.Sensitivity(ctx, sc, integ, cfg.SimConfig(), delta)
	if err != nil {
		return describe(err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDICATOR\tFINAL\tPEAK\tEXPONENT")
	for _, s := range report {
		fmt.Fprintf(w, "X%d\t%.4f\t%.4f\t%.4f\n", s.Index+1, s.Final, s.Peak, s.Exponent)
	}
	return w.Flush()
}
