package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/aviasim/internal/config"
)

var (
	configFile   string
	preset       string
	logLevel     string
	samples      int
	integrator   string
	mode         string
	policy       string
	seed         int64
	acceptParams bool
	jitter       float64
	overrides    map[string]string
	timeout      time.Duration
	clipMode     string
	// Output
	outDir    string
	format    string
	labels    bool
	toStdout  string
	showChart bool
	showRadar bool
	asYAML    bool
	// Sweeps and ensembles
	sweepField string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	// Analysis
	xAxis   int
	yAxis   int
	runFile string
	delta   float64
)

// main registers the aviasim commands and exits with status 1 if the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "aviasim",
		Short:        "aviation safety system dynamics simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a scenario and summarize the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&showChart, "chart", false, "print indicator and driver charts")
	runCmd.Flags().BoolVar(&showRadar, "radar", false, "print radar frames")

	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "build a scenario without integrating it",
		Args:  cobra.NoArgs,
		RunE:  showScenario,
	}
	addScenarioFlags(scenarioCmd)
	scenarioCmd.Flags().BoolVar(&asYAML, "yaml", false, "print the scenario as yaml")

	driversCmd := &cobra.Command{
		Use:   "drivers",
		Short: "print the driver functions F1..F5",
		Args:  cobra.NoArgs,
		RunE:  showDrivers,
	}
	addScenarioFlags(driversCmd)
	driversCmd.Flags().BoolVar(&showChart, "chart", false, "plot the driver curves")

	couplingsCmd := &cobra.Command{
		Use:   "couplings",
		Short: "print the coupling functions f1..f18 and their dependencies",
		Args:  cobra.NoArgs,
		RunE:  showCouplings,
	}
	addScenarioFlags(couplingsCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "run and plot the result in the terminal",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	addScenarioFlags(plotCmd)
	addRunFlags(plotCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "run and write chart images",
		Args:  cobra.NoArgs,
		RunE:  renderRun,
	}
	addScenarioFlags(renderCmd)
	addRunFlags(renderCmd)
	renderCmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	renderCmd.Flags().StringVar(&format, "format", "png", "image format: png, svg or pdf")
	renderCmd.Flags().BoolVar(&labels, "labels", false, "label each line at its midpoint")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "run and export the trajectory as json and csv",
		Args:  cobra.NoArgs,
		RunE:  exportRun,
	}
	addScenarioFlags(exportCmd)
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")
	exportCmd.Flags().StringVar(&toStdout, "stdout", "", "write json or csv to stdout instead of files")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "run one scenario with several integrators",
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)
	addRunFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one override field and report breaches per value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepField, "field", "u1", "override field to vary, e.g. u1 or f1_k")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.9, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seeded random scenarios and count restriction breaches",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&trials, "trials", 20, "number of random scenarios")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "plot one indicator against another for a new or exported run",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	addScenarioFlags(phaseCmd)
	addRunFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&xAxis, "x", 1, "indicator on the x axis (1-8)")
	phaseCmd.Flags().IntVar(&yAxis, "y", 8, "indicator on the y axis (1-8)")
	phaseCmd.Flags().StringVar(&runFile, "from", "", "read an exported run (.json or .csv) instead of integrating")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "measure how perturbing each initial value moves the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSensitivity,
	}
	addScenarioFlags(sensitivityCmd)
	addRunFlags(sensitivityCmd)
	sensitivityCmd.Flags().Float64Var(&delta, "delta", 1e-3, "initial perturbation")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s samples=%d mode=%s policy=%s jitter=%g floor=%g\n",
					name, cfg.Samples, cfg.Scenario.Mode, cfg.Scenario.Policy, cfg.Scenario.Jitter, cfg.Display.Floor)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, scenarioCmd, driversCmd, couplingsCmd, plotCmd, renderCmd, exportCmd, compareCmd, sweepCmd, ensembleCmd, phaseCmd, sensitivityCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", "fixed", "scenario mode: fixed, random or override")
	cmd.Flags().StringVar(&policy, "policy", "strict", "restriction policy: strict or autocorrect")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for random mode and jitter")
	cmd.Flags().BoolVar(&acceptParams, "accept-params", false, "let --set replace driver and coupling parameters")
	cmd.Flags().Float64Var(&jitter, "jitter", 0, "initial state jitter amplitude")
	cmd.Flags().StringToStringVar(&overrides, "set", nil, "override fields, e.g. --set u1=0.3,u_restrictions1=0.8")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of output samples on [0, 1]")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator: rk45, rk4 or euler")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "abort the run after this long")
	cmd.Flags().StringVar(&clipMode, "clip", "hard", "display clipping: hard or gentle")
}

// loadConfig layers the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("clip") {
		cfg.Display.Clip = clipMode
	}
	if flags.Changed("mode") {
		cfg.Scenario.Mode = mode
	}
	if flags.Changed("policy") {
		cfg.Scenario.Policy = policy
	}
	if flags.Changed("seed") {
		cfg.Scenario.Seed = seed
	}
	if flags.Changed("accept-params") {
		cfg.Scenario.AcceptParams = acceptParams
	}
	if flags.Changed("jitter") {
		cfg.Scenario.Jitter = jitter
	}
	if len(overrides) > 0 {
		if cfg.Scenario.Overrides == nil {
			cfg.Scenario.Overrides = make(map[string]string, len(overrides))
		}
		for k, v := range overrides {
			cfg.Scenario.Overrides[k] = v
		}
		if !flags.Changed("mode") {
			cfg.Scenario.Mode = "override"
		}
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
