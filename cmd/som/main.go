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

	"github.com/chili-epfl/states-of-matter/internal/analysis"
	"github.com/chili-epfl/states-of-matter/internal/config"
	"github.com/chili-epfl/states-of-matter/internal/metrics"
	"github.com/chili-epfl/states-of-matter/internal/sim"
	"github.com/chili-epfl/states-of-matter/internal/storage"
	"github.com/chili-epfl/states-of-matter/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	phase      string
	molecules  int
	seed       int64
	thermostat string
	heat       float64
	lid        float64
	gravity    float64
	configFile string
	preset     string
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "som",
		Short: "states of matter particle simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "runs", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [substance]",
		Short: "run a simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [substance]",
		Short: "interactive terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [substance]",
		Short: "benchmark stepping speed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSubstance,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "temperature series analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	rdfCmd := &cobra.Command{
		Use:   "rdf [substance]",
		Short: "radial distribution function of an equilibrated snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rdfSnapshot,
	}
	addSimFlags(rdfCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [substance]",
		Short: "run an ensemble over consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepSeeds,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&runs, "runs", 8, "number of ensemble members")

	presetsCmd := &cobra.Command{
		Use:   "presets [substance]",
		Short: "list available presets for a substance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for substance: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd, analyzeCmd, rdfCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&phase, "phase", "solid", "initial phase (solid/liquid/gas)")
	cmd.Flags().IntVar(&molecules, "molecules", 0, "molecule count (0 = substance default)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&thermostat, "thermostat", "adaptive", "thermostat (adaptive/isokinetic/andersen/none)")
	cmd.Flags().Float64Var(&heat, "heat", 0, "heat/cool input in [-1, 1]")
	cmd.Flags().Float64Var(&lid, "lid", 0, "target lid height as fraction of initial (0 = leave)")
	cmd.Flags().Float64Var(&gravity, "gravity", 0, "gravity override (0 = default)")
}

// buildConfig assembles the run configuration from preset, config file
// and flags, in increasing priority.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	substance := ""
	if len(args) > 0 {
		substance = args[0]
	}

	if preset != "" {
		if substance == "" {
			return nil, fmt.Errorf("a substance is required with --preset")
		}
		p := config.GetPreset(substance, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(substance))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if substance != "" {
		cfg.Substance = substance
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("phase") {
		cfg.Phase = phase
	}
	if cmd.Flags().Changed("molecules") {
		cfg.Molecules = molecules
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("thermostat") {
		cfg.Thermostat = thermostat
	}
	if cmd.Flags().Changed("heat") {
		cfg.Heating.Amount = heat
	}
	if cmd.Flags().Changed("lid") {
		cfg.Heating.LidFraction = lid
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewMeanTemperature(),
		metrics.NewSetPointTracking(),
		metrics.NewPeakPressure(),
		metrics.NewContainment(),
		metrics.NewMeanKineticEnergy(),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.NewRunner()
	for _, m := range defaultMetrics() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s (%s) for %.1fs...\n", cfg.Substance, cfg.Phase, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	m, err := sim.BuildModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(m, cfg.Dt), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBSTANCE\tPHASE\tTIME\tDURATION\tDT\tTHERMOSTAT\tEXPLODED")
	for _, run := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%v\n",
			run.ID,
			run.Substance,
			run.Phase,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Thermostat,
			run.Exploded,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("substance: %s\n", meta.Substance)
	fmt.Printf("samples: %d\n\n", len(samples))

	columns := []struct {
		caption string
		extract func(sim.Sample) float64
	}{
		{"temperature", func(s sim.Sample) float64 { return s.Temperature }},
		{"set point", func(s sim.Sample) float64 { return s.SetPoint }},
		{"pressure", func(s sim.Sample) float64 { return s.Pressure }},
		{"container height", func(s sim.Sample) float64 { return s.Height }},
	}

	for _, col := range columns {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = col.extract(s)
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

func benchSubstance(cmd *cobra.Command, args []string) error {
	substance := "neon"
	if len(args) > 0 {
		substance = args[0]
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.005, 0.02, 0.05}

	fmt.Printf("benchmarking %s\n\n", substance)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := config.DefaultConfig()
			cfg.Substance = substance
			cfg.Dt = step
			cfg.Duration = dur
			cfg.Seed = 42

			start := time.Now()
			result, err := sim.NewRunner().Run(context.Background(), cfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, result.Steps, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("not enough data")
	}

	fmt.Printf("temperature analysis: %s\n", meta.ID)
	fmt.Printf("substance: %s\n\n", meta.Substance)

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Temperature
	}

	maxLag := len(data) / 4
	acf := analysis.Autocorrelation(data, maxLag)
	graph := asciigraph.Plot(acf,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("temperature autocorrelation"),
	)
	fmt.Println(graph)

	lag := analysis.CorrelationTime(acf)
	fmt.Printf("\ncorrelation time: %.2fs (%d samples)\n\n", float64(lag)*meta.Dt, lag)

	if ps := analysis.PowerSpectrum(data); len(ps) > 1 {
		graph := asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("temperature power spectrum"),
		)
		fmt.Println(graph)
	}
	return nil
}

func rdfSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := sim.NewRunner().Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	m, err := sim.BuildModel(cfg)
	if err != nil {
		return err
	}
	rdf := analysis.RadialDistribution(result.Particles, m.ContainerWidth(), m.ContainerHeight(), 80, 8.0)
	if rdf == nil {
		return fmt.Errorf("not enough particles")
	}

	data := make([]float64, len(rdf))
	for i, p := range rdf {
		data[i] = p.G
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("g(r) for %s after %.1fs", cfg.Substance, cfg.Duration)),
	)
	fmt.Println(graph)

	r, g := analysis.FirstPeak(rdf)
	fmt.Printf("\nfirst peak: g=%.2f at r=%.2f\n", g, r)
	return nil
}

func sweepSeeds(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(runs, cfg.Seed, func() []sim.Metric { return defaultMetrics() })
	start := time.Now()
	results, err := ens.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%d runs in %v\n\n", len(results), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN TEMP\tPEAK PRESSURE\tCONTAINMENT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.3f\n",
			cfg.Seed+int64(i),
			r.Metrics["mean_temperature"],
			r.Metrics["peak_pressure"],
			r.Metrics["containment"],
		)
	}
	return w.Flush()
}
