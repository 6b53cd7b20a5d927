package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/fabiuuh12/Physics-and-Programming/internal/analysis"
	"github.com/fabiuuh12/Physics-and-Programming/internal/bridge"
	"github.com/fabiuuh12/Physics-and-Programming/internal/config"
	"github.com/fabiuuh12/Physics-and-Programming/internal/dyn"
	"github.com/fabiuuh12/Physics-and-Programming/internal/gui"
	"github.com/fabiuuh12/Physics-and-Programming/internal/integrators"
	"github.com/fabiuuh12/Physics-and-Programming/internal/scenes"
	"github.com/fabiuuh12/Physics-and-Programming/internal/storage"
	"github.com/fabiuuh12/Physics-and-Programming/internal/viz"
)

var (
	configFile string
	preset     string
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	sound      bool
	noBridge   bool
	channel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physviz",
		Short: "interactive physics visualizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			return gui.RunInteractive(scenes.DefaultRegistry(), guiOptions(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "runs", "data directory for recordings")
	rootCmd.PersistentFlags().BoolVar(&noBridge, "no-bridge", false, "disable the hand-tracking bridge")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "open one scene in the GUI",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().BoolVar(&sound, "sound", false, "enable sonification")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "render a scene in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenes",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	recordCmd := &cobra.Command{
		Use:   "record [scene]",
		Short: "run a scene headless and record its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  recordScene,
	}
	recordCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	recordCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	recordCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run metrics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded metric channels",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded channel",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&channel, "channel", "", "metric channel (default: first)")

	bridgeCmd := &cobra.Command{
		Use:   "bridge",
		Short: "show live-control bridge status",
		RunE:  bridgeStatus,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [integrator...]",
		Short: "compare integrators on the two-body problem",
		RunE:  benchIntegrators,
	}
	benchCmd.Flags().Float64Var(&dt, "dt", 0.005, "timestep")
	benchCmd.Flags().Float64Var(&duration, "time", 20.0, "duration in seconds")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, presetsCmd, recordCmd,
		runsCmd, exportCmd, exportCSVCmd, plotCmd, analyzeCmd, bridgeCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, an optional preset, an optional config
// file, and finally the CLI flags.
func loadConfig(scene string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scene))
		}
		cfg.Scene = p.Scene
		cfg.Dt = p.Dt
		cfg.Sound = p.Sound
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if scene != "" {
		cfg.Scene = scene
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if sound {
		cfg.Sound = true
	}
	if noBridge {
		cfg.Bridge.Enabled = false
	}
	return cfg, nil
}

func bridgeController(cfg *config.Config) *bridge.Controller {
	if !cfg.Bridge.Enabled {
		return nil
	}
	poller := bridge.NewPoller(cfg.Bridge.Paths)
	if cfg.Bridge.StaleMs > 0 {
		poller.SetStaleAfter(time.Duration(cfg.Bridge.StaleMs) * time.Millisecond)
	}
	return bridge.NewController(poller)
}

func guiOptions(cfg *config.Config) gui.Options {
	return gui.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FPS:    cfg.Window.FPS,
		Dt:     cfg.Dt,
		Sound:  cfg.Sound,
		Bridge: bridgeController(cfg),
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	return gui.Run(scenes.DefaultRegistry(), cfg.Scene, guiOptions(cfg))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	return viz.Run(scenes.DefaultRegistry(), cfg.Scene, cfg.Dt, bridgeController(cfg))
}

func listScenes(cmd *cobra.Command, args []string) error {
	registry := scenes.DefaultRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE")
	for _, name := range registry.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, registry.Title(name))
	}
	return w.Flush()
}

func recordScene(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := scenes.DefaultRegistry()
	scn, err := registry.Get(name)
	if err != nil {
		return err
	}
	scn.Reset(rand.New(rand.NewSource(seed)))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("recording %s for %.1fs at dt=%.5f...\n", name, duration, dt)
	start := time.Now()

	rec := storage.NewRecording()
	for t := 0.0; t < duration; t += dt {
		scn.Step(dt)
		rec.Append(t+dt, scn.Metrics())
	}

	runID, err := st.Save(name, dt, seed, rec)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(rec.Times))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.5fs\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Samples,
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rec, err := st.LoadRecording(runID)
	if err != nil {
		return err
	}
	if len(rec.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(rec.Times))

	names := make([]string, 0, len(rec.Channels))
	for k := range rec.Channels {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(rec.Channels[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rec, err := st.LoadRecording(runID)
	if err != nil {
		return err
	}
	if len(rec.Times) < 2 {
		return fmt.Errorf("no data")
	}

	name := channel
	if name == "" {
		names := make([]string, 0, len(rec.Channels))
		for k := range rec.Channels {
			names = append(names, k)
		}
		sort.Strings(names)
		if len(names) == 0 {
			return fmt.Errorf("no channels")
		}
		name = names[0]
	}
	data, ok := rec.Channels[name]
	if !ok {
		return fmt.Errorf("unknown channel: %s", name)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("channel: %s\n\n", name)

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("series too short")
	}

	graph := asciigraph.Plot(ps[:len(ps)/2],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", name)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func bridgeStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("")
	if err != nil {
		return err
	}

	poller := bridge.NewPoller(cfg.Bridge.Paths)
	snap, status := poller.Poll()

	fmt.Printf("status: %s\n", status)
	if path := poller.Path(); path != "" {
		fmt.Printf("file: %s\n", path)
	}
	if status != bridge.StatusWaiting {
		fmt.Printf("age: %dms\n", snap.Age(time.Now()).Milliseconds())
		fmt.Printf("hand: %s  gesture: %s\n", snap.Label, snap.Gesture)
		fmt.Printf("zoom=%.3f rotation=%.1f pitch=%.1f inc=%d dec=%d\n",
			snap.Zoom, snap.RotationDeg, snap.PitchDeg, snap.NIncCount, snap.NDecCount)
	}
	return nil
}

func benchIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{"euler", "rk4", "rk45", "leapfrog"}
	}

	sys, x0 := scenes.NewTwoBody().System()
	ham, ok := sys.(dyn.Hamiltonian)
	if !ok {
		return fmt.Errorf("two-body system has no energy function")
	}

	fmt.Printf("two-body benchmark (dt=%.4f, duration=%.1fs)\n\n", dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY_DRIFT\tTIME")

	for _, name := range names {
		integ, err := integratorByName(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\n", name, err)
			continue
		}
		start := time.Now()
		drift := analysis.EnergyDrift(sys, ham, integ, x0, dt, duration)
		fmt.Fprintf(w, "%s\t%.3e\t%v\n", name, drift, time.Since(start))
	}
	return w.Flush()
}

func integratorByName(name string) (dyn.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	case "leapfrog":
		return integrators.NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}
