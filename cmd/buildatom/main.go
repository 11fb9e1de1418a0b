package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/buildatom/internal/config"
	"github.com/san-kum/buildatom/internal/export"
	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
	"github.com/san-kum/buildatom/internal/sim"
	"github.com/san-kum/buildatom/internal/storage"
	"github.com/san-kum/buildatom/internal/tui"
	"github.com/san-kum/buildatom/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	logLevel   string
	theme      string

	from      string
	speeds    []float64
	save      bool
	plot      bool
	jsonOut   bool
	plotWidth int
	svgOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "buildatom",
		Short:        "keyboard-driven atom builder",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".buildatom", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Float64("speed", config.DefaultSpeed, "particle speed (units/s)")
	pf.Float64("hover-scale", placement.DefaultShellHoverScale, "shell hover scale")
	pf.Float64("slot-scale", placement.DefaultSlotPlacementScale, "slot placement scale")
	pf.Int("refocus-delay", config.DefaultRefocusDelayMs, "refocus delay (ms)")
	pf.Int("tick", config.DefaultTickMs, "tick interval (ms)")
	pf.Float64("dt", config.DefaultDt, "trace timestep (s)")
	pf.Float64("duration", config.DefaultDuration, "trace duration (s)")
	pf.Int("protons", config.DefaultStock, "protons in the bucket")
	pf.Int("neutrons", config.DefaultStock, "neutrons in the bucket")
	pf.Int("electrons", config.DefaultStock, "electrons in the bucket")

	rootCmd.Flags().StringVar(&theme, "theme", "classic", "color theme")

	traceCmd := &cobra.Command{
		Use:   "trace [option]",
		Short: "run the motion controller headless toward an option (nucleus, inner, outer:2, ...)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&from, "from", "", "start point as x,y (default: bucket row)")
	traceCmd.Flags().Float64SliceVar(&speeds, "speeds", nil, "trace several speeds concurrently")
	traceCmd.Flags().BoolVar(&save, "save", false, "save the trace to the data directory")
	traceCmd.Flags().BoolVar(&plot, "plot", true, "plot distance to destination")
	traceCmd.Flags().BoolVar(&jsonOut, "json", false, "print the trace as JSON")
	traceCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	traceCmd.Flags().StringVar(&svgOut, "svg", "", "write the first trace path as SVG")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "print every placement option and where a particle lands on it",
		RunE:  printLayout,
	}
	layoutCmd.Flags().StringVar(&svgOut, "svg", "", "also write the shell layout as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSHELLS\tSPEED\tREFOCUS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				shells := make([]string, len(cfg.Shells))
				for i, s := range cfg.Shells {
					shells[i] = fmt.Sprintf("%s r=%.0f n=%d", s.Shell, s.Radius, s.Slots)
				}
				fmt.Fprintf(w, "%s\t%s\t%.0f\t%dms\n", name, strings.Join(shells, ", "), cfg.Speed, cfg.RefocusDelayMs)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(traceCmd, listCmd, plotCmd, exportJSONCmd, layoutCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Resolve(configFile, preset, cmd.Flags())
}

func newLogger() (*log.Logger, func(), error) {
	if logFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "buildatom",
	})
	return logger, func() { f.Close() }, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting", "speed", cfg.Speed, "refocus", cfg.RefocusDelay(), "shells", len(cfg.Shells))
	return tui.Run(cfg, tui.Options{Logger: logger, Theme: theme})
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	geo, err := cfg.Geometry()
	if err != nil {
		return err
	}
	reg, err := placement.NewRegistry(geo)
	if err != nil {
		return err
	}

	id, err := placement.ParseOptionID(args[0])
	if err != nil {
		return err
	}
	opt, err := reg.Lookup(id)
	if err != nil {
		return err
	}
	to := cfg.PlacementSettings().Landing(opt)

	start, err := parsePoint(from, reg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}
	runSpeeds := speeds
	if len(runSpeeds) == 0 {
		runSpeeds = []float64{cfg.Speed}
	}
	results, err := sim.Sweep(ctx, start, to, runSpeeds, simCfg)
	if err != nil {
		return err
	}

	if jsonOut {
		for _, r := range results {
			if err := storage.WriteJSON(os.Stdout, simCfg, r); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Printf("trace: %s -> %s (%s)\n", start, to, id)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tSTEPS\tARRIVED\tREMAINING")
	for _, r := range results {
		fmt.Fprintf(w, "%.0f\t%d\t%v\t%.2f\n", r.Speed, r.StepsTaken, r.Arrived, r.Distances[len(r.Distances)-1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if svgOut != "" {
		svg := export.PathToSVG(results[0].Positions, 400, 400, "#00ff00")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, r := range results {
			runID, err := st.Save(start, to, simCfg, r)
			if err != nil {
				return err
			}
			fmt.Printf("saved: %s\n", runID)
		}
	}

	if plot {
		series := make([][]float64, len(results))
		for i, r := range results {
			series[i] = r.Distances
		}
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("distance to destination"),
		))
	}
	return nil
}

// parsePoint reads "x,y". Empty means the middle of the bucket row.
func parsePoint(s string, reg *placement.Registry) (geom.Vec2, error) {
	if s == "" {
		outer, _ := reg.Geometry(placement.OuterShell)
		return geom.V(0, -(outer.Radius + 50)), nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Vec2{}, fmt.Errorf("bad point %q, want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	return geom.V(x, y), nil
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
	fmt.Fprintln(w, "ID\tTIME\tFROM\tTO\tSPEED\tSTEPS\tARRIVED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f,%.1f\t%.1f,%.1f\t%.0f\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.From[0], run.From[1],
			run.To[0], run.To[1],
			run.Speed,
			run.StepsTaken,
			run.Arrived,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	result, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(result.Distances) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("speed: %.0f\n", result.Speed)
	fmt.Printf("samples: %d\n\n", len(result.Distances))

	xs := make([]float64, len(result.Positions))
	ys := make([]float64, len(result.Positions))
	for i, p := range result.Positions {
		xs[i], ys[i] = p.X, p.Y
	}

	for _, s := range []struct {
		caption string
		data    []float64
	}{
		{"distance to destination", result.Distances},
		{"x", xs},
		{"y", ys},
	} {
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.LoadMetadata(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, sim.Config{Dt: meta.Dt, Duration: meta.Duration}, result)
}

func printLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	geo, err := cfg.Geometry()
	if err != nil {
		return err
	}
	reg, err := placement.NewRegistry(geo)
	if err != nil {
		return err
	}
	settings := cfg.PlacementSettings()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPTION\tLEVEL\tANCHOR\tLANDING")
	for _, o := range reg.All() {
		level := "top"
		if o.ID.Kind == placement.KindSlot {
			level = "slot"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, level, o.Anchor, settings.Landing(o))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if svgOut == "" {
		return nil
	}
	scene := viz.Scene{}
	for _, g := range geo {
		scene.Rings = append(scene.Rings, g.Radius)
		scene.Extent = max(scene.Extent, g.Radius*settings.SlotPlacementScale+particle.ElectronRadius)
	}
	canvas := viz.NewCanvas(80, 40)
	scene.Draw(canvas)
	proj := scene.Projection(canvas)
	for _, o := range reg.All() {
		if o.ID.Kind != placement.KindSlot {
			continue
		}
		x, y := proj.Pixel(settings.Landing(o))
		canvas.FillCircle(x, y, 1)
	}
	return os.WriteFile(svgOut, []byte(export.CanvasToSVG(canvas, 4)), 0644)
}
