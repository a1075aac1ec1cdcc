package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/galaxy/internal/config"
	"github.com/san-kum/galaxy/internal/export"
	"github.com/san-kum/galaxy/internal/gui"
	"github.com/san-kum/galaxy/internal/logging"
	"github.com/san-kum/galaxy/internal/sim"
	"github.com/san-kum/galaxy/internal/stats"
	"github.com/san-kum/galaxy/internal/viz"
)

var (
	configFile string
	preset     string
	seed       int64
	debug      bool

	// Parameter overrides, applied only when set
	count      int
	size       float64
	radius     float64
	branches   int
	spin       float64
	randomness float64
	power      float64
	inside     string
	outside    string
	applyRand  bool
	accents    bool

	// export
	format    string
	outPath   string
	width     int
	height    int
	exportAt  float64
	histBins  int
	debugFile string
)

// main opens the window when no subcommand is given and exits 1 if the
// command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "galaxy",
		Short:        "spiral galaxy point cloud viewer",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.IntVar(&count, "count", config.DefaultCount, "number of points")
	pf.Float64Var(&size, "size", config.DefaultSize, "point size")
	pf.Float64Var(&radius, "radius", config.DefaultRadius, "galaxy radius")
	pf.IntVar(&branches, "branches", config.DefaultBranches, "number of spiral arms")
	pf.Float64Var(&spin, "spin", config.DefaultSpin, "arm twist per unit radius")
	pf.Float64Var(&randomness, "randomness", config.DefaultRandomness, "scatter amount")
	pf.Float64Var(&power, "power", config.DefaultRandomnessPower, "scatter falloff exponent")
	pf.StringVar(&inside, "inside", config.DefaultInsideColor, "core color (hex)")
	pf.StringVar(&outside, "outside", config.DefaultOutsideColor, "rim color (hex)")
	pf.BoolVar(&applyRand, "apply-randomness", false, "scale scatter by randomness*radius")
	pf.BoolVar(&accents, "accents", false, "tint some points with accent colors")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the galaxy window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "view the galaxy in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&debugFile, "log", "galaxy-debug.log", "log file used with --debug")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate headless and print statistics",
		RunE:  runGenerate,
	}
	generateCmd.Flags().IntVar(&histBins, "bins", 40, "radial histogram bins")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render a still frame",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "", "svg, png, json or csv (default from --out, else svg)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default galaxy.<format>)")
	exportCmd.Flags().IntVar(&width, "width", 1280, "image width")
	exportCmd.Flags().IntVar(&height, "height", 720, "image height")
	exportCmd.Flags().Float64Var(&exportAt, "time", 0, "seconds of rotation to apply")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), cfg)
		},
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, generateCmd, exportCmd, presetsCmd, configCmd)
	return rootCmd
}

// loadConfig resolves defaults < preset < config file < explicit flags, then
// clamps the galaxy parameters.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg.Galaxy = p
	}
	if configFile != "" {
		if err := config.LoadInto(cfg, configFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", configFile, err)
		}
	}

	flags := cmd.Flags()
	g := &cfg.Galaxy
	if flags.Changed("count") {
		g.Count = count
	}
	if flags.Changed("size") {
		g.Size = size
	}
	if flags.Changed("radius") {
		g.Radius = radius
	}
	if flags.Changed("branches") {
		g.Branches = branches
	}
	if flags.Changed("spin") {
		g.Spin = spin
	}
	if flags.Changed("randomness") {
		g.Randomness = randomness
	}
	if flags.Changed("power") {
		g.RandomnessPower = power
	}
	for name, dst := range map[string]*config.Color{"inside": &g.InsideColor, "outside": &g.OutsideColor} {
		if !flags.Changed(name) {
			continue
		}
		val := inside
		if name == "outside" {
			val = outside
		}
		c, err := config.ParseColor(val)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = c
	}
	if flags.Changed("apply-randomness") {
		cfg.Generator.ApplyRandomness = applyRand
	}
	if flags.Changed("accents") {
		cfg.Generator.AccentColors = accents
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	cfg.Galaxy = cfg.Galaxy.Clamp()
	return cfg, nil
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.New("galaxy", cfg.Debug)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	err = gui.Run(ctx, cfg, newLogger(cfg))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	log := logging.Nop()
	if cfg.Debug {
		f, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		log = logging.NewWithWriters("galaxy", true, f, f)
	}
	return viz.Run(cfg, log)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg, nil, newLogger(cfg))
	if err != nil {
		return err
	}
	return printStats(cmd.OutOrStdout(), s, histBins)
}

func printStats(out io.Writer, s *sim.Session, bins int) error {
	buf := s.Buffers()
	p := s.Parameters()
	sum := stats.Summarize(buf)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed\t%d\n", s.Generator.Seed())
	fmt.Fprintf(w, "points\t%d\n", sum.Points)
	fmt.Fprintf(w, "branches\t%d\n", p.Branches)
	fmt.Fprintf(w, "bounds x\t[%.3f, %.3f]\n", sum.Min[0], sum.Max[0])
	fmt.Fprintf(w, "bounds y\t[%.3f, %.3f]\n", sum.Min[1], sum.Max[1])
	fmt.Fprintf(w, "bounds z\t[%.3f, %.3f]\n", sum.Min[2], sum.Max[2])
	fmt.Fprintf(w, "mean radius\t%.4f\n", sum.MeanRadius)
	fmt.Fprintf(w, "max radius\t%.4f\n", sum.MaxRadius)
	fmt.Fprintf(w, "thickness\t%.4f\n", sum.Thickness)
	mean := config.Color{R: sum.MeanColor[0], G: sum.MeanColor[1], B: sum.MeanColor[2]}
	fmt.Fprintf(w, "mean color\t%s\n", mean.Hex())

	occ := stats.BranchOccupancy(p.Count, p.Branches)
	parts := make([]string, len(occ))
	for i, n := range occ {
		parts[i] = fmt.Sprint(n)
	}
	fmt.Fprintf(w, "per branch\t%s\n", strings.Join(parts, " "))
	if err := w.Flush(); err != nil {
		return err
	}

	if sum.Points == 0 {
		return nil
	}
	hist := stats.RadialHistogram(buf, bins, p.Radius)
	graph := asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("radial density (0..%.2f)", p.Radius)),
	)
	_, err := fmt.Fprintf(out, "\n%s\n", graph)
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	f, err := resolveFormat(format, outPath)
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = "galaxy." + string(f)
	}

	s, err := sim.New(cfg, nil, log)
	if err != nil {
		return err
	}
	frame, err := export.Capture(s, width, height, exportAt)
	if err != nil {
		return err
	}
	if err := export.WriteFile(path, f, frame); err != nil {
		return err
	}
	log.Infof("wrote %s (%s, %d points)", path, f, frame.Buffers.Len())
	return nil
}

// resolveFormat prefers --format, then the --out extension, then svg.
func resolveFormat(flag, path string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if path != "" {
		return export.FormatFromPath(path)
	}
	return export.SVG, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNT\tRADIUS\tBRANCHES\tSPIN\tRANDOMNESS\tPOWER\tINSIDE\tOUTSIDE")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%.2f\t%.3f\t%.2f\t%s\t%s\n",
			name, p.Count, p.Radius, p.Branches, p.Spin, p.Randomness, p.RandomnessPower,
			p.InsideColor.Hex(), p.OutsideColor.Hex())
	}
	return w.Flush()
}
