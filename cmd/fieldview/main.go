package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwaite/fieldview/internal/config"
	"github.com/mwaite/fieldview/internal/export"
	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/grid"
	"github.com/mwaite/fieldview/internal/rawio"
	"github.com/mwaite/fieldview/internal/render"
	"github.com/mwaite/fieldview/internal/section"
	"github.com/mwaite/fieldview/internal/viz"
)

var (
	dataDir string
	nx, ny  int
	nzPts   int
	ndims   int
	mapped  bool

	plotInterval float64

	step       int
	startStep  int
	endStep    int
	dimen      string
	sliceLoc   float64
	style      string
	cont2      string
	trim       bool
	colaxis    []float64
	axisClip   []float64
	xskp       int
	yskp       int
	zskp       int
	nlevels    int
	ncontours  int
	noColorbar bool
	saveFig    bool
	outDir     string
	outName    string
	speed      float64
	configFile string
	preset     string
	frameRate  int
	profileRow int
	workers    int
	exportFmt  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldview",
		Short: "cross-section plots of gridded fluid-simulation output",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".", "snapshot directory")
	rootCmd.PersistentFlags().IntVar(&nx, "nx", 0, "grid points in x")
	rootCmd.PersistentFlags().IntVar(&ny, "ny", 1, "grid points in y")
	rootCmd.PersistentFlags().IntVar(&nzPts, "nz", 0, "grid points in z")
	rootCmd.PersistentFlags().IntVar(&ndims, "ndims", 2, "domain dimensionality (2 or 3)")
	rootCmd.PersistentFlags().BoolVar(&mapped, "mapped", false, "terrain-following grid")
	rootCmd.PersistentFlags().Float64Var(&plotInterval, "plot-interval", 0, "seconds per output index (0 = unknown)")

	plotCmd := &cobra.Command{
		Use:   "plot [field]",
		Short: "render one cross-section frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	addPlotFlags(plotCmd)
	plotCmd.Flags().IntVar(&step, "t", 0, "output index")

	animateCmd := &cobra.Command{
		Use:   "animate [field]",
		Short: "render a sequence of output indices",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnimate,
	}
	addPlotFlags(animateCmd)
	animateCmd.Flags().IntVar(&startStep, "t0", 0, "first output index")
	animateCmd.Flags().IntVar(&endStep, "t1", 0, "last output index")
	animateCmd.Flags().IntVar(&workers, "workers", 1, "concurrent frames for saved runs")

	liveCmd := &cobra.Command{
		Use:   "live [field]",
		Short: "animate cross-sections in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&dimen, "dimen", config.DefaultDimen, "cross-section axis")
	liveCmd.Flags().Float64Var(&sliceLoc, "slice", 0, "cross-section location")
	liveCmd.Flags().IntVar(&startStep, "t0", 0, "first output index")
	liveCmd.Flags().IntVar(&endStep, "t1", 0, "last output index")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "frame rate")

	previewCmd := &cobra.Command{
		Use:   "preview [field]",
		Short: "ascii profile of one cross-section",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().StringVar(&dimen, "dimen", config.DefaultDimen, "cross-section axis")
	previewCmd.Flags().Float64Var(&sliceLoc, "slice", 0, "cross-section location")
	previewCmd.Flags().IntVar(&step, "t", 0, "output index")
	previewCmd.Flags().IntVar(&profileRow, "row", -1, "profile row index (-1 = middle)")

	exportCmd := &cobra.Command{
		Use:   "export [field]",
		Short: "export one cross-section as CSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&dimen, "dimen", config.DefaultDimen, "cross-section axis")
	exportCmd.Flags().Float64Var(&sliceLoc, "slice", 0, "cross-section location")
	exportCmd.Flags().IntVar(&step, "t", 0, "output index")
	exportCmd.Flags().StringVar(&exportFmt, "format", "csv", "csv or json")

	presetsCmd := &cobra.Command{
		Use:   "presets [field]",
		Short: "list option presets for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for field: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(plotCmd, animateCmd, liveCmd, previewCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dimen, "dimen", config.DefaultDimen, "cross-section axis (X, Y or Z)")
	cmd.Flags().Float64Var(&sliceLoc, "slice", 0, "cross-section location")
	cmd.Flags().StringVar(&style, "style", config.DefaultStyle, "pcolor, contourf or contour")
	cmd.Flags().StringVar(&cont2, "cont2", config.DefaultCont2, "secondary contour field")
	cmd.Flags().BoolVar(&trim, "trim", false, "clamp data to the color axis")
	cmd.Flags().Float64SliceVar(&colaxis, "colaxis", nil, "color axis range c1,c2")
	cmd.Flags().Float64SliceVar(&axisClip, "axis", nil, "view clip x1,x2,z1,z2")
	cmd.Flags().IntVar(&xskp, "xskp", 1, "x skip factor")
	cmd.Flags().IntVar(&yskp, "yskp", 1, "y skip factor")
	cmd.Flags().IntVar(&zskp, "zskp", 1, "z skip factor")
	cmd.Flags().IntVar(&nlevels, "nlevels", config.DefaultLevels, "colormap level count")
	cmd.Flags().IntVar(&ncontours, "ncontours", config.DefaultContours, "overlay contour count")
	cmd.Flags().BoolVar(&noColorbar, "no-colorbar", false, "drop the colorbar")
	cmd.Flags().BoolVar(&saveFig, "save", false, "persist the frame as PNG")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().StringVar(&outName, "filename", config.DefaultFilename, "output file prefix")
	cmd.Flags().Float64Var(&speed, "speed", config.SpeedPromptValue, "streamline reference speed (-1 prompts)")
	cmd.Flags().StringVar(&configFile, "config", "", "options file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named option preset for the field")
}

// buildOptions layers preset, config file and explicit flags, in that
// order of increasing precedence.
func buildOptions(cmd *cobra.Command, fieldName string) (*config.Options, error) {
	opt := config.Defaults()

	if preset != "" {
		p := config.GetPreset(fieldName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %v)",
				preset, fieldName, config.ListPresets(fieldName))
		}
		*opt = *p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, opt); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("dimen", func() { opt.Dimen = dimen })
	set("slice", func() { opt.Slice = sliceLoc })
	set("style", func() { opt.Style = style })
	set("cont2", func() { opt.Cont2 = cont2 })
	set("trim", func() { opt.Trim = trim })
	set("colaxis", func() { opt.Colaxis = colaxis })
	set("axis", func() { opt.Axis = axisClip })
	set("xskp", func() { opt.XSkip = xskp })
	set("yskp", func() { opt.YSkip = yskp })
	set("zskp", func() { opt.ZSkip = zskp })
	set("nlevels", func() { opt.NLevels = nlevels })
	set("ncontours", func() { opt.NContours = ncontours })
	set("no-colorbar", func() { opt.Colorbar = !noColorbar })
	set("save", func() { opt.SaveFig = saveFig })
	set("out", func() { opt.Dir = outDir })
	set("filename", func() { opt.Filename = outName })
	set("speed", func() { opt.Speed = speed })
	return opt, nil
}

// openDomain reads the grid and builds the snapshot store.
func openDomain() (*rawio.Store, *grid.Grid, error) {
	if nx < 1 || nzPts < 1 {
		return nil, nil, fmt.Errorf("grid shape required: --nx and --nz")
	}
	st := rawio.Open(dataDir, nx, ny, nzPts)
	g, err := st.ReadGrid(ndims, mapped)
	if err != nil {
		return nil, nil, err
	}
	return st, g, nil
}

// promptSpeed asks for a streamline reference speed on the terminal. It is
// injected as the renderer's speed callback, so only streamline frames
// with the sentinel ever block on it.
func promptSpeed() (float64, error) {
	fmt.Print("reference speed (m/s): ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return 0, fmt.Errorf("no reference speed supplied")
	}
	return strconv.ParseFloat(sc.Text(), 64)
}

func newRenderer(cmd *cobra.Command, fieldName string) (*render.Renderer, error) {
	opt, err := buildOptions(cmd, fieldName)
	if err != nil {
		return nil, err
	}
	st, g, err := openDomain()
	if err != nil {
		return nil, err
	}
	params := config.Params{NDims: ndims, PlotInterval: plotInterval, Nz: nzPts}
	r := render.New(st, g, params, opt)
	r.SpeedFn = promptSpeed
	return r, nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	r, err := newRenderer(cmd, args[0])
	if err != nil {
		return err
	}
	info, err := r.Render(args[0], step)
	if err != nil {
		return err
	}
	fmt.Printf("rendered %s (%s = %g), %dx%d points\n",
		info.Var1, info.Dimen, info.Slice, len(info.XVar), len(info.YVar))
	if info.Var2 != "" {
		fmt.Printf("overlay: %s\n", info.Var2)
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	if endStep < startStep {
		return fmt.Errorf("t1 must be >= t0")
	}
	steps := make([]int, 0, endStep-startStep+1)
	for t := startStep; t <= endStep; t++ {
		steps = append(steps, t)
	}

	if workers > 1 {
		if !saveFig {
			return fmt.Errorf("concurrent animation only makes sense with --save")
		}
		opt, err := buildOptions(cmd, args[0])
		if err != nil {
			return err
		}
		st, g, err := openDomain()
		if err != nil {
			return err
		}
		params := config.Params{NDims: ndims, PlotInterval: plotInterval, Nz: nzPts}
		b := render.NewBatch(func() *render.Renderer {
			return render.New(st, g, params, opt)
		}, workers)
		if err := b.Run(context.Background(), args[0], steps); err != nil {
			return err
		}
		fmt.Printf("rendered %d frames of %s\n", len(steps), args[0])
		return nil
	}

	r, err := newRenderer(cmd, args[0])
	if err != nil {
		return err
	}
	info, err := render.NewDriver(r).Run(args[0], steps)
	if err != nil {
		return err
	}
	fmt.Printf("rendered %d frames of %s; last index %d\n", len(steps), info.Var1, steps[len(steps)-1])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	st, g, err := openDomain()
	if err != nil {
		return err
	}
	ax, err := grid.ParseAxis(dimen)
	if err != nil {
		return err
	}
	if endStep < startStep {
		return fmt.Errorf("t1 must be >= t0")
	}
	steps := make([]int, 0, endStep-startStep+1)
	for t := startStep; t <= endStep; t++ {
		steps = append(steps, t)
	}
	res := field.NewResolver(st, g)
	m := viz.NewModel(res, g, args[0], ax, sliceLoc, steps, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func extractSection(fieldName string) (*section.Section, error) {
	st, g, err := openDomain()
	if err != nil {
		return nil, err
	}
	ax, err := grid.ParseAxis(dimen)
	if err != nil {
		return nil, err
	}
	res := field.NewResolver(st, g)
	frame, err := res.Resolve(field.Parse(fieldName), step, ax, sliceLoc)
	if err != nil {
		return nil, err
	}
	return section.Extract(frame, ax, sliceLoc, g)
}

func runPreview(cmd *cobra.Command, args []string) error {
	sec, err := extractSection(args[0])
	if err != nil {
		return err
	}
	fmt.Println(viz.ProfileGraph(sec, profileRow, 80, 15))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	sec, err := extractSection(args[0])
	if err != nil {
		return err
	}
	switch exportFmt {
	case "csv":
		return export.CSV(os.Stdout, sec)
	case "json":
		return export.JSON(os.Stdout, sec, step)
	}
	return fmt.Errorf("unknown export format %q (want csv or json)", exportFmt)
}
