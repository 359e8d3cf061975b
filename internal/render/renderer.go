// Package render orchestrates one frame of the plotting pipeline: field
// resolution, cross-section extraction, color scaling, overlay contours
// and persistence, plus the animation loop over output indices.
package render

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mwaite/fieldview/internal/colorscale"
	"github.com/mwaite/fieldview/internal/config"
	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/grid"
	"github.com/mwaite/fieldview/internal/section"
)

// SpeedFunc supplies a streamline reference speed when Options.Speed is
// the prompt sentinel. It is the pipeline's only suspension point.
type SpeedFunc func() (float64, error)

// PlotInfo aggregates one rendered frame. A multi-index run overwrites it
// each iteration and returns only the last frame's value.
type PlotInfo struct {
	XVar, YVar []float64
	Data1      *mat.Dense
	Var1       string
	Data2      *mat.Dense // nil when no overlay was drawn
	Var2       string
	Dimen      grid.Axis
	Slice      float64
}

// Renderer draws one cross-section frame per output index onto its
// Surface.
type Renderer struct {
	grid    *grid.Grid
	res     *field.Resolver
	params  config.Params
	opts    *config.Options
	surface *Surface

	// SpeedFn resolves the streamline reference speed when the sentinel is
	// set. Leaving it nil makes the sentinel a configuration error.
	SpeedFn SpeedFunc
}

func New(reader field.Reader, g *grid.Grid, params config.Params, opts *config.Options) *Renderer {
	return &Renderer{
		grid:    grid.BuildRegularView(g),
		res:     field.NewResolver(reader, g),
		params:  params,
		opts:    opts,
		surface: NewSurface(),
	}
}

func (r *Renderer) Surface() *Surface { return r.surface }

// Render draws one frame for the named field at one output index.
func (r *Renderer) Render(fieldName string, step int) (*PlotInfo, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	dimen, err := grid.ParseAxis(r.opts.Dimen)
	if err != nil {
		return nil, config.Errorf("%v", err)
	}
	req := field.Parse(fieldName)

	if req.Kind == field.Streamline && r.grid.Mapped {
		log.Printf("render: streamline on a mapped grid is untested terrain")
	}

	// DataReady: resolve and cut the primary field.
	frame, err := r.res.Resolve(req, step, dimen, r.opts.Slice)
	if err != nil {
		return nil, err
	}
	sec, err := section.Extract(frame, dimen, r.opts.Slice, r.grid)
	if err != nil {
		return nil, err
	}
	hskip, vskip := r.skips(dimen)
	sec = sec.Subsample(hskip, vskip)

	// Color scale comes before any drawing so trim misconfiguration aborts
	// the frame with nothing on the surface.
	scale, err := colorscale.Choose(req, sec.Data, r.opts)
	if err != nil {
		return nil, err
	}
	if r.opts.Trim {
		colorscale.Trim(sec.Data, scale.Min, scale.Max)
	}

	// Init and TitleAndLabels.
	p := r.surface.begin()
	p.Title.Text = r.title(req, dimen, step)
	xl, yl := axisLabels(dimen, r.grid.NDims)
	p.X.Label.Text, p.Y.Label.Text = xl, yl

	// Styled: primary layer.
	if err := r.drawPrimary(req, sec, scale); err != nil {
		return nil, err
	}

	// Overlaid: secondary contours plus the fixed Ri critical line.
	ov, err := r.composeOverlay(req, sec, step, dimen)
	if err != nil {
		return nil, err
	}
	if ov != nil {
		r.drawContourLines(ov.Section, r.opts.NContours, ov.LineColor, "overlay")
	}
	if req.Kind == field.Richardson {
		r.drawFixedContour(sec, 0.25, "ri-critical")
	}

	// Finalized: terrain outline, aspect, clip, persistence.
	if r.grid.Mapped {
		r.drawTerrain(sec)
	}
	r.finalizeAxes(sec)

	if r.opts.SaveFig {
		if err := r.persist(step, scale); err != nil {
			return nil, err
		}
	}

	info := &PlotInfo{
		XVar:  sec.X,
		YVar:  sec.Y,
		Data1: sec.Data,
		Var1:  req.Name,
		Dimen: dimen,
		Slice: r.opts.Slice,
	}
	if ov != nil {
		info.Data2 = ov.Section.Data
		info.Var2 = ov.Name
	}
	return info, nil
}

// skips maps the configured per-axis skip factors onto the section's
// horizontal and vertical plot axes.
func (r *Renderer) skips(dimen grid.Axis) (hskip, vskip int) {
	switch dimen {
	case grid.AxisX:
		return r.opts.YSkip, r.opts.ZSkip
	case grid.AxisY:
		return r.opts.XSkip, r.opts.ZSkip
	default:
		return r.opts.XSkip, r.opts.YSkip
	}
}

func (r *Renderer) title(req field.Request, dimen grid.Axis, step int) string {
	name := req.Name
	if req.Reduced() {
		name = fmt.Sprintf("%s (spanwise %s)", req.Base, req.Kind)
	}
	out := name
	if r.grid.NDims == 3 {
		out += fmt.Sprintf(", %s = %g", dimen, r.opts.Slice)
	}
	if r.params.PlotInterval > 0 {
		out += fmt.Sprintf(", t = %g s", float64(step)*r.params.PlotInterval)
	} else {
		out += fmt.Sprintf(", output %d", step)
	}
	return out
}

// axisLabels picks the two axes orthogonal to the cross-section axis.
func axisLabels(dimen grid.Axis, ndims int) (string, string) {
	if ndims == 2 {
		return "x (m)", "z (m)"
	}
	switch dimen {
	case grid.AxisX:
		return "y (m)", "z (m)"
	case grid.AxisZ:
		return "x (m)", "y (m)"
	default:
		return "x (m)", "z (m)"
	}
}

func (r *Renderer) drawPrimary(req field.Request, sec *section.Section, scale *colorscale.Scale) error {
	// Streamline fields ignore the configured style.
	if req.Kind == field.Streamline {
		speed := r.opts.Speed
		if speed == config.SpeedPromptValue {
			if r.SpeedFn == nil {
				return config.Errorf("streamline requires a reference speed (speed option or callback)")
			}
			v, err := r.SpeedFn()
			if err != nil {
				return fmt.Errorf("render: reference speed: %w", err)
			}
			speed = v
		}
		vf := vecField{x: sec.X, y: sec.Y, u: sec.Data, v: sec.V, ref: speed}
		fp := plotter.NewField(vf)
		fp.LineStyle.Color = color.RGBA{B: 0xaa, A: 0xff}
		r.surface.add("streamline", fp)
		return nil
	}

	hg := sectionGrid(sec)
	switch r.opts.Style {
	case "pcolor":
		hm := plotter.NewHeatMap(hg, scale.ColorMap.Palette(r.opts.NLevels))
		hm.Min, hm.Max = scale.Min, scale.Max
		r.surface.add("heatmap", hm)
	case "contourf":
		// Filled contours: a level-quantized heatmap under the contour
		// lines of the same levels.
		hm := plotter.NewHeatMap(hg, scale.ColorMap.Palette(r.opts.NLevels))
		hm.Min, hm.Max = scale.Min, scale.Max
		r.surface.add("heatmap", hm)
		levels := colorscale.Levels(scale.Min, scale.Max, r.opts.NLevels)
		c := plotter.NewContour(hg, levels, uniform{color.Gray{Y: 0x30}})
		r.surface.add("contourf-lines", c)
	case "contour":
		levels := colorscale.Levels(scale.Min, scale.Max, r.opts.NLevels)
		c := plotter.NewContour(hg, levels, scale.ColorMap.Palette(r.opts.NLevels))
		r.surface.add("contour", c)
	}
	return nil
}

func (r *Renderer) drawContourLines(sec *section.Section, n int, col color.Color, layer string) {
	hg := sectionGrid(sec)
	lo, hi := matBounds(hg.m)
	if lo == hi {
		return
	}
	c := plotter.NewContour(hg, colorscale.Levels(lo, hi, n), uniform{col})
	r.surface.add(layer, c)
}

func (r *Renderer) drawFixedContour(sec *section.Section, level float64, layer string) {
	hg := sectionGrid(sec)
	c := plotter.NewContour(hg, []float64{level}, uniform{color.Black})
	r.surface.add(layer, c)
}

func (r *Renderer) drawTerrain(sec *section.Section) {
	xs, zs := section.TerrainLine(sec)
	if xs == nil {
		return
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: zs[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return
	}
	line.Color = color.Black
	line.Width = vg.Points(1.5)
	r.surface.add("terrain", line)
}

func (r *Renderer) finalizeAxes(sec *section.Section) {
	xr := spanOf(sec.X)
	yr := spanOf(sec.Y)
	if len(r.opts.Axis) == 4 {
		p := r.surface.Plot
		p.X.Min, p.X.Max = r.opts.Axis[0], r.opts.Axis[1]
		p.Y.Min, p.Y.Max = r.opts.Axis[2], r.opts.Axis[3]
		xr = r.opts.Axis[1] - r.opts.Axis[0]
		yr = r.opts.Axis[3] - r.opts.Axis[2]
	}
	r.surface.setAspect(xr, yr)
}

func (r *Renderer) persist(step int, scale *colorscale.Scale) error {
	if err := os.MkdirAll(r.opts.Dir, 0755); err != nil {
		return &ResourceError{Path: r.opts.Dir, Wrapped: err}
	}
	path := filepath.Join(r.opts.Dir, fmt.Sprintf("%s_%d.png", r.opts.Filename, step))
	return r.surface.save(path, scale.ColorMap, r.opts.Colorbar)
}

// spanOf is safe here because coordinate vectors never carry NaN.
func spanOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Max(v) - floats.Min(v)
}

func matBounds(m *mat.Dense) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}
