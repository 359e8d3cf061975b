package render

import (
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Surface is the explicit render-target handle. Each frame clears and
// redraws it in place; sharing one surface between concurrent runs is the
// caller's responsibility.
type Surface struct {
	Plot   *plot.Plot // most recent frame
	Layers []string   // draw layers of the most recent frame, in order

	Width, Height vg.Length
	Visible       bool
}

func NewSurface() *Surface {
	return &Surface{Width: 10 * vg.Inch, Height: 5 * vg.Inch, Visible: true}
}

// begin clears the prior frame and opens a fresh drawing context.
func (s *Surface) begin() *plot.Plot {
	s.Plot = plot.New()
	s.Layers = s.Layers[:0]
	return s.Plot
}

func (s *Surface) add(layer string, p plot.Plotter) {
	s.Plot.Add(p)
	s.Layers = append(s.Layers, layer)
}

// HasLayer reports whether the most recent frame drew the named layer.
func (s *Surface) HasLayer(name string) bool {
	for _, l := range s.Layers {
		if l == name {
			return true
		}
	}
	return false
}

// setAspect applies the aspect-ratio policy: when the horizontal extent
// dwarfs the vertical one (ratio above 5) the canvas keeps a fixed
// letterbox shape; otherwise its height tracks the data proportions.
func (s *Surface) setAspect(xRange, yRange float64) {
	const base = 10 * vg.Inch
	s.Width = base
	if yRange <= 0 || xRange <= 0 || xRange/yRange > 5 {
		s.Height = 4 * vg.Inch
		return
	}
	h := vg.Length(float64(base) * yRange / xRange)
	if h < 2*vg.Inch {
		h = 2 * vg.Inch
	}
	if h > 20*vg.Inch {
		h = 20 * vg.Inch
	}
	s.Height = h
}

const barWidth = 1 * vg.Inch

// save writes the current frame as a PNG, with an attached vertical
// colorbar when requested.
func (s *Surface) save(path string, cm palette.ColorMap, withBar bool) error {
	if !withBar || cm == nil {
		if err := s.Plot.Save(s.Width, s.Height, path); err != nil {
			return &ResourceError{Path: path, Wrapped: err}
		}
		return nil
	}

	bar := plot.New()
	cb := &plotter.ColorBar{ColorMap: cm}
	cb.Vertical = true
	bar.Add(cb)
	bar.HideX()

	img := vgimg.New(s.Width+barWidth, s.Height)
	dc := draw.New(img)
	main := draw.Crop(dc, 0, -barWidth, 0, 0)
	side := draw.Crop(dc, s.Width, 0, 0, 0)
	s.Plot.Draw(main)
	bar.Draw(side)

	f, err := os.Create(path)
	if err != nil {
		return &ResourceError{Path: path, Wrapped: err}
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return &ResourceError{Path: path, Wrapped: err}
	}
	return nil
}
