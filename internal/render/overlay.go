package render

import (
	"image/color"

	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/grid"
	"github.com/mwaite/fieldview/internal/section"
)

// Overlay is a resolved secondary contour field for one frame.
type Overlay struct {
	Name      string
	Section   *section.Section
	LineColor color.Color
}

// overlayName applies the Mean-coercion rule: a spanwise-reduced primary
// keeps its overlay on the same reduced ground, unless the overlay is a
// streamline request.
func overlayName(primary field.Request, cont2 string) string {
	if primary.Reduced() && cont2 != "Streamline" {
		return "Mean " + cont2
	}
	return cont2
}

// composeOverlay resolves the secondary field for a frame. It returns nil
// when no overlay is configured. When the (possibly coerced) overlay name
// equals the primary field name the primary section is reused without a
// second raw read.
func (r *Renderer) composeOverlay(primary field.Request, primarySec *section.Section, step int, dimen grid.Axis) (*Overlay, error) {
	if r.opts.Cont2 == "" || r.opts.Cont2 == "None" {
		return nil, nil
	}

	name := overlayName(primary, r.opts.Cont2)
	lineColor := color.Color(color.Black)
	if primary.Kind == field.Streamline {
		lineColor = color.RGBA{R: 0xcc, A: 0xff}
	}

	if name == primary.Name {
		return &Overlay{Name: name, Section: primarySec, LineColor: lineColor}, nil
	}

	req := field.Parse(name)
	frame, err := r.res.Resolve(req, step, dimen, r.opts.Slice)
	if err != nil {
		return nil, err
	}
	sec, err := section.Extract(frame, dimen, r.opts.Slice, r.grid)
	if err != nil {
		return nil, err
	}
	// Thin the overlay by the same factors as the primary so both layers
	// share a resolution.
	hskip, vskip := r.skips(dimen)
	sec = sec.Subsample(hskip, vskip)
	return &Overlay{Name: name, Section: sec, LineColor: lineColor}, nil
}
