package render

import (
	"fmt"
	"time"
)

// Driver iterates the renderer over a sequence of output indices. Frames
// draw in the caller's order; the aggregated PlotInfo of only the LAST
// processed index is returned. Callers wanting every frame call Render
// per index themselves.
type Driver struct {
	Renderer *Renderer

	// Pacing inserts a fixed delay between frames of a multi-index run so
	// a visible sequence animates rather than flickering past. Zero means
	// no pacing.
	Pacing time.Duration
}

func NewDriver(r *Renderer) *Driver {
	return &Driver{Renderer: r}
}

// Run renders every index in steps and returns the last frame's PlotInfo.
func (d *Driver) Run(fieldName string, steps []int) (*PlotInfo, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("render: no output indices to draw")
	}
	var info *PlotInfo
	for n, step := range steps {
		if n > 0 && d.Pacing > 0 && d.Renderer.Surface().Visible {
			time.Sleep(d.Pacing)
		}
		fi, err := d.Renderer.Render(fieldName, step)
		if err != nil {
			return nil, fmt.Errorf("render: index %d: %w", step, err)
		}
		info = fi
	}
	return info, nil
}
