package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStyle     = "pcolor"
	DefaultDimen     = "Y"
	DefaultCont2     = "None"
	DefaultContours  = 6
	DefaultLevels    = 32
	DefaultFilename  = "frame"
	SpeedPromptValue = -1.0
)

// Error reports invalid or contradictory plot configuration.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "config: " + e.Msg }

func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Options is the full configuration surface of one plotting run. Every
// field has a default and is independently overridable by the caller.
type Options struct {
	Dimen string  `yaml:"dimen"` // cross-section axis: X, Y or Z
	Slice float64 `yaml:"slice"` // physical location along Dimen

	// Axis clips the view to [x1, x2, z1, z2]; empty means the data extent.
	Axis []float64 `yaml:"axis,flow"`

	Style string `yaml:"style"` // pcolor, contourf or contour

	XSkip int `yaml:"xskp"`
	YSkip int `yaml:"yskp"`
	ZSkip int `yaml:"zskp"`

	Cont2     string `yaml:"cont2"`     // secondary contour field, "None" disables
	NContours int    `yaml:"ncontours"` // overlay contour count
	NLevels   int    `yaml:"nlevels"`   // colormap level count

	// Colaxis pins the color range to [c1, c2]; empty selects the per-field
	// heuristic.
	Colaxis []float64 `yaml:"colaxis,flow"`

	Colorbar bool `yaml:"colorbar"`
	Trim     bool `yaml:"trim"`
	Visible  bool `yaml:"visible"`
	SaveFig  bool `yaml:"savefig"`

	// Speed is the streamline reference speed. The -1 sentinel defers to
	// the renderer's speed callback.
	Speed float64 `yaml:"speed"`

	Filename string `yaml:"filename"`
	Dir      string `yaml:"dir"`
}

// Params is the immutable simulation metadata for a run.
type Params struct {
	NDims        int     `yaml:"ndims"`
	PlotInterval float64 `yaml:"plot_interval"` // seconds per output index, 0 when unknown
	Nz           int     `yaml:"nz"`
}

func Defaults() *Options {
	return &Options{
		Dimen:     DefaultDimen,
		Slice:     0,
		Style:     DefaultStyle,
		XSkip:     1,
		YSkip:     1,
		ZSkip:     1,
		Cont2:     DefaultCont2,
		NContours: DefaultContours,
		NLevels:   DefaultLevels,
		Colorbar:  true,
		Visible:   true,
		Speed:     SpeedPromptValue,
		Filename:  DefaultFilename,
		Dir:       ".",
	}
}

// Validate rejects option values the pipeline cannot act on.
func (o *Options) Validate() error {
	switch o.Style {
	case "pcolor", "contourf", "contour":
	default:
		return Errorf("unknown style %q (want pcolor, contourf or contour)", o.Style)
	}
	switch o.Dimen {
	case "X", "Y", "Z", "x", "y", "z":
	default:
		return Errorf("unknown dimen %q (want X, Y or Z)", o.Dimen)
	}
	if len(o.Axis) != 0 && len(o.Axis) != 4 {
		return Errorf("axis wants four values [x1 x2 z1 z2], got %d", len(o.Axis))
	}
	if len(o.Colaxis) != 0 && len(o.Colaxis) != 2 {
		return Errorf("colaxis wants two values [c1 c2], got %d", len(o.Colaxis))
	}
	return nil
}

// Load reads options from a YAML file on top of the defaults.
func Load(path string) (*Options, error) {
	opt := Defaults()
	if err := LoadInto(path, opt); err != nil {
		return nil, err
	}
	return opt, nil
}

// LoadInto overlays a YAML file onto an existing option set. Keys absent
// from the file keep their current values.
func LoadInto(path string, opt *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, opt)
}

func Save(path string, opt *Options) error {
	data, err := yaml.Marshal(opt)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
