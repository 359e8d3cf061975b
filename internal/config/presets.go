package config

// Presets bundle common option sets per field family, keyed by field name
// then preset name.
var Presets = map[string]map[string]*Options{
	"Density": {
		"filled": {
			Style: "contourf", Dimen: "Y", NLevels: 24, NContours: 8,
			Colorbar: true, Visible: true,
			XSkip: 1, YSkip: 1, ZSkip: 1,
			Speed: SpeedPromptValue, Cont2: DefaultCont2,
			Filename: "density", Dir: ".",
		},
		"smooth": {
			Style: "pcolor", Dimen: "Y", NLevels: 64, NContours: DefaultContours,
			Colorbar: true, Visible: true,
			XSkip: 1, YSkip: 1, ZSkip: 1,
			Speed: SpeedPromptValue, Cont2: DefaultCont2,
			Filename: "density", Dir: ".",
		},
	},
	"u": {
		"waves": {
			Style: "pcolor", Dimen: "Y", NLevels: 32, NContours: 8,
			Cont2: "Density", Colorbar: true, Visible: true,
			XSkip: 1, YSkip: 1, ZSkip: 1,
			Speed: SpeedPromptValue,
			Filename: "u", Dir: ".",
		},
		"trimmed": {
			Style: "pcolor", Dimen: "Y", NLevels: 32, NContours: DefaultContours,
			Colaxis: []float64{-0.1, 0.1}, Trim: true,
			Cont2: DefaultCont2, Colorbar: true, Visible: true,
			XSkip: 1, YSkip: 1, ZSkip: 1,
			Speed: SpeedPromptValue,
			Filename: "u", Dir: ".",
		},
	},
	"Streamline": {
		"coarse": {
			Style: "pcolor", Dimen: "Y", NLevels: DefaultLevels, NContours: DefaultContours,
			XSkip: 4, YSkip: 1, ZSkip: 4,
			Cont2: "Density", Colorbar: false, Visible: true,
			Speed: 0,
			Filename: "stream", Dir: ".",
		},
	},
	"Ri": {
		"stability": {
			Style: "contourf", Dimen: "Y", NLevels: 16, NContours: DefaultContours,
			Colaxis: []float64{0, 1}, Trim: true,
			Cont2: DefaultCont2, Colorbar: true, Visible: true,
			XSkip: 1, YSkip: 1, ZSkip: 1,
			Speed: SpeedPromptValue,
			Filename: "ri", Dir: ".",
		},
	},
}

func GetPreset(fieldName, preset string) *Options {
	fieldPresets, ok := Presets[fieldName]
	if !ok {
		return nil
	}
	opt, ok := fieldPresets[preset]
	if !ok {
		return nil
	}
	return opt
}

func ListPresets(fieldName string) []string {
	fieldPresets, ok := Presets[fieldName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(fieldPresets))
	for name := range fieldPresets {
		names = append(names, name)
	}
	return names
}
