// Package export writes extracted cross-sections to interchange formats
// for downstream analysis tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/mwaite/fieldview/internal/section"
)

// SectionData is the JSON shape of one exported cross-section. Curvilinear
// sections are resampled onto the uniform vertical vector first, so Values
// is always row-major over (Y, X).
type SectionData struct {
	Field  string      `json:"field"`
	Step   int         `json:"step"`
	X      []float64   `json:"x"`
	Y      []float64   `json:"y"`
	Values [][]float64 `json:"values"`
}

func build(s *section.Section, step int) SectionData {
	s = section.Regrid(s)
	r, c := s.Data.Dims()
	vals := make([][]float64, r)
	for i := 0; i < r; i++ {
		vals[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			vals[i][j] = s.Data.At(i, j)
		}
	}
	return SectionData{
		Field:  s.FieldName,
		Step:   step,
		X:      s.X,
		Y:      s.Y,
		Values: vals,
	}
}

// JSON writes the section as indented JSON.
func JSON(w io.Writer, s *section.Section, step int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(build(s, step))
}

// CSV writes the section as x,y,value triples with a header row.
func CSV(w io.Writer, s *section.Section) error {
	s = section.Regrid(s)
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "value"}); err != nil {
		return err
	}
	r, c := s.Data.Dims()
	rec := make([]string, 3)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec[0] = strconv.FormatFloat(s.X[j], 'g', -1, 64)
			rec[1] = strconv.FormatFloat(s.Y[i], 'g', -1, 64)
			rec[2] = strconv.FormatFloat(s.Data.At(i, j), 'g', -1, 64)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
