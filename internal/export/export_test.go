package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mwaite/fieldview/internal/section"
)

func sampleSection() *section.Section {
	return &section.Section{
		FieldName: "u",
		X:         []float64{0, 1},
		Y:         []float64{0, 0.5, 1},
		Data:      mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleSection()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want header plus 6 cells", len(lines))
	}
	if lines[0] != "x,y,value" {
		t.Errorf("header %q", lines[0])
	}
	if lines[4] != "1,0.5,4" {
		t.Errorf("row %q, want \"1,0.5,4\"", lines[4])
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleSection(), 3); err != nil {
		t.Fatal(err)
	}
	var got SectionData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Field != "u" || got.Step != 3 {
		t.Errorf("metadata: %+v", got)
	}
	if len(got.Values) != 3 || len(got.Values[0]) != 2 || got.Values[2][1] != 6 {
		t.Errorf("values: %v", got.Values)
	}
}
