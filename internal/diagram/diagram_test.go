package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gorcd/internal/engine"
	"github.com/alexiusacademia/gorcd/internal/section"
)

func samples() []engine.Point {
	pts := make([]engine.Point, 21)
	for i := range pts {
		x := float64(i) * 0.25
		pts[i] = engine.Point{X: x, Value: 10 * x * (5 - x) / 2}
	}
	return pts
}

func layout() section.Layout {
	return section.Layout{
		Rect:            section.Rect{Width: 20, Height: 50},
		Cover:           2.5,
		StirrupDiameter: 5,
		BottomDiameter:  16,
		TopDiameter:     10,
		Bottom:          []int{3, 1},
		Top:             []int{2},
	}
}

func TestCurve(t *testing.T) {
	out := Curve("Moment", "kN-m", samples())
	if !strings.Contains(out, "Moment (kN-m), x = 0.00 .. 5.00 m") {
		t.Errorf("caption missing:\n%s", out)
	}
	if Curve("Empty", "kN", nil) != "" {
		t.Error("empty diagram should render nothing")
	}
}

func TestDrawSection(t *testing.T) {
	out := DrawSection(layout(), 8)
	if n := strings.Count(out, "●"); n != 6 {
		t.Errorf("drew %d bars, want 6:\n%s", n, out)
	}
	if !strings.Contains(out, "stress block") {
		t.Error("stress block legend missing")
	}
}

func TestSummaryBox(t *testing.T) {
	out := SummaryBox("Beam design", false, []string{"As = 7.76 cm2"})
	if !strings.Contains(out, "Beam design") || !strings.Contains(out, "As = 7.76 cm2") {
		t.Errorf("summary box:\n%s", out)
	}
}

func TestExportImages(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "moment.png"),
		filepath.Join(dir, "nested", "section.svg"),
	}
	if err := ExportDiagram("Moment", "kN-m", samples(), true, files[0]); err != nil {
		t.Fatal(err)
	}
	if err := ExportSection(layout(), files[1]); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil {
			t.Fatal(err)
		}
		if st.Size() == 0 {
			t.Errorf("%s is empty", f)
		}
	}
	if err := ExportDiagram("Shear", "kN", nil, false, filepath.Join(dir, "x.png")); err == nil {
		t.Error("expected an error for an empty diagram")
	}
}
