package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/report"
)

func TestParseSupport(t *testing.T) {
	s, err := parseSupport("6:Fixed")
	if err != nil {
		t.Fatal(err)
	}
	if s.X != 6 || s.Type != fem.Fixed {
		t.Errorf("got %+v", s)
	}
	for _, bad := range []string{"6", "a:pin", "1:pin:2"} {
		if _, err := parseSupport(bad); err == nil {
			t.Errorf("parseSupport(%q) should fail", bad)
		}
	}
}

func TestParseLoads(t *testing.T) {
	p, err := parsePointLoad("2.5:40")
	if err != nil {
		t.Fatal(err)
	}
	if p.X != 2.5 || p.P != 40 {
		t.Errorf("point load = %+v", p)
	}

	q, err := parseDistributedLoad("0:6:10")
	if err != nil {
		t.Fatal(err)
	}
	if q.Start != 0 || q.End != 6 || q.Q1 != 10 || q.Q2 != nil {
		t.Errorf("uniform load = %+v", q)
	}

	q, err = parseDistributedLoad("1:4:0:12")
	if err != nil {
		t.Fatal(err)
	}
	if q.Q2 == nil || *q.Q2 != 12 {
		t.Errorf("triangular load = %+v", q)
	}

	for _, bad := range []string{"1", "1:2", "1:2:3:4:5", "1:x:3", "0:6:nan", "0:inf:5"} {
		if _, err := parseDistributedLoad(bad); err == nil {
			t.Errorf("parseDistributedLoad(%q) should fail", bad)
		}
	}
	if _, err := parsePointLoad("1:2:3"); err == nil {
		t.Error("point load with three values should fail")
	}
	if _, err := parsePointLoad("NaN:10"); err == nil {
		t.Error("point load at NaN should fail")
	}
}

func TestBatchRequest(t *testing.T) {
	req := batchRequest(report.BeamRow{Name: "B1", Span: 5, Width: 20, Height: 50, Load: 12, Fck: 30})
	in, err := req.Input(config.Builtin())
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Supports) != 2 || in.Supports[1].X != 5 || in.Supports[1].Kind != fem.Roller {
		t.Errorf("supports = %+v", in.Supports)
	}
	if d := in.DistributedLoads[0]; d.End != 5 || d.StartMagnitude != 12 || d.EndMagnitude != 12 {
		t.Errorf("load = %+v", d)
	}
	if in.Fck != 30 || in.BottomDiameter != config.DefaultBottomBar {
		t.Errorf("fck = %v, bottom = %v", in.Fck, in.BottomDiameter)
	}
}

func TestOutputPath(t *testing.T) {
	defaults.OutputDir = "out"
	t.Cleanup(func() { defaults.OutputDir = "" })

	if got := outputPath("beam.pdf"); got != filepath.Join("out", "beam.pdf") {
		t.Errorf("relative path = %q", got)
	}
	abs := filepath.Join(t.TempDir(), "beam.pdf")
	if got := outputPath(abs); got != abs {
		t.Errorf("absolute path = %q", got)
	}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvOutputDir, "")
	rootCmd.SetArgs(append(args, "--env", "", "--log-level", "error"))
	return rootCmd.Execute()
}

func TestCombineCommand(t *testing.T) {
	if err := run(t, "combine"); err == nil {
		t.Error("combine without effects should fail")
	}
	if err := run(t, "combine", "-g", "50", "-q", "30", "--all"); err != nil {
		t.Fatal(err)
	}
}

func TestBeamCommandExports(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "beam.pdf")
	xlsx := filepath.Join(dir, "beam.xlsx")

	err := run(t, "beam",
		"--span", "6", "--support", "0:pin", "--support", "6:roller",
		"--udl", "0:6:15", "-b", "20", "--height", "50",
		"--pdf", pdf, "--xlsx", xlsx, "--png", filepath.Join(dir, "beam"))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{pdf, xlsx, filepath.Join(dir, "beam-moment.png"), filepath.Join(dir, "beam-section.png")} {
		if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
			t.Errorf("%s was not written: %v", f, err)
		}
	}
}

func TestBatchCommand(t *testing.T) {
	if err := run(t, "batch"); err == nil {
		t.Error("batch without --file should fail")
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"name", "span", "width", "height", "load", "fck"},
		{"B1", 5, 20, 50, 10, 25},
		{"bad", "x", 20, 50, 10, 25},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "beams.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "batch", "--file", path); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "batch", "--file", filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("missing workbook should fail")
	}
}
