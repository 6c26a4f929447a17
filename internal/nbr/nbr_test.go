package nbr

import (
	"math"
	"testing"
)

func TestRhoMin(t *testing.T) {
	tests := []struct {
		fck  float64
		want float64
	}{
		{20, 0.0015},
		{25, 0.0015},
		{30, 0.0015},
		{32, 0.00164}, // rounds up to C35
		{40, 0.00179},
		{15, 0.0015},   // below table
		{100, 0.00256}, // above table
	}
	for _, tt := range tests {
		if got := RhoMin(tt.fck); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("RhoMin(%v) = %v, want %v", tt.fck, got, tt.want)
		}
	}
}

func TestEcs(t *testing.T) {
	// C25: αi = 0.8625, Eci = 28000
	got := Ecs(25)
	want := 0.8625 * 28000
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("Ecs(25) = %v, want %v", got, want)
	}
	// αi is capped at 1.0
	if got := Ecs(90); got != Eci(90) {
		t.Errorf("Ecs(90) = %v, want Eci = %v", got, Eci(90))
	}
}

func TestDesignStrengths(t *testing.T) {
	if got := Fcd(28); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("Fcd(28) = %v, want 2.0", got)
	}
	if got := Fyd(500); math.Abs(got-43.478260869565) > 1e-9 {
		t.Errorf("Fyd(500) = %v", got)
	}
	if got := RhoSwMin(25, 500); math.Abs(got-0.2*0.3*math.Pow(25, 2.0/3.0)/500) > 1e-15 {
		t.Errorf("RhoSwMin = %v", got)
	}
}

func TestBarArea(t *testing.T) {
	if got := BarArea(10); math.Abs(got-0.785398) > 1e-6 {
		t.Errorf("BarArea(10) = %v", got)
	}
	if !ValidDiameter(12.5) || ValidDiameter(11) {
		t.Error("ValidDiameter mismatch")
	}
}

func TestSteelGrade(t *testing.T) {
	for name, want := range map[string]float64{"CA-50": 500, "CA60": 600, "": 500, "25": 250} {
		got, err := SteelGrade(name)
		if err != nil || got != want {
			t.Errorf("SteelGrade(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := SteelGrade("A36"); err == nil {
		t.Error("expected error for unknown grade")
	}
}

func TestGoverning(t *testing.T) {
	a := Actions{Permanent: 50, Variable: 30, Wind: 20}
	design, combo, factor := Governing(a, Combinations)
	// 1.4*50 + 1.4*30 + 0.84*20 = 128.8 governs
	if combo.ID != "2" || math.Abs(design-128.8) > 1e-9 {
		t.Fatalf("governing = %s %.3f", combo.ID, design)
	}
	if math.Abs(factor-128.8/100) > 1e-12 {
		t.Errorf("factor = %v", factor)
	}

	_, combo, factor = Governing(Actions{Permanent: 10}, GravityCombinations)
	if combo.ID != "1" || math.Abs(factor-1.4) > 1e-12 {
		t.Errorf("gravity governing = %s factor %v", combo.ID, factor)
	}
}
