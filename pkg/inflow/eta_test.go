package inflow

import (
	"math"
	"testing"
)

func TestEta(t *testing.T) {
	tests := []struct {
		ratio float64
		want  float64
	}{
		{-0.5, 1.00},
		{0.0, 1.00},
		{0.1, 1.06},
		{0.2, 1.12},
		{0.3, 1.14},
		{0.4, 1.16},
		{0.5, 1.17},
		{0.6, 1.18},
		{0.8, 1.18},
		{1.36, 1.18},
	}

	for _, tt := range tests {
		got := Eta(tt.ratio)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Eta(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestEtaMonotonic(t *testing.T) {
	prev := Eta(0)
	for r := 0.01; r <= 1.0; r += 0.01 {
		cur := Eta(r)
		if cur < prev {
			t.Fatalf("Eta decreased at ratio %v: %v < %v", r, cur, prev)
		}
		prev = cur
	}
}

func TestEtaClamped(t *testing.T) {
	if EtaClamped(0.3) || EtaClamped(0) || EtaClamped(0.6) {
		t.Error("ratios inside the table should not be reported as clamped")
	}
	if !EtaClamped(-0.1) || !EtaClamped(0.8) {
		t.Error("ratios outside the table should be reported as clamped")
	}
}
