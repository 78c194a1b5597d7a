package stats

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestGeometricMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{name: "empty", values: nil, ok: false},
		{name: "single", values: []float64{3.7}, want: 3.7, ok: true},
		{name: "pair", values: []float64{125, 100}, want: math.Sqrt(12500), ok: true},
		{name: "cube", values: []float64{2, 4, 8}, want: 4, ok: true},
		{name: "ones", values: []float64{1, 1, 1, 1, 1}, want: 1, ok: true},
		{name: "zero", values: []float64{0, 5, 10}, want: 0, ok: true},
		{name: "example", values: []float64{100.5, 100}, want: 100.2496882788171, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GeometricMean(tt.values)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got-tt.want) > tolerance*math.Max(1, tt.want) {
				t.Errorf("GeometricMean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestGeometricMean_SingleValueExact(t *testing.T) {
	v := 0.1 + 0.2
	got, ok := GeometricMean([]float64{v})
	if !ok || got != v {
		t.Errorf("GeometricMean([%v]) = %v, %v; want exact value", v, got, ok)
	}
}

func TestGeometricMean_Overflow(t *testing.T) {
	values := make([]float64, 400)
	for i := range values {
		values[i] = 1e300
	}

	got, ok := GeometricMean(values)
	if !ok {
		t.Fatal("expected a value")
	}
	if math.IsInf(got, 0) || math.Abs(got-1e300)/1e300 > 1e-9 {
		t.Errorf("GeometricMean(400 x 1e300) = %v, want 1e300", got)
	}
}

func TestGeometricMean_Underflow(t *testing.T) {
	values := make([]float64, 400)
	for i := range values {
		values[i] = 1e-300
	}

	got, ok := GeometricMean(values)
	if !ok {
		t.Fatal("expected a value")
	}
	if got == 0 || math.Abs(got-1e-300)/1e-300 > 1e-9 {
		t.Errorf("GeometricMean(400 x 1e-300) = %v, want 1e-300", got)
	}
}
