package engine

import (
	"math"
	"testing"
)

// Valores de tabla z estándar.
func TestNormalCDF_AgainstZTable(t *testing.T) {
	cases := []struct {
		z    float64
		want float64
	}{
		{0, 0.5},
		{1, 0.8413},
		{-1, 0.1587},
		{1.96, 0.9750},
		{-1.96, 0.0250},
		{2.33, 0.9901},
	}
	for _, tc := range cases {
		if got := normalCDF(tc.z); math.Abs(got-tc.want) > 1e-3 {
			t.Fatalf("normalCDF(%v) = %v, expected %v", tc.z, got, tc.want)
		}
	}
}

func TestEmpiricalPercentile(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5}

	if got := empiricalPercentile(6, samples); got != 1 {
		t.Fatalf("expected percentile 1 above all samples, got %v", got)
	}
	if got := empiricalPercentile(0, samples); got != 0 {
		t.Fatalf("expected percentile 0 below all samples, got %v", got)
	}
	// Empate: medio crédito.
	if got := empiricalPercentile(3, samples); got != 0.5 {
		t.Fatalf("expected percentile 0.5 at the median, got %v", got)
	}
	if got := empiricalPercentile(3, nil); got != 0.5 {
		t.Fatalf("expected 0.5 without samples, got %v", got)
	}
}

func TestMeanStdDevAndMedian(t *testing.T) {
	mean, std := MeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-9 {
		t.Fatalf("expected mean 5, got %v", mean)
	}
	if std <= 0 {
		t.Fatalf("expected positive std dev, got %v", std)
	}

	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("expected median 2, got %v", got)
	}
	if got := median([]float64{4, 1, 2, 3}); got != 2.5 {
		t.Fatalf("expected median 2.5, got %v", got)
	}
	if got := median(nil); got != 0 {
		t.Fatalf("expected 0 for empty samples, got %v", got)
	}
}
