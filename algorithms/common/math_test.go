package common

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %f", got)
	}

	if got := Mean([]float64{1, 2, 3, 4}); !almostEqual(got, 2.5, tolerance) {
		t.Fatalf("expected 2.5, got %f", got)
	}
}

func TestVarianceAndStdDev(t *testing.T) {
	if got := Variance([]float64{5}); got != 0 {
		t.Fatalf("expected 0 for single element, got %f", got)
	}

	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Variance(data); !almostEqual(got, 32.0/7.0, tolerance) {
		t.Fatalf("expected sample variance %f, got %f", 32.0/7.0, got)
	}

	if got := StandardDeviation(data); !almostEqual(got, math.Sqrt(32.0/7.0), tolerance) {
		t.Fatalf("expected sample stddev %f, got %f", math.Sqrt(32.0/7.0), got)
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, -3, 3, -3}); !almostEqual(got, 3, tolerance) {
		t.Fatalf("expected RMS 3, got %f", got)
	}
}

func TestMovingAverage(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	got := MovingAverage(data, 3)
	want := []float64{1, 1.5, 2, 3, 4}

	for i := range want {
		if !almostEqual(got[i], want[i], tolerance) {
			t.Fatalf("sample %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestFindPeaks(t *testing.T) {
	data := []float64{0, 1, 5, 1, 0, 2, 8, 2, 0}

	peaks := FindPeaks(data, 1.0, 2.0)
	if len(peaks) != 2 || peaks[0] != 2 || peaks[1] != 6 {
		t.Fatalf("expected peaks at [2 6], got %v", peaks)
	}
}

func TestFindPeaksMinDistanceKeepsTaller(t *testing.T) {
	data := []float64{0, 4, 0, 9, 0}

	peaks := FindPeaks(data, 1.0, 3.0)
	if len(peaks) != 1 || peaks[0] != 3 {
		t.Fatalf("expected only the taller peak at 3, got %v", peaks)
	}
}

func TestFindPeaksShortInput(t *testing.T) {
	if peaks := FindPeaks([]float64{1, 2}, 0, 1); len(peaks) != 0 {
		t.Fatalf("expected no peaks for short input, got %v", peaks)
	}
}
