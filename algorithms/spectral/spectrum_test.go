package spectral

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// makeSine builds a single-channel sine wave of the given frequency,
// amplitude 1, sampled at sampleRate for numSamples samples.
func makeSine(freq, sampleRate float64, numSamples int) [][]float64 {
	ch := make([]float64, numSamples)
	for i := range ch {
		ch[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return [][]float64{ch}
}

func TestComputeInvalidInputs(t *testing.T) {
	sa := NewSpectrumAnalyzer()

	cases := []struct {
		name       string
		signal     [][]float64
		sampleRate float64
	}{
		{"no channels", [][]float64{}, 100},
		{"no samples", [][]float64{{}}, 100},
		{"ragged channels", [][]float64{{1, 2, 3}, {1, 2}}, 100},
		{"zero sample rate", [][]float64{{1, 2, 3}}, 0},
		{"negative sample rate", [][]float64{{1, 2, 3}}, -10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sa.Compute(tc.signal, tc.sampleRate)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestComputeFrequencyAxis(t *testing.T) {
	sa := NewSpectrumAnalyzer()

	s, err := sa.Compute(makeSine(10, 100, 200), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantBins := 200/2 + 1
	if s.NumBins() != wantBins {
		t.Fatalf("expected %d bins, got %d", wantBins, s.NumBins())
	}

	if len(s.Amp[0]) != len(s.Freqs) {
		t.Fatalf("amplitude row length %d does not match frequency axis length %d",
			len(s.Amp[0]), len(s.Freqs))
	}

	if s.Freqs[0] != 0 {
		t.Fatalf("expected DC bin at 0 Hz, got %f", s.Freqs[0])
	}

	for i := 1; i < len(s.Freqs); i++ {
		if s.Freqs[i] <= s.Freqs[i-1] {
			t.Fatalf("frequency axis not increasing at bin %d: %f <= %f",
				i, s.Freqs[i], s.Freqs[i-1])
		}
	}

	// Bin spacing is sampleRate / numSamples
	if !almostEqual(s.Freqs[1], 0.5, tolerance) {
		t.Fatalf("expected 0.5 Hz bin spacing, got %f", s.Freqs[1])
	}

	if !almostEqual(s.Freqs[len(s.Freqs)-1], 50, tolerance) {
		t.Fatalf("expected Nyquist bin at 50 Hz, got %f", s.Freqs[len(s.Freqs)-1])
	}
}

func TestComputeOddLength(t *testing.T) {
	sa := NewSpectrumAnalyzer()

	s, err := sa.Compute([][]float64{{1, 2, 3, 4, 5, 6, 7}}, 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.NumBins() != 4 {
		t.Fatalf("expected 4 non-negative bins for 7 samples, got %d", s.NumBins())
	}
}

func TestComputeSinePeak(t *testing.T) {
	const (
		sampleRate = 100.0
		f0         = 10.0
		numSamples = 200
	)

	sa := NewSpectrumAnalyzer()
	s, err := sa.Compute(makeSine(f0, sampleRate, numSamples), sampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Peak bin should sit exactly at f0
	maxBin := 0
	for i, v := range s.Amp[0] {
		if v > s.Amp[0][maxBin] {
			maxBin = i
		}
	}

	if !almostEqual(s.Freqs[maxBin], f0, tolerance) {
		t.Fatalf("expected spectral peak at %f Hz, got %f Hz", f0, s.Freqs[maxBin])
	}

	// A unit sine concentrates N/2 magnitude in its bin
	if !almostEqual(s.Amp[0][maxBin], numSamples/2, 1e-6) {
		t.Fatalf("expected peak magnitude %f, got %f", float64(numSamples)/2, s.Amp[0][maxBin])
	}

	// Confirmed via nearest-bin lookup as well
	closest, amp, err := s.AmplitudesAt([]float64{f0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if closest[0] != s.Freqs[maxBin] {
		t.Fatalf("nearest bin %f does not match peak bin %f", closest[0], s.Freqs[maxBin])
	}

	if amp[0][0] != s.Amp[0][maxBin] {
		t.Fatalf("nearest bin amplitude %f does not match peak amplitude %f",
			amp[0][0], s.Amp[0][maxBin])
	}
}

func TestComputeMultiChannel(t *testing.T) {
	sa := NewSpectrumAnalyzer()

	signal := [][]float64{
		makeSine(5, 100, 100)[0],
		makeSine(20, 100, 100)[0],
	}

	s, err := sa.Compute(signal, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.NumChannels() != 2 {
		t.Fatalf("expected 2 channels, got %d", s.NumChannels())
	}

	for c, want := range []float64{5, 20} {
		maxBin := 0
		for i, v := range s.Amp[c] {
			if v > s.Amp[c][maxBin] {
				maxBin = i
			}
		}
		if !almostEqual(s.Freqs[maxBin], want, tolerance) {
			t.Errorf("channel %d: expected peak at %f Hz, got %f Hz", c, want, s.Freqs[maxBin])
		}
	}
}
