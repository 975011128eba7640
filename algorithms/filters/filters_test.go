package filters

import (
	"math"
	"testing"
)

func TestNotchRejectsLineNoise(t *testing.T) {
	f, err := NewNotch(500, 50, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mag, _ := f.FrequencyResponse(50)
	if mag > 1e-3 {
		t.Fatalf("expected near-zero response at the notch, got %f", mag)
	}

	// Frequencies away from the notch pass nearly untouched
	for _, freq := range []float64{5, 20, 100, 200} {
		mag, _ := f.FrequencyResponse(freq)
		if math.Abs(mag-1) > 0.05 {
			t.Errorf("expected unity response at %g Hz, got %f", freq, mag)
		}
	}
}

func TestBandpassPeaksAtCenter(t *testing.T) {
	f, err := NewBandpass(250, 10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	center, _ := f.FrequencyResponse(10)
	if math.Abs(center-1) > 0.01 {
		t.Fatalf("expected unity gain at center frequency, got %f", center)
	}

	low, _ := f.FrequencyResponse(1)
	high, _ := f.FrequencyResponse(80)
	if low > 0.5 || high > 0.5 {
		t.Fatalf("expected attenuation away from passband, got %f at 1 Hz and %f at 80 Hz", low, high)
	}
}

func TestHighpassAttenuatesSlow(t *testing.T) {
	f, err := NewHighpass(250, 1, 1/math.Sqrt2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slow, _ := f.FrequencyResponse(0.05)
	fast, _ := f.FrequencyResponse(40)

	if slow > 0.1 {
		t.Fatalf("expected strong attenuation below cutoff, got %f", slow)
	}
	if math.Abs(fast-1) > 0.05 {
		t.Fatalf("expected unity gain well above cutoff, got %f", fast)
	}
}

func TestDesignErrors(t *testing.T) {
	cases := []struct {
		name string
		make func() error
	}{
		{"bandpass zero rate", func() error { _, err := NewBandpass(0, 10, 2); return err }},
		{"bandpass above nyquist", func() error { _, err := NewBandpass(100, 60, 2); return err }},
		{"bandpass zero bandwidth", func() error { _, err := NewBandpass(100, 10, 0); return err }},
		{"notch zero q", func() error { _, err := NewNotch(100, 10, 0); return err }},
		{"highpass negative cutoff", func() error { _, err := NewHighpass(100, -1, 0.7); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.make() == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestBiquadProcessRemovesSine(t *testing.T) {
	const (
		sampleRate = 500
		lineFreq   = 50.0
	)

	f, err := NewNotch(sampleRate, lineFreq, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pure line-noise input: after the transient settles, the output
	// should be strongly attenuated.
	numSamples := sampleRate * 4
	output := make([]float64, 0, numSamples)
	for i := 0; i < numSamples; i++ {
		in := math.Sin(2 * math.Pi * lineFreq * float64(i) / sampleRate)
		output = append(output, f.Process(in))
	}

	rms := 0.0
	steady := output[numSamples/2:]
	for _, v := range steady {
		rms += v * v
	}
	rms = math.Sqrt(rms / float64(len(steady)))

	if rms > 0.05 {
		t.Fatalf("expected notched line noise below 0.05 RMS, got %f", rms)
	}
}

func TestBiquadReset(t *testing.T) {
	f, err := NewHighpass(250, 1, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := f.Process(1.0)
	f.Reset()
	second := f.Process(1.0)

	if first != second {
		t.Fatalf("expected identical output after reset, got %f then %f", first, second)
	}
}

func TestDriftRemovalDecaysDC(t *testing.T) {
	d := NewDriftRemoval(250)

	// A constant offset should decay away
	var out float64
	for i := 0; i < 250*60; i++ {
		out = d.Process(1.0)
	}

	if math.Abs(out) > 0.01 {
		t.Fatalf("expected DC offset to decay below 0.01, got %f", out)
	}
}

func TestDriftRemovalCutoffRoundTrip(t *testing.T) {
	d := NewDriftRemovalWithCutoff(250, 0.5)

	got := d.GetCutoffFrequency()
	if math.Abs(got-0.5) > 0.01 {
		t.Fatalf("expected cutoff near 0.5 Hz, got %f", got)
	}
}

func TestDriftRemovalPassesFast(t *testing.T) {
	d := NewDriftRemoval(250)

	mag, _ := d.FrequencyResponse(10)
	if math.Abs(mag-1) > 0.05 {
		t.Fatalf("expected unity response at 10 Hz, got %f", mag)
	}

	magDC, _ := d.FrequencyResponse(0)
	if magDC != 0 {
		t.Fatalf("expected zero response at DC, got %f", magDC)
	}
}
