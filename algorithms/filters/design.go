package filters

import (
	"fmt"
	"math"
)

// Cookbook biquad designs for the filters EEG preprocessing reaches for:
// a bandpass for restricting analysis to a frequency band, a notch for
// power-line interference, and a highpass for slow drift.

func checkDesign(sampleRate int, freq float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	nyquist := float64(sampleRate) / 2.0
	if freq <= 0 || freq >= nyquist {
		return fmt.Errorf("frequency must be between 0 and Nyquist (%g Hz), got %g", nyquist, freq)
	}

	return nil
}

// cookbookParams computes the shared intermediate values w0, cos(w0) and
// alpha for a design frequency and Q factor.
func cookbookParams(sampleRate int, freq, q float64) (cosW0, alpha float64) {
	w0 := 2.0 * math.Pi * freq / float64(sampleRate)

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	return math.Cos(w0), math.Sin(w0) / (2.0 * q)
}

// NewBandpass creates a constant-peak-gain bandpass filter centered on
// centerFreq with the given bandwidth in Hz. The Q factor is
// centerFreq/bandwidth, so narrower bands give more selective filters.
func NewBandpass(sampleRate int, centerFreq, bandwidth float64) (*Biquad, error) {
	if err := checkDesign(sampleRate, centerFreq); err != nil {
		return nil, err
	}

	if bandwidth <= 0 {
		return nil, fmt.Errorf("bandwidth must be positive, got %g", bandwidth)
	}

	cosW0, alpha := cookbookParams(sampleRate, centerFreq, centerFreq/bandwidth)
	a0 := 1.0 + alpha

	return &Biquad{
		sampleRate: sampleRate,
		kind:       "bandpass",
		b0:         alpha / a0,
		b1:         0.0,
		b2:         -alpha / a0,
		a1:         (-2.0 * cosW0) / a0,
		a2:         (1.0 - alpha) / a0,
	}, nil
}

// NewNotch creates a notch filter that rejects a narrow band around
// notchFreq, typically 50 or 60 Hz power-line interference. Higher Q
// values give a narrower notch.
func NewNotch(sampleRate int, notchFreq, q float64) (*Biquad, error) {
	if err := checkDesign(sampleRate, notchFreq); err != nil {
		return nil, err
	}

	if q <= 0 {
		return nil, fmt.Errorf("q factor must be positive, got %g", q)
	}

	cosW0, alpha := cookbookParams(sampleRate, notchFreq, q)
	a0 := 1.0 + alpha

	return &Biquad{
		sampleRate: sampleRate,
		kind:       "notch",
		b0:         1.0 / a0,
		b1:         (-2.0 * cosW0) / a0,
		b2:         1.0 / a0,
		a1:         (-2.0 * cosW0) / a0,
		a2:         (1.0 - alpha) / a0,
	}, nil
}

// NewHighpass creates a second-order highpass filter with the given -3dB
// cutoff frequency. Q = 1/sqrt(2) gives a Butterworth response.
func NewHighpass(sampleRate int, cutoffFreq, q float64) (*Biquad, error) {
	if err := checkDesign(sampleRate, cutoffFreq); err != nil {
		return nil, err
	}

	if q <= 0 {
		return nil, fmt.Errorf("q factor must be positive, got %g", q)
	}

	cosW0, alpha := cookbookParams(sampleRate, cutoffFreq, q)
	a0 := 1.0 + alpha

	return &Biquad{
		sampleRate: sampleRate,
		kind:       "highpass",
		b0:         ((1.0 + cosW0) / 2.0) / a0,
		b1:         (-(1.0 + cosW0)) / a0,
		b2:         ((1.0 + cosW0) / 2.0) / a0,
		a1:         (-2.0 * cosW0) / a0,
		a2:         (1.0 - alpha) / a0,
	}, nil
}
