package spectral

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ErrInvalidInput is returned when an operation is called with malformed
// data, such as an empty signal or a non-positive sampling rate. Callers
// can test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Spectrum holds the single-sided amplitude spectrum of a multichannel
// signal. Freqs is monotonically increasing and covers only non-negative
// frequencies; a real-valued input produces a conjugate-symmetric spectrum,
// so the negative-frequency bins carry no extra information and are dropped.
type Spectrum struct {
	Freqs      []float64   `json:"freqs"`       // Bin center frequencies in Hz
	Amp        [][]float64 `json:"amp"`         // Channels x frequency bins magnitude matrix
	SampleRate float64     `json:"sample_rate"` // Sampling rate in Hz
	NumSamples int         `json:"num_samples"` // Length of the time series the spectrum came from
}

// SpectrumAnalyzer computes amplitude spectra from multichannel time series
type SpectrumAnalyzer struct{}

// NewSpectrumAnalyzer creates a new spectrum analyzer
func NewSpectrumAnalyzer() *SpectrumAnalyzer {
	return &SpectrumAnalyzer{}
}

// Compute computes the single-sided FFT magnitude spectrum of a
// channels x time signal using mjibson/go-dsp. Bin i sits at
// i * sampleRate / T Hz; bins 0 through T/2 are retained.
func (sa *SpectrumAnalyzer) Compute(signal [][]float64, sampleRate float64) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("%w: signal has no channels", ErrInvalidInput)
	}

	numSamples := len(signal[0])
	if numSamples == 0 {
		return nil, fmt.Errorf("%w: signal has no samples", ErrInvalidInput)
	}

	for c, ch := range signal {
		if len(ch) != numSamples {
			return nil, fmt.Errorf("%w: channel %d has %d samples, expected %d",
				ErrInvalidInput, c, len(ch), numSamples)
		}
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidInput, sampleRate)
	}

	// Non-negative frequency bins only (DC through Nyquist)
	numBins := numSamples/2 + 1

	freqs := make([]float64, numBins)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(numSamples)
	}

	amp := make([][]float64, len(signal))
	for c, ch := range signal {
		spectrum := fft.FFTReal(ch)

		amp[c] = make([]float64, numBins)
		for i := 0; i < numBins; i++ {
			amp[c][i] = cmplx.Abs(spectrum[i])
		}
	}

	return &Spectrum{
		Freqs:      freqs,
		Amp:        amp,
		SampleRate: sampleRate,
		NumSamples: numSamples,
	}, nil
}

// NumChannels returns the number of channels in the spectrum
func (s *Spectrum) NumChannels() int {
	return len(s.Amp)
}

// NumBins returns the number of frequency bins in the spectrum
func (s *Spectrum) NumBins() int {
	return len(s.Freqs)
}
