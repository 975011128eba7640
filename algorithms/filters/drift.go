package filters

import (
	"math"
)

// DriftRemoval implements a first-order DC blocking filter tuned for slow
// electrode drift in EEG recordings.
//
// References:
//   - Julius O. Smith III, "Introduction to Digital Filters with Audio Applications"
//     https://ccrma.stanford.edu/~jos/filters/DC_Blocker.html
//
// The filter costs 3 operations per sample, has no passband ripple, and a
// configurable cutoff frequency.
type DriftRemoval struct {
	poleLocation float64 // R parameter (0 < R < 1)
	cutoffFreq   float64 // -3dB cutoff frequency in Hz
	sampleRate   int

	// State variables
	x1 float64 // Previous input sample x[n-1]
	y1 float64 // Previous output sample y[n-1]
}

// DefaultDriftCutoff is the standard highpass edge for continuous EEG;
// lower values preserve slow cortical potentials, higher values clean up
// sweaty-electrode drift more aggressively.
const DefaultDriftCutoff = 0.1

// NewDriftRemoval creates a drift removal filter with the default 0.1 Hz
// cutoff at the given sample rate.
func NewDriftRemoval(sampleRate int) *DriftRemoval {
	return NewDriftRemovalWithCutoff(sampleRate, DefaultDriftCutoff)
}

// NewDriftRemovalWithCutoff creates a drift removal filter with the
// specified -3dB cutoff frequency.
//
// The pole location R is calculated as:
// R = 1 - 2*pi*fc/fs
// which is a small-angle approximation valid for fc << fs/2.
func NewDriftRemovalWithCutoff(sampleRate int, cutoffFreq float64) *DriftRemoval {
	d := &DriftRemoval{
		sampleRate:   sampleRate,
		cutoffFreq:   cutoffFreq,
		poleLocation: 0.995,
	}

	if sampleRate > 0 && cutoffFreq > 0 {
		r := 1.0 - (2.0 * math.Pi * cutoffFreq / float64(sampleRate))

		// Clamp to valid range
		if r >= 1.0 {
			r = 0.999
		} else if r <= 0.0 {
			r = 0.001
		}
		d.poleLocation = r
	}

	return d
}

// Process applies drift removal to a single sample.
// Implements the difference equation:
// y[n] = x[n] - x[n-1] + R * y[n-1]
func (d *DriftRemoval) Process(input float64) float64 {
	output := input - d.x1 + d.poleLocation*d.y1

	d.x1 = input
	d.y1 = output

	return output
}

// ProcessBuffer applies drift removal to an entire buffer of samples
func (d *DriftRemoval) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = d.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state.
// Call this when processing discontinuous recordings.
func (d *DriftRemoval) Reset() {
	d.x1 = 0.0
	d.y1 = 0.0
}

// GetPoleLocation returns the pole location parameter R
func (d *DriftRemoval) GetPoleLocation() float64 {
	return d.poleLocation
}

// GetCutoffFrequency calculates the approximate -3dB cutoff frequency,
// the inverse of the design formula: fc ≈ (1-R)*fs/(2*pi)
func (d *DriftRemoval) GetCutoffFrequency() float64 {
	if d.sampleRate <= 0 {
		return 0.0
	}

	return (1.0 - d.poleLocation) * float64(d.sampleRate) / (2.0 * math.Pi)
}

// FrequencyResponse computes the magnitude and phase response at the
// given frequency.
//
// The frequency response is:
// H(e^jw) = (1 - e^-jw) / (1 - R*e^-jw)
func (d *DriftRemoval) FrequencyResponse(frequency float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * frequency / float64(d.sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)

	// Numerator: 1 - e^-jw
	numReal := 1.0 - cosW
	numImag := sinW

	// Denominator: 1 - R*e^-jw
	denReal := 1.0 - d.poleLocation*cosW
	denImag := d.poleLocation * sinW

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	magnitude = math.Sqrt(hReal*hReal + hImag*hImag)
	phase = math.Atan2(hImag, hReal)

	return magnitude, phase
}
