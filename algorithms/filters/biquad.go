package filters

import (
	"math"
)

// Biquad implements a second-order IIR filter section using the Direct
// Form II topology. Coefficients come from the design constructors in
// this package, all of which follow the cookbook formulas from Robert
// Bristow-Johnson's "Cookbook formulae for audio EQ biquad filter
// coefficients".
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
type Biquad struct {
	sampleRate int
	kind       string

	// Coefficients normalized so a0 == 1
	b0, b1, b2 float64
	a1, a2     float64

	// Delay line for direct form II
	w1, w2 float64
}

// Process applies the filter to a single sample.
//
// The difference equation is:
// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
func (f *Biquad) Process(input float64) float64 {
	w := input - f.a1*f.w1 - f.a2*f.w2
	output := f.b0*w + f.b1*f.w1 + f.b2*f.w2

	f.w2 = f.w1
	f.w1 = w

	return output
}

// ProcessBuffer applies the filter to an entire buffer of samples
func (f *Biquad) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = f.Process(sample)
	}
	return output
}

// Reset clears the filter's internal state (delay line).
// Call this when processing discontinuous recordings.
func (f *Biquad) Reset() {
	f.w1, f.w2 = 0.0, 0.0
}

// FrequencyResponse computes the magnitude and phase response at the given
// frequency. Returns magnitude (linear scale) and phase (radians).
//
// The frequency response is computed as:
// H(e^jw) = (b0 + b1*e^-jw + b2*e^-j2w) / (1 + a1*e^-jw + a2*e^-j2w)
func (f *Biquad) FrequencyResponse(frequency float64) (magnitude, phase float64) {
	w := 2.0 * math.Pi * frequency / float64(f.sampleRate)

	cosW := math.Cos(w)
	sinW := math.Sin(w)
	cos2W := math.Cos(2 * w)
	sin2W := math.Sin(2 * w)

	numReal := f.b0 + f.b1*cosW + f.b2*cos2W
	numImag := -f.b1*sinW - f.b2*sin2W

	denReal := 1.0 + f.a1*cosW + f.a2*cos2W
	denImag := -f.a1*sinW - f.a2*sin2W

	denMagSq := denReal*denReal + denImag*denImag

	hReal := (numReal*denReal + numImag*denImag) / denMagSq
	hImag := (numImag*denReal - numReal*denImag) / denMagSq

	magnitude = math.Sqrt(hReal*hReal + hImag*hImag)
	phase = math.Atan2(hImag, hReal)

	return magnitude, phase
}

// Coefficients returns the normalized biquad coefficients (a0 == 1)
func (f *Biquad) Coefficients() (b0, b1, b2, a1, a2 float64) {
	return f.b0, f.b1, f.b2, f.a1, f.a2
}

// Kind returns the design the filter was created with
func (f *Biquad) Kind() string {
	return f.kind
}

// SampleRate returns the sample rate the filter was designed for
func (f *Biquad) SampleRate() int {
	return f.sampleRate
}
