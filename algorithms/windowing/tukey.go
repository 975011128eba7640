package windowing

import (
	"fmt"
	"math"
)

// Tail selects which ends of a Tukey window carry a cosine taper.
// One-sided windows are used for overlap-add processing at recording
// boundaries, where only the interior edge should be tapered.
type Tail int

const (
	// TwoTailed is the standard Tukey window with tapers on both ends
	TwoTailed Tail = iota
	// LeftTail keeps only the leading taper (trailing end truncated flat)
	LeftTail
	// RightTail keeps only the trailing taper (leading end forced to 1)
	RightTail
)

// Tukey represents a Tukey (tapered cosine) window function
type Tukey struct {
	size         int
	alpha        float64
	tail         Tail
	coefficients []float64
}

// NewTukey creates a standard two-tailed Tukey window. Alpha is the
// fraction of the window inside the cosine-tapered region.
func NewTukey(size int, alpha float64) *Tukey {
	t := &Tukey{
		size:  size,
		alpha: alpha,
		tail:  TwoTailed,
	}
	t.coefficients = t.generate(size)
	return t
}

// NewTukeyTailed creates a one- or two-tailed Tukey window. For LeftTail
// windows, truncate gives the number of leading points retained from the
// full length-size window; pass size (or 0) to keep the whole window.
func NewTukeyTailed(size int, alpha float64, tail Tail, truncate int) (*Tukey, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	if truncate == 0 {
		truncate = size
	}
	if truncate > size {
		return nil, fmt.Errorf("truncation length (%d) cannot exceed window size (%d)", truncate, size)
	}
	if truncate < 0 {
		return nil, fmt.Errorf("truncation length must be non-negative, got %d", truncate)
	}

	t := &Tukey{
		size:  size,
		alpha: alpha,
		tail:  tail,
	}

	coeffs := t.generate(size)
	taperLength := int(alpha * float64(size) / 2.0)

	switch tail {
	case TwoTailed:
		t.coefficients = coeffs
	case RightTail:
		// Flatten the leading taper so only the trailing edge rolls off
		for i := 0; i < taperLength && i < size; i++ {
			coeffs[i] = 1.0
		}
		t.coefficients = coeffs
	case LeftTail:
		t.coefficients = coeffs[:truncate]
		t.size = truncate
	default:
		return nil, fmt.Errorf("unrecognized window tail %d", tail)
	}

	return t, nil
}

// generate creates standard Tukey window coefficients: rectangular in the
// middle with cosine tapers on the sides.
func (t *Tukey) generate(n int) []float64 {
	coeffs := make([]float64, n)
	taperLength := int(t.alpha * float64(n) / 2.0)

	for i := 0; i < n; i++ {
		if i < taperLength {
			// Rising cosine taper
			arg := math.Pi * float64(i) / float64(taperLength)
			coeffs[i] = 0.5 * (1 + math.Cos(arg-math.Pi))
		} else if i >= n-taperLength {
			// Falling cosine taper
			arg := math.Pi * float64(i-(n-taperLength)) / float64(taperLength)
			coeffs[i] = 0.5 * (1 + math.Cos(arg))
		} else {
			coeffs[i] = 1.0
		}
	}

	return coeffs
}

// Apply applies the window to a signal (creates new array)
func (t *Tukey) Apply(signal []float64) []float64 {
	if len(signal) != t.size {
		return nil
	}

	windowed := make([]float64, t.size)
	for i := range signal {
		windowed[i] = signal[i] * t.coefficients[i]
	}

	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (t *Tukey) ApplyInPlace(signal []float64) error {
	if len(signal) != t.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), t.size)
	}

	for i := range signal {
		signal[i] *= t.coefficients[i]
	}

	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (t *Tukey) GetCoefficients() []float64 {
	coeffs := make([]float64, len(t.coefficients))
	copy(coeffs, t.coefficients)
	return coeffs
}

// GetSize returns the window size
func (t *Tukey) GetSize() int {
	return t.size
}

// GetType returns the window type
func (t *Tukey) GetType() string {
	return "tukey"
}

// GetAlpha returns the Tukey alpha parameter
func (t *Tukey) GetAlpha() float64 {
	return t.alpha
}

// GetTail returns which window tails are tapered
func (t *Tukey) GetTail() Tail {
	return t.tail
}
