package spectral

import (
	"github.com/mwoodbury/neurotag/algorithms/common"
)

// NormalizerConfig holds configuration for spectral normalization
type NormalizerConfig struct {
	// ReferenceOffsets are the bin offsets, relative to each target bin,
	// used to estimate the local noise floor. Neighboring-but-not-adjacent
	// bins work best for narrowband frequency tags.
	ReferenceOffsets []int `json:"reference_offsets"`

	// SmoothOffsets are the bin offsets averaged together after baseline
	// subtraction.
	SmoothOffsets []int `json:"smooth_offsets"`

	// FixedReference reproduces the legacy analysis-script behavior where
	// the reference offsets are treated as absolute bin indices, giving one
	// baseline per channel instead of a per-bin local baseline. Leave false
	// for the position-relative behavior.
	FixedReference bool `json:"fixed_reference"`
}

// DefaultNormalizerConfig returns the reference and smoothing windows
// commonly used for frequency-tagging analyses.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		ReferenceOffsets: []int{-5, -4, -3, 3, 4, 5},
		SmoothOffsets:    []int{-1, 0, 1},
		FixedReference:   false,
	}
}

// Normalizer baseline-corrects and smooths amplitude spectra so that
// narrowband peaks stand out against the surrounding noise floor.
// All methods are pure: inputs are never modified.
type Normalizer struct {
	cfg NormalizerConfig
}

// NewNormalizer creates a normalizer. A nil config selects the defaults.
func NewNormalizer(cfg *NormalizerConfig) *Normalizer {
	if cfg == nil {
		def := DefaultNormalizerConfig()
		cfg = &def
	}
	return &Normalizer{cfg: *cfg}
}

// BaselineSubtract subtracts the local noise floor from each bin. The
// floor at bin i is the mean amplitude over bins i+offset for each
// reference offset that lands inside the spectrum; boundary bins simply
// use fewer reference bins. Negative results are clamped to zero since
// amplitude cannot be negative.
func (n *Normalizer) BaselineSubtract(amp [][]float64) [][]float64 {
	if n.cfg.FixedReference {
		return n.baselineSubtractFixed(amp)
	}

	sub := make([][]float64, len(amp))
	for c, row := range amp {
		sub[c] = make([]float64, len(row))

		gathered := make([]float64, 0, len(n.cfg.ReferenceOffsets))
		for i := range row {
			gathered = gathered[:0]
			for _, off := range n.cfg.ReferenceOffsets {
				j := i + off
				if j >= 0 && j < len(row) {
					gathered = append(gathered, row[j])
				}
			}

			baseline := common.Mean(gathered)
			sub[c][i] = max(row[i]-baseline, 0)
		}
	}

	return sub
}

// baselineSubtractFixed treats the reference offsets as absolute bin
// indices: one baseline per channel, subtracted from every bin. This is
// what the original analysis script computed.
func (n *Normalizer) baselineSubtractFixed(amp [][]float64) [][]float64 {
	sub := make([][]float64, len(amp))
	for c, row := range amp {
		gathered := make([]float64, 0, len(n.cfg.ReferenceOffsets))
		for _, off := range n.cfg.ReferenceOffsets {
			if off >= 0 && off < len(row) {
				gathered = append(gathered, row[off])
			}
		}

		baseline := common.Mean(gathered)
		sub[c] = make([]float64, len(row))
		for i, v := range row {
			sub[c][i] = max(v-baseline, 0)
		}
	}

	return sub
}

// Smooth averages each bin with its in-range smoothing neighbors. No edge
// padding is applied, so boundary bins average over fewer neighbors.
func (n *Normalizer) Smooth(sub [][]float64) [][]float64 {
	smoothed := make([][]float64, len(sub))
	for c, row := range sub {
		smoothed[c] = make([]float64, len(row))

		for i := range row {
			sum := 0.0
			count := 0
			for _, off := range n.cfg.SmoothOffsets {
				j := i + off
				if j >= 0 && j < len(row) {
					sum += row[j]
					count++
				}
			}

			if count > 0 {
				smoothed[c][i] = sum / float64(count)
			}
		}
	}

	return smoothed
}

// Normalize runs baseline subtraction followed by smoothing
func (n *Normalizer) Normalize(amp [][]float64) [][]float64 {
	return n.Smooth(n.BaselineSubtract(amp))
}
