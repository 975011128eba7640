package tagging

import (
	"fmt"

	"github.com/mwoodbury/neurotag/algorithms/common"
	"github.com/mwoodbury/neurotag/algorithms/spectral"
	"github.com/mwoodbury/neurotag/logging"
)

// Config holds configuration for frequency-tagging analysis
type Config struct {
	// TargetFreqs are the stimulation frequencies (Hz) whose spectral
	// amplitude should be reported. Leave empty to skip target snapping.
	TargetFreqs []float64 `json:"target_freqs"`

	// ReferenceOffsets and SmoothOffsets configure the spectral normalizer
	ReferenceOffsets []int `json:"reference_offsets"`
	SmoothOffsets    []int `json:"smooth_offsets"`

	// FixedReference selects the legacy fixed-index baseline behavior
	FixedReference bool `json:"fixed_reference"`

	// PeakMinHeight enables peak picking on the normalized spectrum when
	// positive: local maxima at least this tall are reported per channel.
	PeakMinHeight float64 `json:"peak_min_height"`

	// PeakMinDistance is the minimum spacing between reported peaks, in bins
	PeakMinDistance float64 `json:"peak_min_distance"`
}

// DefaultConfig returns the standard frequency-tagging configuration:
// noise floor from bins 3-5 away on either side, three-bin smoothing,
// no peak picking.
func DefaultConfig() *Config {
	norm := spectral.DefaultNormalizerConfig()
	return &Config{
		ReferenceOffsets: norm.ReferenceOffsets,
		SmoothOffsets:    norm.SmoothOffsets,
		FixedReference:   false,
		PeakMinHeight:    0.0,
		PeakMinDistance:  3.0,
	}
}

// Result holds the outputs of a frequency-tagging analysis. Matrices are
// channels x bins except TargetAmp, which is channels x targets.
type Result struct {
	Freqs        []float64   `json:"freqs"`
	Amp          [][]float64 `json:"amp"`
	NormAmp      [][]float64 `json:"norm_amp"`
	ClosestFreqs []float64   `json:"closest_freqs,omitempty"`
	TargetAmp    [][]float64 `json:"target_amp,omitempty"`
	Peaks        [][]int     `json:"peaks,omitempty"`
	SampleRate   float64     `json:"sample_rate"`
	NumSamples   int         `json:"num_samples"`
}

// Analyzer runs the frequency-tagging pipeline: amplitude spectrum, local
// baseline subtraction, smoothing, and amplitude lookup at the stimulation
// frequencies. The input is typically an ERP produced by epoch averaging.
type Analyzer struct {
	cfg      *Config
	spectrum *spectral.SpectrumAnalyzer
	norm     *spectral.Normalizer
	logger   logging.Logger
}

// NewAnalyzer creates a frequency-tagging analyzer; a nil config selects
// the defaults.
func NewAnalyzer(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	normCfg := spectral.NormalizerConfig{
		ReferenceOffsets: cfg.ReferenceOffsets,
		SmoothOffsets:    cfg.SmoothOffsets,
		FixedReference:   cfg.FixedReference,
	}
	if normCfg.ReferenceOffsets == nil || normCfg.SmoothOffsets == nil {
		def := spectral.DefaultNormalizerConfig()
		if normCfg.ReferenceOffsets == nil {
			normCfg.ReferenceOffsets = def.ReferenceOffsets
		}
		if normCfg.SmoothOffsets == nil {
			normCfg.SmoothOffsets = def.SmoothOffsets
		}
	}

	return &Analyzer{
		cfg:      cfg,
		spectrum: spectral.NewSpectrumAnalyzer(),
		norm:     spectral.NewNormalizer(&normCfg),
		logger: logging.WithFields(logging.Fields{
			"component": "tagging_analyzer",
		}),
	}
}

// Analyze computes the normalized amplitude spectrum of a channels x time
// waveform and, when target frequencies are configured, the normalized
// amplitude at the bin nearest each target.
func (a *Analyzer) Analyze(waveform [][]float64, sampleRate float64) (*Result, error) {
	spectrum, err := a.spectrum.Compute(waveform, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("computing spectrum: %w", err)
	}

	normAmp := a.norm.Normalize(spectrum.Amp)

	result := &Result{
		Freqs:      spectrum.Freqs,
		Amp:        spectrum.Amp,
		NormAmp:    normAmp,
		SampleRate: sampleRate,
		NumSamples: spectrum.NumSamples,
	}

	if len(a.cfg.TargetFreqs) > 0 {
		normalized := &spectral.Spectrum{
			Freqs:      spectrum.Freqs,
			Amp:        normAmp,
			SampleRate: spectrum.SampleRate,
			NumSamples: spectrum.NumSamples,
		}

		closest, targetAmp, err := normalized.AmplitudesAt(a.cfg.TargetFreqs)
		if err != nil {
			return nil, fmt.Errorf("snapping target frequencies: %w", err)
		}

		result.ClosestFreqs = closest
		result.TargetAmp = targetAmp
	} else {
		a.logger.Debug("no target frequencies configured, skipping bin snapping")
	}

	if a.cfg.PeakMinHeight > 0 {
		result.Peaks = make([][]int, len(normAmp))
		for c, row := range normAmp {
			result.Peaks[c] = common.FindPeaks(row, a.cfg.PeakMinHeight, a.cfg.PeakMinDistance)
		}
	}

	a.logger.Debug("frequency tagging analysis complete", logging.Fields{
		"channels": len(normAmp),
		"bins":     len(spectrum.Freqs),
		"targets":  len(a.cfg.TargetFreqs),
	})

	return result, nil
}
