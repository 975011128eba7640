package spectral

import (
	"fmt"
	"math"
)

// NearestBins maps each target frequency to the bin whose center frequency
// is closest in absolute distance, breaking ties toward the lower index.
// No interpolation is performed; targets always snap to an existing bin.
func NearestBins(freqs, targets []float64) (closest []float64, indices []int, err error) {
	if len(freqs) == 0 {
		return nil, nil, fmt.Errorf("%w: empty frequency axis", ErrInvalidInput)
	}

	if len(targets) == 0 {
		return nil, nil, fmt.Errorf("%w: no target frequencies given", ErrInvalidInput)
	}

	closest = make([]float64, len(targets))
	indices = make([]int, len(targets))

	for t, target := range targets {
		best := 0
		bestDist := math.Abs(freqs[0] - target)

		for i := 1; i < len(freqs); i++ {
			dist := math.Abs(freqs[i] - target)
			if dist < bestDist {
				best = i
				bestDist = dist
			}
		}

		closest[t] = freqs[best]
		indices[t] = best
	}

	return closest, indices, nil
}

// AmplitudesAt returns, for each target frequency, the actual bin frequency
// selected and the amplitude of that bin on every channel. The returned
// amplitude matrix is channels x targets.
func (s *Spectrum) AmplitudesAt(targets []float64) (closestFreqs []float64, targetAmp [][]float64, err error) {
	closestFreqs, indices, err := NearestBins(s.Freqs, targets)
	if err != nil {
		return nil, nil, err
	}

	targetAmp = make([][]float64, len(s.Amp))
	for c, row := range s.Amp {
		targetAmp[c] = make([]float64, len(indices))
		for t, idx := range indices {
			targetAmp[c][t] = row[idx]
		}
	}

	return closestFreqs, targetAmp, nil
}
