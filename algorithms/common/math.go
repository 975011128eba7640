package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions shared across algorithms, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// MovingAverage calculates a simple moving average with the given window size
func MovingAverage(data []float64, windowSize int) []float64 {
	if len(data) == 0 || windowSize <= 0 || windowSize > len(data) {
		return data
	}

	result := make([]float64, len(data))

	// Growing window until the first full window fits
	for i := 0; i < windowSize; i++ {
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(i+1)
	}

	for i := windowSize; i < len(data); i++ {
		sum := 0.0
		for j := i - windowSize + 1; j <= i; j++ {
			sum += data[j]
		}
		result[i] = sum / float64(windowSize)
	}

	return result
}

// FindPeaks finds local maxima at least minHeight tall and at least
// minDistance samples apart. When two candidates fall within minDistance
// of each other, the taller one wins.
func FindPeaks(data []float64, minHeight, minDistance float64) []int {
	if len(data) < 3 {
		return []int{}
	}

	var peaks []int

	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] && data[i] >= minHeight {
			validPeak := true
			for _, existingPeak := range peaks {
				if math.Abs(float64(i-existingPeak)) < minDistance {
					if data[i] > data[existingPeak] {
						for j, peak := range peaks {
							if peak == existingPeak {
								peaks = append(peaks[:j], peaks[j+1:]...)
								break
							}
						}
					} else {
						validPeak = false
					}
					break
				}
			}

			if validPeak {
				peaks = append(peaks, i)
			}
		}
	}

	return peaks
}
