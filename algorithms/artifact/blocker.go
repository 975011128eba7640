package artifact

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mwoodbury/neurotag/algorithms/windowing"
	"github.com/mwoodbury/neurotag/logging"
)

// Method selects how artifact blocking walks the recording
type Method string

const (
	// MethodTotal blocks artifacts across the entire recording in one step
	MethodTotal Method = "total"
	// MethodWindow blocks artifacts on overlapping Tukey-tapered windows
	MethodWindow Method = "window"
)

// BlockerConfig holds configuration for artifact blocking
type BlockerConfig struct {
	// Threshold is the amplitude (in microvolts) above which activity is
	// treated as artifactual. The data itself is expected in volts.
	Threshold float64 `json:"threshold"`

	// Method is "total" or "window"
	Method Method `json:"method"`

	// SampleRate in Hz, required for the windowed method
	SampleRate float64 `json:"sample_rate"`

	// WindowSeconds is the window length for the windowed method
	WindowSeconds float64 `json:"window_seconds"`

	// TaperRatio is the Tukey taper fraction for the windowed method
	TaperRatio float64 `json:"taper_ratio"`
}

// DefaultBlockerConfig returns windowed artifact blocking with a 100 µV
// threshold and 10-second windows.
func DefaultBlockerConfig() BlockerConfig {
	return BlockerConfig{
		Threshold:     100.0,
		Method:        MethodWindow,
		WindowSeconds: 10.0,
		TaperRatio:    0.02,
	}
}

// Blocker suppresses high-amplitude artifacts (blinks, movement, electrode
// pops) in multichannel EEG. Instead of rejecting contaminated stretches it
// estimates a mixing matrix W = Ryx * pinv(Rxx) between the raw signals and
// a copy with artifactual samples zeroed, then reconstructs the recording
// through W. Activity below threshold passes through nearly unchanged.
type Blocker struct {
	cfg    BlockerConfig
	logger logging.Logger
}

// NewBlocker creates an artifact blocker. A nil config selects the defaults.
func NewBlocker(cfg *BlockerConfig) *Blocker {
	if cfg == nil {
		def := DefaultBlockerConfig()
		cfg = &def
	}

	return &Blocker{
		cfg: *cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "artifact_blocker",
		}),
	}
}

// Run performs artifact blocking on a channels x time recording in volts
// and returns the cleaned recording. The input is never modified; channel
// means are removed before blocking, so the output is zero-mean per channel.
func (b *Blocker) Run(data [][]float64) ([][]float64, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data has no channels")
	}

	numChannels := len(data)
	numSamples := len(data[0])
	if numSamples == 0 {
		return nil, fmt.Errorf("data has no samples")
	}

	for c, ch := range data {
		if len(ch) != numSamples {
			return nil, fmt.Errorf("channel %d has %d samples, expected %d", c, len(ch), numSamples)
		}
	}

	if b.cfg.Threshold <= 0 {
		return nil, fmt.Errorf("threshold must be positive, got %g", b.cfg.Threshold)
	}

	var lwin int
	switch b.cfg.Method {
	case MethodTotal:
		lwin = numSamples
	case MethodWindow:
		if b.cfg.SampleRate <= 0 {
			return nil, fmt.Errorf("windowed method needs a positive sample rate, got %g", b.cfg.SampleRate)
		}
		if b.cfg.TaperRatio < 0 || b.cfg.TaperRatio > 1 {
			return nil, fmt.Errorf("taper ratio must be in [0, 1], got %g", b.cfg.TaperRatio)
		}
		lwin = min(numSamples, int(b.cfg.WindowSeconds*b.cfg.SampleRate))
	default:
		return nil, fmt.Errorf("method must be %q or %q, not %q", MethodTotal, MethodWindow, b.cfg.Method)
	}

	// The data is in volts, the threshold in microvolts
	threshold := b.cfg.Threshold / 1e6

	// Demeaned copy of the input
	demeaned := make([][]float64, numChannels)
	for c, ch := range data {
		m := stat.Mean(ch, nil)
		demeaned[c] = make([]float64, numSamples)
		for t, v := range ch {
			demeaned[c][t] = v - m
		}
	}

	if lwin == numSamples {
		return b.runTotal(demeaned, threshold)
	}
	return b.runWindowed(demeaned, threshold, lwin)
}

// runTotal blocks artifacts across the whole recording in one step
func (b *Blocker) runTotal(demeaned [][]float64, threshold float64) ([][]float64, error) {
	x := denseFromRows(demeaned)

	clean := zeroAboveThreshold(demeaned, threshold)
	y := denseFromRows(clean)

	w, err := mixingMatrix(y, x)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(w, x)

	return rowsFromDense(&out), nil
}

// runWindowed blocks artifacts on overlapping windows and overlap-adds the
// reconstructions. Windows touching the recording edges use one-sided
// tapers so that boundary samples keep full weight.
func (b *Blocker) runWindowed(demeaned [][]float64, threshold float64, lwin int) ([][]float64, error) {
	numChannels := len(demeaned)
	numSamples := len(demeaned[0])
	r := b.cfg.TaperRatio

	out := make([][]float64, numChannels)
	for c := range out {
		out[c] = make([]float64, numSamples)
	}

	start := 0
	end := lwin
	windows := 0
	skipped := 0

	for {
		tail := windowing.TwoTailed
		lwin2 := lwin
		if start == 0 {
			tail = windowing.RightTail
		}
		if end > numSamples {
			tail = windowing.LeftTail
			end = numSamples
			lwin2 = end - start
		}

		win, err := windowing.NewTukeyTailed(lwin, r, tail, lwin2)
		if err != nil {
			return nil, err
		}
		coeffs := win.GetCoefficients()

		// Taper this stretch of the demeaned data
		winData := make([][]float64, numChannels)
		for c := range winData {
			winData[c] = make([]float64, len(coeffs))
			for i, w := range coeffs {
				winData[c][i] = w * demeaned[c][start+i]
			}
		}

		// An underdetermined window (fewer columns than channels) cannot
		// support the correlation estimate; leave its samples zeroed.
		if len(coeffs) > numChannels {
			x := denseFromRows(winData)
			y := denseFromRows(zeroAboveThreshold(winData, threshold))

			w, err := mixingMatrix(y, x)
			if err != nil {
				return nil, err
			}

			var rec mat.Dense
			rec.Mul(w, x)

			for c := range out {
				for i := range coeffs {
					out[c][start+i] += rec.At(c, i)
				}
			}
			windows++
		} else {
			skipped++
		}

		if end >= numSamples {
			break
		}
		start = end - int(math.Trunc(r*float64(lwin)/4.0))
		end = start + lwin
	}

	b.logger.Debug("windowed artifact blocking finished", logging.Fields{
		"windows": windows,
		"skipped": skipped,
	})

	return out, nil
}

// zeroAboveThreshold returns a copy of the data with samples whose
// magnitude exceeds the threshold set to zero.
func zeroAboveThreshold(data [][]float64, threshold float64) [][]float64 {
	clean := make([][]float64, len(data))
	for c, ch := range data {
		clean[c] = make([]float64, len(ch))
		for t, v := range ch {
			if math.Abs(v) <= threshold {
				clean[c][t] = v
			}
		}
	}
	return clean
}

// mixingMatrix computes W = Ryx * pinv(Rxx) for the cleaned signals y and
// reference signals x, both channels x time.
func mixingMatrix(y, x *mat.Dense) (*mat.Dense, error) {
	var rxx, ryx mat.Dense
	rxx.Mul(x, x.T())
	ryx.Mul(y, x.T())

	rxxInv, err := pseudoInverse(&rxx)
	if err != nil {
		return nil, err
	}

	var w mat.Dense
	w.Mul(&ryx, rxxInv)
	return &w, nil
}

// pseudoInverse computes the Moore-Penrose pseudo-inverse via thin SVD,
// zeroing singular values below the usual max(m,n)*eps*sigma_max cutoff.
func pseudoInverse(a *mat.Dense) (*mat.Dense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd failed to converge")
	}

	rows, cols := a.Dims()
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	eps := math.Ldexp(1, -52)
	tol := float64(max(rows, cols)) * eps * values[0]

	k := len(values)
	d := mat.NewDense(k, k, nil)
	for i, s := range values {
		if s > tol {
			d.Set(i, i, 1.0/s)
		}
	}

	var vd, pinv mat.Dense
	vd.Mul(&v, d)
	pinv.Mul(&vd, u.T())

	return &pinv, nil
}

// denseFromRows packs a channels x time slice-of-slices into a dense matrix
func denseFromRows(rows [][]float64) *mat.Dense {
	numRows := len(rows)
	numCols := len(rows[0])

	flat := make([]float64, 0, numRows*numCols)
	for _, row := range rows {
		flat = append(flat, row...)
	}

	return mat.NewDense(numRows, numCols, flat)
}

// rowsFromDense unpacks a dense matrix into a slice of row slices
func rowsFromDense(m *mat.Dense) [][]float64 {
	numRows, numCols := m.Dims()

	rows := make([][]float64, numRows)
	for r := range rows {
		rows[r] = make([]float64, numCols)
		mat.Row(rows[r], r, m)
	}

	return rows
}
