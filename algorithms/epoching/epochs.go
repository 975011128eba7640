package epoching

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mwoodbury/neurotag/logging"
)

// Event marks a stimulus onset in a continuous recording
type Event struct {
	Onset int    `json:"onset"` // Sample index of the event onset
	Code  string `json:"code"`  // Condition code, e.g. "target" or "standard"
}

// EpochConfig defines the epoch window relative to each event onset.
// StartOffset is usually negative (pre-stimulus baseline); the epoch
// covers samples [onset+StartOffset, onset+EndOffset).
type EpochConfig struct {
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// Epocher slices continuous multichannel data into fixed-length epochs
type Epocher struct {
	cfg    EpochConfig
	logger logging.Logger
}

// NewEpocher creates an epocher for the given window
func NewEpocher(cfg EpochConfig) (*Epocher, error) {
	if cfg.EndOffset <= cfg.StartOffset {
		return nil, fmt.Errorf("epoch end offset (%d) must be after start offset (%d)",
			cfg.EndOffset, cfg.StartOffset)
	}

	return &Epocher{
		cfg: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "epocher",
		}),
	}, nil
}

// Epochs holds extracted epochs as epoch x channel x time, plus the
// condition code of each epoch.
type Epochs struct {
	Data        [][][]float64 `json:"data"`
	Codes       []string      `json:"codes"`
	StartOffset int           `json:"start_offset"` // Sample offset of column 0 relative to onset
}

// Extract cuts one epoch per event out of a channels x time recording.
// Events whose window falls outside the recording are dropped with a
// warning, matching what EEG toolkits do. At least one event must
// survive or an error is returned.
func (e *Epocher) Extract(data [][]float64, events []Event) (*Epochs, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data has no channels")
	}

	numSamples := len(data[0])
	for c, ch := range data {
		if len(ch) != numSamples {
			return nil, fmt.Errorf("channel %d has %d samples, expected %d", c, len(ch), numSamples)
		}
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("no events given")
	}

	epochLen := e.cfg.EndOffset - e.cfg.StartOffset
	epochs := &Epochs{
		StartOffset: e.cfg.StartOffset,
	}

	dropped := 0
	for _, ev := range events {
		start := ev.Onset + e.cfg.StartOffset
		end := ev.Onset + e.cfg.EndOffset

		if start < 0 || end > numSamples {
			dropped++
			continue
		}

		epoch := make([][]float64, len(data))
		for c, ch := range data {
			epoch[c] = make([]float64, epochLen)
			copy(epoch[c], ch[start:end])
		}

		epochs.Data = append(epochs.Data, epoch)
		epochs.Codes = append(epochs.Codes, ev.Code)
	}

	if dropped > 0 {
		e.logger.Warn("dropped events outside recording bounds", logging.Fields{
			"dropped": dropped,
			"total":   len(events),
		})
	}

	if len(epochs.Data) == 0 {
		return nil, fmt.Errorf("all %d events fell outside the recording", len(events))
	}

	return epochs, nil
}

// NumEpochs returns the number of epochs
func (ep *Epochs) NumEpochs() int {
	return len(ep.Data)
}

// NumChannels returns the number of channels per epoch
func (ep *Epochs) NumChannels() int {
	if len(ep.Data) == 0 {
		return 0
	}
	return len(ep.Data[0])
}

// NumSamples returns the number of samples per epoch
func (ep *Epochs) NumSamples() int {
	if len(ep.Data) == 0 || len(ep.Data[0]) == 0 {
		return 0
	}
	return len(ep.Data[0][0])
}

// Average computes the event-related potential: the mean waveform across
// all epochs, as channels x time.
func (ep *Epochs) Average() [][]float64 {
	return ep.average(nil)
}

// AverageByCode computes the ERP over epochs with the given condition
// code only.
func (ep *Epochs) AverageByCode(code string) ([][]float64, error) {
	selected := make([]int, 0, len(ep.Codes))
	for i, c := range ep.Codes {
		if c == code {
			selected = append(selected, i)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no epochs with code %q", code)
	}

	return ep.average(selected), nil
}

// average sums the selected epochs with gonum and scales by the count.
// A nil selection means all epochs.
func (ep *Epochs) average(selected []int) [][]float64 {
	if len(ep.Data) == 0 {
		return nil
	}

	if selected == nil {
		selected = make([]int, len(ep.Data))
		for i := range selected {
			selected[i] = i
		}
	}

	numChannels := ep.NumChannels()
	numSamples := ep.NumSamples()

	erp := make([][]float64, numChannels)
	for c := range erp {
		erp[c] = make([]float64, numSamples)
		for _, e := range selected {
			floats.Add(erp[c], ep.Data[e][c])
		}
		floats.Scale(1.0/float64(len(selected)), erp[c])
	}

	return erp
}

// BaselineCorrect subtracts the mean of samples [start, end) from every
// channel of every epoch, in place. Start and end are column indices
// within the epoch, so a pre-stimulus baseline starts at 0.
func (ep *Epochs) BaselineCorrect(start, end int) error {
	if start < 0 || end > ep.NumSamples() || end <= start {
		return fmt.Errorf("baseline window [%d, %d) out of range for %d-sample epochs",
			start, end, ep.NumSamples())
	}

	for _, epoch := range ep.Data {
		for _, ch := range epoch {
			baseline := stat.Mean(ch[start:end], nil)
			for i := range ch {
				ch[i] -= baseline
			}
		}
	}

	return nil
}
