package montage

import (
	"fmt"
)

// Montage maps channel names to their row indices in a recording. It only
// tracks naming and ordering; sensor geometry stays with the acquisition
// toolkit.
type Montage struct {
	names []string
	index map[string]int
}

// New creates a montage from an ordered list of channel names. Names must
// be unique and non-empty; the position of a name in the list is its
// channel index.
func New(names []string) (*Montage, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("montage needs at least one channel name")
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("channel %d has an empty name", i)
		}
		if _, seen := index[name]; seen {
			return nil, fmt.Errorf("duplicate channel name %q", name)
		}
		index[name] = i
	}

	m := &Montage{
		names: make([]string, len(names)),
		index: index,
	}
	copy(m.names, names)

	return m, nil
}

// NumChannels returns the number of channels in the montage
func (m *Montage) NumChannels() int {
	return len(m.names)
}

// Names returns a copy of the channel names in index order
func (m *Montage) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Index returns the channel index for a name
func (m *Montage) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// ROIs resolves named channel groups (regions of interest) to channel
// index sets. Unknown channel names are rejected rather than silently
// skipped, since a typo would otherwise quietly change which sensors an
// analysis averages over.
func (m *Montage) ROIs(groups map[string][]string) (map[string][]int, error) {
	rois := make(map[string][]int, len(groups))

	for group, channels := range groups {
		if len(channels) == 0 {
			return nil, fmt.Errorf("roi %q has no channels", group)
		}

		indices := make([]int, len(channels))
		for i, name := range channels {
			idx, ok := m.index[name]
			if !ok {
				return nil, fmt.Errorf("roi %q references unknown channel %q", group, name)
			}
			indices[i] = idx
		}
		rois[group] = indices
	}

	return rois, nil
}

// Standard1020 returns the 19 electrode names of the classic international
// 10-20 system, in the usual anterior-to-posterior order.
func Standard1020() []string {
	return []string{
		"Fp1", "Fp2",
		"F7", "F3", "Fz", "F4", "F8",
		"T7", "C3", "Cz", "C4", "T8",
		"P7", "P3", "Pz", "P4", "P8",
		"O1", "O2",
	}
}
