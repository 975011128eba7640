package montage

import (
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty channel list")
	}

	if _, err := New([]string{"Fz", "", "Pz"}); err == nil {
		t.Fatal("expected error for empty channel name")
	}

	if _, err := New([]string{"Fz", "Cz", "Fz"}); err == nil {
		t.Fatal("expected error for duplicate channel name")
	}
}

func TestIndexLookup(t *testing.T) {
	m, err := New([]string{"Fz", "Cz", "Pz", "Oz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.NumChannels() != 4 {
		t.Fatalf("expected 4 channels, got %d", m.NumChannels())
	}

	idx, ok := m.Index("Pz")
	if !ok || idx != 2 {
		t.Fatalf("expected Pz at index 2, got %d (ok=%v)", idx, ok)
	}

	if _, ok := m.Index("TP10"); ok {
		t.Fatal("expected lookup of unknown channel to fail")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	m, err := New([]string{"Fz", "Cz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := m.Names()
	names[0] = "mangled"

	if got := m.Names()[0]; got != "Fz" {
		t.Fatalf("montage names mutated through returned slice: %q", got)
	}
}

func TestROIs(t *testing.T) {
	m, err := New([]string{"Fp1", "Fp2", "O1", "O2", "Oz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rois, err := m.ROIs(map[string][]string{
		"frontal":   {"Fp1", "Fp2"},
		"occipital": {"O1", "Oz", "O2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frontal := rois["frontal"]
	if len(frontal) != 2 || frontal[0] != 0 || frontal[1] != 1 {
		t.Fatalf("unexpected frontal indices %v", frontal)
	}

	occipital := rois["occipital"]
	if len(occipital) != 3 || occipital[0] != 2 || occipital[1] != 4 || occipital[2] != 3 {
		t.Fatalf("unexpected occipital indices %v", occipital)
	}
}

func TestROIsRejectsUnknownChannel(t *testing.T) {
	m, err := New([]string{"O1", "O2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ROIs(map[string][]string{"occipital": {"O1", "Ox"}}); err == nil {
		t.Fatal("expected error for unknown channel in ROI")
	}

	if _, err := m.ROIs(map[string][]string{"empty": {}}); err == nil {
		t.Fatal("expected error for empty ROI")
	}
}

func TestStandard1020(t *testing.T) {
	names := Standard1020()
	if len(names) != 19 {
		t.Fatalf("expected 19 channels in the 10-20 montage, got %d", len(names))
	}

	// The list itself must form a valid montage
	if _, err := New(names); err != nil {
		t.Fatalf("standard montage failed validation: %v", err)
	}
}
