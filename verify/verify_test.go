package verify

import (
	"math"
	"math/rand"
	"testing"
)

func TestReferenceSort(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	data := []float32{3.5, -1, 0, negZero, 2.25, -3.5}
	ReferenceSort(data)

	expected := []float32{-3.5, -1, negZero, 0, 2.25, 3.5}
	if idx := FirstMismatch(expected, data); idx != -1 {
		t.Errorf("mismatch at %d: expected %v, got %v", idx, expected, data)
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name    string
		data    []float32
		want    bool
		wantIdx int
	}{
		{"empty", nil, true, -1},
		{"single", []float32{1}, true, -1},
		{"sorted with duplicates", []float32{-1, 0, 0, 2}, true, -1},
		{"unsorted", []float32{1, 3, 2}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, idx := IsSorted(tt.data)
			if got != tt.want || idx != tt.wantIdx {
				t.Errorf("IsSorted(%v) = (%v, %d), want (%v, %d)", tt.data, got, idx, tt.want, tt.wantIdx)
			}
		})
	}
}

func TestFirstMismatch(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	if idx := FirstMismatch([]float32{1, 0}, []float32{1, negZero}); idx != 1 {
		t.Errorf("expected signed zero mismatch at 1, got %d", idx)
	}
	if idx := FirstMismatch([]float32{1, 2}, []float32{1, 2, 3}); idx != 2 {
		t.Errorf("expected length mismatch at 2, got %d", idx)
	}
	if idx := FirstMismatch([]float32{1, 2}, []float32{1, 2}); idx != -1 {
		t.Errorf("expected no mismatch, got %d", idx)
	}
}

func TestSameMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := make([]float32, 10000)
	for i := range a {
		a[i] = float32(rng.Intn(300)) - 150
	}
	b := append([]float32(nil), a...)
	ReferenceSort(b)

	if !SameMultiset(a, b) {
		t.Error("sorted copy should be a permutation of the input")
	}

	b[0] = 12345
	if SameMultiset(a, b) {
		t.Error("changed element should break the permutation")
	}

	if SameMultiset([]float32{1, 1, 2}, []float32{1, 2, 2}) {
		t.Error("different multiplicities should not match")
	}
	if SameMultiset([]float32{1}, []float32{1, 1}) {
		t.Error("different lengths should not match")
	}
}

func TestFingerprint(t *testing.T) {
	a := make([]float32, 5000)
	for i := range a {
		a[i] = float32(i) * 0.5
	}
	b := append([]float32(nil), a...)

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal slices should have equal fingerprints")
	}
	b[4999] = -1
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different slices should have different fingerprints")
	}
	if Fingerprint(nil) != Fingerprint([]float32{}) {
		t.Error("nil and empty should hash identically")
	}
}
