// Package verify checks sort output against a trusted baseline.
package verify

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/cespare/xxhash/v2"
)

// ReferenceSort sorts data ascending with the standard library. Ties between
// -0 and +0 are broken by sign so the result is bit-for-bit comparable with
// the radix kernel. NaNs are not supported.
func ReferenceSort(data []float32) {
	slices.SortFunc(data, compare)
}

func compare(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	sa, sb := math.Signbit(float64(a)), math.Signbit(float64(b))
	switch {
	case sa && !sb:
		return -1
	case !sa && sb:
		return 1
	}
	return 0
}

// IsSorted reports whether data is in non-decreasing numeric order and, if
// not, the first index that breaks it.
func IsSorted(data []float32) (bool, int) {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false, i
		}
	}
	return true, -1
}

// FirstMismatch returns the first index where a and b differ bit-wise, or -1
// when they are identical.
func FirstMismatch(a, b []float32) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// SameMultiset reports whether b is a permutation of a, comparing exact bit
// patterns.
func SameMultiset(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}

	counts := haxmap.New[uint32, int](uintptr(min(len(a), 1<<20) + 1))
	for _, f := range a {
		bits := math.Float32bits(f)
		c, _ := counts.Get(bits)
		counts.Set(bits, c+1)
	}

	outstanding := len(a)
	for _, f := range b {
		bits := math.Float32bits(f)
		c, ok := counts.Get(bits)
		if !ok {
			return false
		}
		if c == 1 {
			counts.Del(bits)
		} else {
			counts.Set(bits, c-1)
		}
		outstanding--
	}
	return outstanding == 0
}

// Fingerprint hashes the bit patterns of data in order.
func Fingerprint(data []float32) uint64 {
	h := xxhash.New()
	var buf [4 * 1024]byte
	for len(data) > 0 {
		n := min(len(data), len(buf)/4)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(data[i]))
		}
		h.Write(buf[:n*4])
		data = data[n:]
	}
	return h.Sum64()
}
