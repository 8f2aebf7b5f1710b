package radix

import (
	"math/rand"
	"testing"
)

func TestAggregate(t *testing.T) {
	local := make([]Histogram, 3)
	local[0][0] = 2
	local[1][0] = 1
	local[1][7] = 4
	local[2][255] = 5

	global := aggregate(local)
	if global[0] != 3 || global[7] != 4 || global[255] != 5 {
		t.Errorf("unexpected global histogram: [0]=%d [7]=%d [255]=%d", global[0], global[7], global[255])
	}
	if global.Total() != 12 {
		t.Errorf("expected total 12, got %d", global.Total())
	}
}

func TestExclusiveScan(t *testing.T) {
	var global Histogram
	global[0] = 2
	global[3] = 1
	global[255] = 4

	offsets := exclusiveScan(&global)

	if offsets[0] != 0 {
		t.Errorf("offsets[0] should be 0, got %d", offsets[0])
	}
	if offsets[1] != 2 || offsets[3] != 2 || offsets[4] != 3 || offsets[255] != 3 {
		t.Errorf("unexpected offsets: [1]=%d [3]=%d [4]=%d [255]=%d", offsets[1], offsets[3], offsets[4], offsets[255])
	}
}

func TestExclusiveScan_IsPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var global Histogram
	for b := range global {
		global[b] = rng.Intn(100)
	}
	offsets := exclusiveScan(&global)

	for b := 1; b < buckets; b++ {
		if offsets[b] != offsets[b-1]+global[b-1] {
			t.Fatalf("offsets[%d]=%d, expected %d", b, offsets[b], offsets[b-1]+global[b-1])
		}
	}
	if end := offsets[buckets-1] + global[buckets-1]; end != global.Total() {
		t.Errorf("last bucket ends at %d, expected %d", end, global.Total())
	}
}

func TestCheckTotal(t *testing.T) {
	var global Histogram
	global[10] = 5
	if err := checkTotal(&global, 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := checkTotal(&global, 6); err == nil {
		t.Error("expected error for mismatched total")
	}
}
