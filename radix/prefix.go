package radix

import "fmt"

// aggregate sums the per-worker histograms into a global one.
func aggregate(local []Histogram) Histogram {
	var global Histogram
	for w := range local {
		for b, c := range local[w] {
			global[b] += c
		}
	}
	return global
}

// exclusiveScan turns counts into bucket start offsets: offsets[0] is 0 and
// offsets[b] is the number of keys in buckets below b.
func exclusiveScan(global *Histogram) Histogram {
	var offsets Histogram
	running := 0
	for b, c := range global {
		offsets[b] = running
		running += c
	}
	return offsets
}

// checkTotal verifies that a global histogram accounts for exactly n keys.
func checkTotal(global *Histogram, n int) error {
	if total := global.Total(); total != n {
		return fmt.Errorf("radix: histogram counts %d keys, expected %d", total, n)
	}
	return nil
}
