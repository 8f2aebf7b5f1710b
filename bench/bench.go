// Package bench times the radix kernel against a baseline sort on generated
// input and verifies its output.
package bench

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/ChristianF88/fradix/config"
	"github.com/ChristianF88/fradix/output"
	"github.com/ChristianF88/fradix/radix"
	"github.com/ChristianF88/fradix/verify"
	"github.com/ChristianF88/fradix/version"
	"go.uber.org/zap"
)

const baselineName = "slices.SortFunc"

// Generate returns n floats drawn uniformly from [low, high) using seed.
func Generate(seed int64, n int, low, high float64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	lo, hi := float32(low), float32(high)
	data := make([]float32, n)
	for i := range data {
		v := float32(low + rng.Float64()*(high-low))
		if v >= hi {
			v = math.Nextafter32(hi, lo)
		}
		data[i] = v
	}
	return data
}

// FromConfig runs the benchmark described by cfg.Bench. The returned output
// is populated even when err is non-nil.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*output.JSONOutput, error) {
	start := time.Now()
	jsonOutput := output.NewJSONOutput("bench", version.Version, start)

	if cfg == nil || cfg.Bench == nil {
		jsonOutput.AddError("config_error", "bench configuration section is missing", 1)
		return jsonOutput, fmt.Errorf("bench configuration section is missing")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bc := cfg.Bench
	shutdownTimeout := radix.DefaultShutdownTimeout
	if cfg.Sort != nil && cfg.Sort.ShutdownTimeout > 0 {
		shutdownTimeout = cfg.Sort.ShutdownTimeout
	}

	original := Generate(bc.Seed, bc.Size, bc.Low, bc.High)
	jsonOutput.Input = output.Input{
		Size:  len(original),
		Bytes: len(original) * 4,
		Seed:  bc.Seed,
		Low:   bc.Low,
		High:  bc.High,
	}
	logger.Info("generated benchmark input",
		zap.Int("size", bc.Size),
		zap.Int64("seed", bc.Seed),
		zap.Int("repeat", bc.Repeat))

	want := make([]float32, len(original))
	baseline := measure(baselineName, bc.Repeat, func() error {
		copy(want, original)
		verify.ReferenceSort(want)
		return nil
	})
	jsonOutput.Baseline = &baseline.Timing

	work := make([]float32, len(original))
	var firstFingerprint string
	for i, workers := range bc.EffectiveWorkerCounts() {
		if workers > len(original) {
			jsonOutput.AddWarning("small_input",
				fmt.Sprintf("workers=%d exceeds input size %d, some workers get empty ranges", workers, len(original)), 1)
		}

		opts := []radix.Option{
			radix.WithLogger(logger.With(zap.Int("workers", workers))),
			radix.WithShutdownTimeout(shutdownTimeout),
		}
		if i == 0 {
			opts = append(opts, radix.WithPassObserver(passRecorder(jsonOutput)))
		}

		timed := measure("radix workers="+strconv.Itoa(workers), bc.Repeat, func() error {
			copy(work, original)
			return radix.SortContext(ctx, work, workers, opts...)
		})
		if timed.err != nil {
			jsonOutput.AddError("sort_failed", fmt.Sprintf("workers=%d: %v", workers, timed.err), 1)
			jsonOutput.UpdateDuration(start)
			return jsonOutput, fmt.Errorf("sorting with %d workers: %w", workers, timed.err)
		}

		run := output.Run{
			Workers:     workers,
			Timing:      timed.Timing,
			Verified:    checkOrder(jsonOutput, workers, want, work),
			Fingerprint: fmt.Sprintf("%016x", verify.Fingerprint(work)),
		}
		if run.Timing.BestMS > 0 {
			run.Speedup = baseline.BestMS / run.Timing.BestMS
		}
		if i == 0 {
			firstFingerprint = run.Fingerprint
			if !verify.SameMultiset(original, work) {
				jsonOutput.AddError("verify_failed", fmt.Sprintf("workers=%d: output is not a permutation of the input", workers), 1)
			}
		} else if run.Fingerprint != firstFingerprint {
			jsonOutput.AddError("nondeterministic",
				fmt.Sprintf("workers=%d produced fingerprint %s, expected %s", workers, run.Fingerprint, firstFingerprint), 1)
		}

		logger.Info("radix run finished",
			zap.Int("workers", workers),
			zap.Float64("best_ms", run.Timing.BestMS),
			zap.Bool("verified", run.Verified))
		jsonOutput.Runs = append(jsonOutput.Runs, run)
	}

	jsonOutput.UpdateDuration(start)
	return jsonOutput, nil
}

// checkOrder compares work against the baseline result and records a
// verify_failed error for the first problem found.
func checkOrder(jsonOutput *output.JSONOutput, workers int, want, work []float32) bool {
	if ok, idx := verify.IsSorted(work); !ok {
		jsonOutput.AddError("verify_failed",
			fmt.Sprintf("workers=%d: output not sorted at index %d (%v > %v)", workers, idx, work[idx-1], work[idx]), 1)
		return false
	}
	idx := verify.FirstMismatch(want, work)
	if idx == -1 {
		return true
	}
	if idx < len(work) && idx < len(want) {
		jsonOutput.AddError("verify_failed",
			fmt.Sprintf("workers=%d: index %d is %v, baseline has %v", workers, idx, work[idx], want[idx]), 1)
	} else {
		jsonOutput.AddError("verify_failed",
			fmt.Sprintf("workers=%d: output has %d values, baseline has %d", workers, len(work), len(want)), 1)
	}
	return false
}

// passRecorder stores the distribution of each pass once; repetitions see
// identical histograms.
func passRecorder(jsonOutput *output.JSONOutput) func(radix.PassStats) {
	return func(ps radix.PassStats) {
		if ps.Pass < len(jsonOutput.Passes) {
			return
		}
		jsonOutput.Passes = append(jsonOutput.Passes,
			output.NewPassDistribution(ps.Pass, ps.Shift, ps.Counts[:]))
	}
}

type measurement struct {
	output.Timing
	err error
}

// measure runs fn repeat times and records the best and mean wall time.
func measure(name string, repeat int, fn func() error) measurement {
	m := measurement{Timing: output.Timing{Name: name}}
	if repeat < 1 {
		repeat = 1
	}
	var total time.Duration
	best := time.Duration(math.MaxInt64)
	for r := 0; r < repeat; r++ {
		t0 := time.Now()
		if err := fn(); err != nil {
			m.err = err
			return m
		}
		d := time.Since(t0)
		total += d
		best = min(best, d)
	}
	m.BestMS = durationMS(best)
	m.MeanMS = durationMS(total / time.Duration(repeat))
	return m
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
