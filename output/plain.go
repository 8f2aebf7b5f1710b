package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// WritePlain writes a human readable summary of the report.
func (j *JSONOutput) WritePlain(w io.Writer) error {
	fmt.Fprintf(w, "fradix %s (%s)\n", j.Metadata.RunType, j.Metadata.Version)
	fmt.Fprintf(w, "Input: %s floats (%s)",
		humanize.Comma(int64(j.Input.Size)), humanize.Bytes(uint64(j.Input.Bytes)))
	if j.Input.Source != "" {
		fmt.Fprintf(w, " from %s", j.Input.Source)
	}
	fmt.Fprintln(w)

	if j.Baseline != nil {
		fmt.Fprintf(w, "%-24s best %10.2f ms  mean %10.2f ms\n",
			j.Baseline.Name, j.Baseline.BestMS, j.Baseline.MeanMS)
	}
	for _, r := range j.Runs {
		verdict := "verified"
		if !r.Verified {
			verdict = "MISMATCH"
		}
		line := fmt.Sprintf("%-24s best %10.2f ms  mean %10.2f ms  %s  %s",
			r.Timing.Name, r.Timing.BestMS, r.Timing.MeanMS, verdict, r.Fingerprint)
		if r.Speedup > 0 {
			line += fmt.Sprintf("  x%.2f", r.Speedup)
		}
		fmt.Fprintln(w, line)
	}

	for _, p := range j.Passes {
		fmt.Fprintf(w, "pass %d (shift %2d): %3d/256 buckets used, largest %s\n",
			p.Pass, p.Shift, p.NonEmptyBuckets, humanize.Comma(int64(p.LargestBucket)))
	}
	for _, warn := range j.Warnings {
		fmt.Fprintf(w, "warning [%s]: %s\n", warn.Type, warn.Message)
	}
	for _, e := range j.Errors {
		fmt.Fprintf(w, "error [%s]: %s\n", e.Type, e.Message)
	}

	_, err := fmt.Fprintf(w, "Duration: %d ms\n", j.Metadata.DurationMS)
	return err
}
