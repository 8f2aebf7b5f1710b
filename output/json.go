package output

import (
	"encoding/json"
	"sync"
	"time"
)

// JSONOutput is the complete report of a sort or bench run
type JSONOutput struct {
	Metadata Metadata           `json:"metadata"`
	Input    Input              `json:"input"`
	Baseline *Timing            `json:"baseline,omitempty"`
	Runs     []Run              `json:"runs"`
	Passes   []PassDistribution `json:"passes,omitempty"`
	Warnings []Warning          `json:"warnings"`
	Errors   []Error            `json:"errors"`

	// Mutex for thread-safe warning/error appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	RunType     string    `json:"run_type"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
}

// Input describes the sorted buffer
type Input struct {
	Source string  `json:"source,omitempty"`
	Size   int     `json:"size"`
	Bytes  int     `json:"bytes"`
	Seed   int64   `json:"seed,omitempty"`
	Low    float64 `json:"low,omitempty"`
	High   float64 `json:"high,omitempty"`
}

// Timing summarises repeated executions of one sort
type Timing struct {
	Name   string  `json:"name"`
	BestMS float64 `json:"best_ms"`
	MeanMS float64 `json:"mean_ms"`
}

// Run is one kernel configuration measured against the baseline
type Run struct {
	Workers     int     `json:"workers"`
	Timing      Timing  `json:"timing"`
	Speedup     float64 `json:"speedup,omitempty"`
	Verified    bool    `json:"verified"`
	Fingerprint string  `json:"fingerprint"`
}

// PassDistribution is the global bucket histogram of one radix pass
type PassDistribution struct {
	Pass            int   `json:"pass"`
	Shift           uint  `json:"shift"`
	NonEmptyBuckets int   `json:"non_empty_buckets"`
	LargestBucket   int   `json:"largest_bucket"`
	Counts          []int `json:"-"`
}

// Warning represents a warning message
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// Error represents an error message
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// NewJSONOutput creates a new JSONOutput with default metadata
func NewJSONOutput(runType, version string, startTime time.Time) *JSONOutput {
	return &JSONOutput{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			RunType:     runType,
			Version:     version,
			DurationMS:  time.Since(startTime).Milliseconds(),
		},
		Runs:     []Run{},
		Warnings: []Warning{},
		Errors:   []Error{},
	}
}

// NewPassDistribution summarises a 256 bucket histogram.
func NewPassDistribution(pass int, shift uint, counts []int) PassDistribution {
	pd := PassDistribution{
		Pass:   pass,
		Shift:  shift,
		Counts: append([]int(nil), counts...),
	}
	for _, c := range counts {
		if c > 0 {
			pd.NonEmptyBuckets++
		}
		if c > pd.LargestBucket {
			pd.LargestBucket = c
		}
	}
	return pd
}

// ToJSON converts the output to pretty-printed JSON
func (j *JSONOutput) ToJSON() ([]byte, error) {
	return json.MarshalIndent(j, "", "  ")
}

// ToCompactJSON converts the output to compact JSON
func (j *JSONOutput) ToCompactJSON() ([]byte, error) {
	return json.Marshal(j)
}

// AddWarning adds a warning to the output (thread-safe)
func (j *JSONOutput) AddWarning(warningType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Warnings = append(j.Warnings, Warning{
		Type:    warningType,
		Message: message,
		Count:   count,
	})
}

// AddError adds an error to the output (thread-safe)
func (j *JSONOutput) AddError(errorType, message string, count int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, Error{
		Type:    errorType,
		Message: message,
		Count:   count,
	})
}

// AllVerified reports whether every run matched the baseline.
func (j *JSONOutput) AllVerified() bool {
	for _, r := range j.Runs {
		if !r.Verified {
			return false
		}
	}
	return true
}

// UpdateDuration updates the duration in metadata
func (j *JSONOutput) UpdateDuration(startTime time.Time) {
	j.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}
