package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ChristianF88/fradix/radix"
)

const (
	DefaultBenchSize       = 1_000_000
	DefaultSeed      int64 = 42
	DefaultLow             = -500_000.0
	DefaultHigh            = 500_000.0
	DefaultFormat          = "text"
	DefaultLogLevel        = "info"
)

// Input/output encodings understood by the sort command.
const (
	FormatText   = "text"
	FormatBinary = "binary"
)

type SortConfig struct {
	// Workers is the degree of parallelism; 0 selects radix.DefaultWorkers().
	Workers         int           `toml:"workers"`
	ShutdownTimeout time.Duration `toml:"shutdownTimeout"`
	Input           string        `toml:"input"`
	Output          string        `toml:"output"`
	Format          string        `toml:"format"`
}

type BenchConfig struct {
	Size         int     `toml:"size"`
	Seed         int64   `toml:"seed"`
	Low          float64 `toml:"low"`
	High         float64 `toml:"high"`
	WorkerCounts []int   `toml:"workerCounts"`
	Repeat       int     `toml:"repeat"`
	PlotPath     string  `toml:"plotPath"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Sort  *SortConfig  `toml:"sort"`
	Bench *BenchConfig `toml:"bench"`
	Log   *LogConfig   `toml:"log"`
}

// Default returns a configuration with every section populated.
func Default() *Config {
	return &Config{
		Sort:  defaultSortConfig(),
		Bench: defaultBenchConfig(),
		Log:   &LogConfig{Level: DefaultLogLevel},
	}
}

func defaultSortConfig() *SortConfig {
	return &SortConfig{
		ShutdownTimeout: time.Hour,
		Format:          DefaultFormat,
	}
}

func defaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		Size:   DefaultBenchSize,
		Seed:   DefaultSeed,
		Low:    DefaultLow,
		High:   DefaultHigh,
		Repeat: 1,
	}
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := Default()
	for key, value := range rawConfig {
		section, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q must be a table", key)
		}
		switch key {
		case "sort":
			if err := parseSortConfig(section, config.Sort); err != nil {
				return nil, fmt.Errorf("parsing [sort]: %w", err)
			}
		case "bench":
			if err := parseBenchConfig(section, config.Bench); err != nil {
				return nil, fmt.Errorf("parsing [bench]: %w", err)
			}
		case "log":
			if v, ok := section["level"].(string); ok {
				config.Log.Level = v
			}
		default:
			return nil, fmt.Errorf("unknown config section %q", key)
		}
	}

	return config, nil
}

func parseSortConfig(m map[string]any, config *SortConfig) error {
	if v, ok := m["workers"].(int64); ok {
		config.Workers = int(v)
	}
	if v, ok := m["shutdownTimeout"].(string); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid shutdownTimeout %q: %w", v, err)
		}
		config.ShutdownTimeout = d
	}
	if v, ok := m["input"].(string); ok {
		config.Input = v
	}
	if v, ok := m["output"].(string); ok {
		config.Output = v
	}
	if v, ok := m["format"].(string); ok {
		config.Format = v
	}
	return nil
}

func parseBenchConfig(m map[string]any, config *BenchConfig) error {
	if v, ok := m["size"].(int64); ok {
		config.Size = int(v)
	}
	if v, ok := m["seed"].(int64); ok {
		config.Seed = v
	}
	if v, ok := toFloat(m["low"]); ok {
		config.Low = v
	}
	if v, ok := toFloat(m["high"]); ok {
		config.High = v
	}
	if v, ok := m["repeat"].(int64); ok {
		config.Repeat = int(v)
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	if raw, ok := m["workerCounts"].([]any); ok {
		config.WorkerCounts = config.WorkerCounts[:0]
		for _, item := range raw {
			n, ok := item.(int64)
			if !ok {
				return fmt.Errorf("workerCounts entries must be integers, got %v", item)
			}
			config.WorkerCounts = append(config.WorkerCounts, int(n))
		}
	}
	return nil
}

// toFloat accepts both TOML integers and floats.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ResolveWorkers maps 0 to the number of CPUs.
func ResolveWorkers(workers int) int {
	if workers == 0 {
		return radix.DefaultWorkers()
	}
	return workers
}

// EffectiveWorkerCounts returns the worker counts to benchmark.
func (b *BenchConfig) EffectiveWorkerCounts() []int {
	if len(b.WorkerCounts) == 0 {
		return []int{radix.DefaultWorkers()}
	}
	counts := make([]int, len(b.WorkerCounts))
	for i, w := range b.WorkerCounts {
		counts[i] = ResolveWorkers(w)
	}
	return counts
}

func (c *Config) ValidateSort() error {
	if c.Sort == nil {
		return fmt.Errorf("sort configuration section is required")
	}
	if c.Sort.Workers < 0 {
		return fmt.Errorf("workers must be positive or 0 for all CPUs, got %d", c.Sort.Workers)
	}
	if c.Sort.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdownTimeout must be positive, got %s", c.Sort.ShutdownTimeout)
	}
	if c.Sort.Format != FormatText && c.Sort.Format != FormatBinary {
		return fmt.Errorf("unknown format %q, expected %q or %q", c.Sort.Format, FormatText, FormatBinary)
	}
	if c.Sort.Input != "" {
		if _, err := os.Stat(c.Sort.Input); os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", c.Sort.Input)
		}
	}
	return c.validateLog()
}

func (c *Config) ValidateBench() error {
	if c.Bench == nil {
		return fmt.Errorf("bench configuration section is required")
	}
	if c.Bench.Size < 0 {
		return fmt.Errorf("size must not be negative, got %d", c.Bench.Size)
	}
	if !(c.Bench.Low < c.Bench.High) {
		return fmt.Errorf("low (%v) must be below high (%v)", c.Bench.Low, c.Bench.High)
	}
	if c.Bench.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Bench.Repeat)
	}
	for _, w := range c.Bench.WorkerCounts {
		if w < 0 {
			return fmt.Errorf("workerCounts must be positive or 0 for all CPUs, got %d", w)
		}
	}
	if c.Bench.PlotPath != "" {
		plotDir := filepath.Dir(c.Bench.PlotPath)
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	if c.Sort != nil && c.Sort.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdownTimeout must be positive, got %s", c.Sort.ShutdownTimeout)
	}
	return c.validateLog()
}

func (c *Config) validateLog() error {
	if c.Log == nil {
		return nil
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q", c.Log.Level)
}
