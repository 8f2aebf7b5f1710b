package cli

import (
	"fmt"
	"time"

	"github.com/ChristianF88/fradix/config"
	"github.com/ChristianF88/fradix/radix"
	"github.com/ChristianF88/fradix/version"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with other flags)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "logLevel",
		Usage: "Log level: debug, info, warn or error",
		Value: config.DefaultLogLevel,
	}

	// Kernel flags
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of sort workers (0 uses all CPUs)",
		Value: 0,
	}
	shutdownTimeoutFlag = &cli.DurationFlag{
		Name:  "shutdownTimeout",
		Usage: "Maximum wait for the worker pool to shut down",
		Value: radix.DefaultShutdownTimeout,
	}

	// Sort-specific flags
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "Path to the input file (stdin if empty)",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "Path to the output file (stdout if empty)",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Input/output encoding: 'text' (one float per line) or 'binary' (little-endian float32)",
		Value: config.DefaultFormat,
	}

	// Bench-specific flags
	sizeFlag = &cli.IntFlag{
		Name:  "size",
		Usage: "Number of random floats to generate",
		Value: config.DefaultBenchSize,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the random input",
		Value: config.DefaultSeed,
	}
	lowFlag = &cli.Float64Flag{
		Name:  "low",
		Usage: "Inclusive lower bound of the random input",
		Value: config.DefaultLow,
	}
	highFlag = &cli.Float64Flag{
		Name:  "high",
		Usage: "Exclusive upper bound of the random input",
		Value: config.DefaultHigh,
	}
	workerCountsFlag = &cli.IntSliceFlag{
		Name:  "workerCounts",
		Usage: "Worker counts to benchmark (multiple can be passed, 0 uses all CPUs)",
	}
	repeatFlag = &cli.IntFlag{
		Name:  "repeat",
		Usage: "Repetitions per measurement, best and mean are reported",
		Value: 1,
	}

	// Output flags
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the HTML charts (e.g., '/path/to/bench.html'). If not provided, no plot will be generated.",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
)

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	flagsToCheck := []string{
		"workers", "shutdownTimeout", "input", "output", "format",
		"size", "seed", "low", "high", "workerCounts", "repeat",
		"plotPath", "compact", "plain", "logLevel",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func loggerFor(cfg *config.Config) (*zap.Logger, error) {
	level := config.DefaultLogLevel
	if cfg.Log != nil && cfg.Log.Level != "" {
		level = cfg.Log.Level
	}
	return NewLogger(level)
}

// loadCommandConfig returns the config file contents in config mode and a
// config built from flags otherwise.
func loadCommandConfig(c *cli.Context, allowedInConfigMode []string, fromFlags func(*cli.Context) *config.Config) (*config.Config, error) {
	configPath := c.String("config")
	if configPath == "" {
		return fromFlags(c), nil
	}

	if err := validateConfigModeFlags(c, allowedInConfigMode); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func createSortConfigFromCLI(c *cli.Context) *config.Config {
	cfg := config.Default()
	cfg.Sort.Workers = c.Int("workers")
	cfg.Sort.ShutdownTimeout = c.Duration("shutdownTimeout")
	cfg.Sort.Input = c.String("input")
	cfg.Sort.Output = c.String("output")
	cfg.Sort.Format = c.String("format")
	cfg.Log.Level = c.String("logLevel")
	return cfg
}

func createBenchConfigFromCLI(c *cli.Context) *config.Config {
	cfg := config.Default()
	cfg.Sort.ShutdownTimeout = c.Duration("shutdownTimeout")
	cfg.Bench.Size = c.Int("size")
	cfg.Bench.Seed = c.Int64("seed")
	cfg.Bench.Low = c.Float64("low")
	cfg.Bench.High = c.Float64("high")
	cfg.Bench.WorkerCounts = c.IntSlice("workerCounts")
	cfg.Bench.Repeat = c.Int("repeat")
	cfg.Bench.PlotPath = c.String("plotPath")
	cfg.Log.Level = c.String("logLevel")
	return cfg
}

// handleSortCommand processes the sort command
func handleSortCommand(c *cli.Context) error {
	cfg, err := loadCommandConfig(c, []string{"input", "output"}, createSortConfigFromCLI)
	if err != nil {
		return err
	}
	// flags override the file locations even in config mode
	if c.IsSet("input") {
		cfg.Sort.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Sort.Output = c.String("output")
	}

	if err := cfg.ValidateSort(); err != nil {
		return fmt.Errorf("invalid sort configuration: %w", err)
	}

	logger, err := loggerFor(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return SortFromConfig(c.Context, cfg, c.App.Reader, c.App.Writer, logger)
}

// handleBenchCommand processes the bench command
func handleBenchCommand(c *cli.Context) error {
	cfg, err := loadCommandConfig(c, []string{"compact", "plain"}, createBenchConfigFromCLI)
	if err != nil {
		return err
	}

	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}

	logger, err := loggerFor(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	outputConfig := OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
	}
	return BenchFromConfig(c.Context, cfg, outputConfig, c.App.Writer, logger)
}

// NewApp builds the command line application.
func NewApp() *cli.App {
	return &cli.App{
		Name:     "fradix",
		Usage:    "Sort float32 data with a parallel radix sort",
		Version:  version.Version,
		Compiled: parseDate(version.Date),
		Commands: []*cli.Command{
			{
				Name:  "sort",
				Usage: "Sort floats from a file or stdin",
				Flags: []cli.Flag{
					configFlag,
					logLevelFlag,
					workersFlag,
					shutdownTimeoutFlag,
					inputFlag,
					outputFlag,
					formatFlag,
				},
				Action: handleSortCommand,
			},
			{
				Name:  "bench",
				Usage: "Benchmark the radix sort against a baseline sort on random input",
				Flags: []cli.Flag{
					configFlag,
					logLevelFlag,
					shutdownTimeoutFlag,
					sizeFlag,
					seedFlag,
					lowFlag,
					highFlag,
					workerCountsFlag,
					repeatFlag,
					plotPathFlag,
					compactFlag,
					plainFlag,
				},
				Action: handleBenchCommand,
			},
		},
	}
}

var App = NewApp()
