package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ChristianF88/fradix/bench"
	"github.com/ChristianF88/fradix/config"
	"github.com/ChristianF88/fradix/output"
	"github.com/ChristianF88/fradix/radix"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// OutputConfig contains output formatting options
type OutputConfig struct {
	Compact bool
	Plain   bool
}

// NewLogger builds the process logger. Logs go to stderr so stdout stays
// reserved for results.
func NewLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = atomicLevel
	zc.Encoding = "console"
	zc.Sampling = nil
	zc.DisableStacktrace = true
	return zc.Build()
}

// SortFromConfig reads cfg.Sort.Input (or in), sorts it and writes the result
// to cfg.Sort.Output (or out).
func SortFromConfig(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	sc := cfg.Sort

	if sc.Input != "" {
		f, err := os.Open(sc.Input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := ReadFloats(in, sc.Format)
	if err != nil {
		return err
	}

	workers := config.ResolveWorkers(sc.Workers)
	start := time.Now()
	err = radix.SortContext(ctx, data, workers,
		radix.WithLogger(logger),
		radix.WithShutdownTimeout(sc.ShutdownTimeout))
	if err != nil {
		return fmt.Errorf("sorting %d floats: %w", len(data), err)
	}
	logger.Info("sorted input",
		zap.String("count", humanize.Comma(int64(len(data)))),
		zap.String("size", humanize.Bytes(uint64(len(data)*4))),
		zap.Int("workers", workers),
		zap.Duration("took", time.Since(start)))

	if sc.Output != "" {
		f, err := os.Create(sc.Output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		if err := WriteFloats(f, data, sc.Format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return WriteFloats(out, data, sc.Format)
}

// BenchFromConfig runs the benchmark, renders the optional plot and prints
// the report.
func BenchFromConfig(ctx context.Context, cfg *config.Config, outputConfig OutputConfig, out io.Writer, logger *zap.Logger) error {
	result, err := bench.FromConfig(ctx, cfg, logger)
	if err != nil {
		if oerr := outputResult(out, result, outputConfig); oerr != nil {
			logger.Warn("failed to print report", zap.Error(oerr))
		}
		return err
	}

	if cfg.Bench.PlotPath != "" {
		plotStart := time.Now()
		if err := output.PlotReport(result, cfg.Bench.PlotPath); err != nil {
			result.AddWarning("plot_failed", err.Error(), 1)
		} else {
			result.AddWarning("info", fmt.Sprintf("Plot generated in %v at %s", time.Since(plotStart), cfg.Bench.PlotPath), 0)
		}
	}

	if err := outputResult(out, result, outputConfig); err != nil {
		return err
	}
	if !result.AllVerified() || len(result.Errors) > 0 {
		return fmt.Errorf("verification failed, see report errors")
	}
	return nil
}

// outputResult is the unified output function that handles all output formats
func outputResult(w io.Writer, jsonOutput *output.JSONOutput, outputConfig OutputConfig) error {
	if outputConfig.Plain {
		return jsonOutput.WritePlain(w)
	}

	var jsonBytes []byte
	var err error

	if outputConfig.Compact {
		jsonBytes, err = jsonOutput.ToCompactJSON()
	} else {
		jsonBytes, err = jsonOutput.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
