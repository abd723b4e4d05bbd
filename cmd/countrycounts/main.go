// Package main provides the country normalizer: it counts canonical country
// names in the museum-object CSV and writes them as a JSON object.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"metprep/internal/config"
	"metprep/internal/formatter"
	"metprep/internal/fsutil"
	"metprep/internal/logger"
	"metprep/internal/normalizer"
	"metprep/internal/table"
	"metprep/internal/tally"
)

func main() {
	cfg, err := config.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr).ForRun("countrycounts")

	if err := run(cfg, log, os.Stdout, os.Stderr); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, stdout, stderr io.Writer) error {
	src := cfg.Countries

	log.Debug("loaded configuration", "config", cfg.String())

	tbl, err := table.Load(src.Input, table.Options{})
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	log.Info("read input", "path", src.Input, "rows", tbl.Len(), "column", src.Column)

	processor := normalizer.NewProcessor(src.Column)
	if log.Enabled(slog.LevelDebug) {
		processor.OnSkip(func(row int, raw string) {
			log.Debug("skipped row", "row", row+1, "value", raw)
		})
	}

	counts, stats, err := processor.Process(tbl)
	if err != nil {
		return fmt.Errorf("error normalizing %s: %w", src.Input, err)
	}

	log.Info("normalized countries",
		"counted", stats.Counted,
		"skipped", stats.Skipped,
		"distinct", counts.Len(),
	)

	data, err := tally.EncodeIndented(counts)
	if err != nil {
		return fmt.Errorf("error encoding counts: %w", err)
	}

	if err := fsutil.WriteFileAtomic(src.Output, data, 0644); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	log.Info("wrote output", "path", src.Output, "bytes", len(data))

	if n := cfg.Logging.SampleCountries; n > 0 && counts.Len() > 0 {
		fmt.Fprintln(stderr, formatter.CountsTable(counts, n))
	}

	fmt.Fprintf(stdout, "Wrote %d normalized countries to %s\n", counts.Len(), src.Output)

	return nil
}
