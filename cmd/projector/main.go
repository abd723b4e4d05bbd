// Package main provides the column projector: it trims the museum-object CSV
// down to the columns the visualizations read.
package main

import (
	"fmt"
	"io"
	"os"

	"metprep/internal/config"
	"metprep/internal/fsutil"
	"metprep/internal/logger"
	"metprep/internal/projector"
	"metprep/internal/table"
)

func main() {
	cfg, err := config.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr).ForRun("projector")

	if err := run(cfg, log, os.Stdout); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, stdout io.Writer) error {
	p := cfg.Projector

	log.Debug("loaded configuration", "config", cfg.String())

	tbl, err := table.Load(p.Input, table.Options{Strict: true})
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	log.Info("read input", "path", p.Input, "rows", tbl.Len(), "columns", len(tbl.Header))

	out, err := projector.Project(tbl, p.Columns)
	if err != nil {
		return fmt.Errorf("error projecting %s: %w", p.Input, err)
	}

	data, err := table.Encode(out)
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}

	if err := fsutil.WriteFileAtomic(p.Output, data, 0644); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	log.Info("wrote output", "path", p.Output, "rows", out.Len(), "bytes", len(data))

	fmt.Fprintf(stdout, "Wrote %d rows with %d columns to %s\n", out.Len(), len(out.Header), p.Output)

	return nil
}
