// Package normalizer provides functionality for normalizing free-text
// country values and counting them.
package normalizer

import (
	"fmt"

	"metprep/internal/table"
	"metprep/internal/tally"
)

// Stats summarizes one Process run.
type Stats struct {
	Rows    int
	Counted int
	Skipped int
}

// SkipFunc is called for every row whose value normalized to nothing.
// row is zero-based.
type SkipFunc func(row int, raw string)

// Processor handles validation, normalization and counting.
type Processor struct {
	column      string
	validator   *Validator
	transformer *Transformer
	onSkip      SkipFunc
}

// NewProcessor creates a processor reading values from column.
func NewProcessor(column string) *Processor {
	return &Processor{
		column:      column,
		validator:   NewValidator(column),
		transformer: NewTransformer(),
	}
}

// OnSkip registers fn to observe skipped rows.
func (p *Processor) OnSkip(fn SkipFunc) *Processor {
	p.onSkip = fn
	return p
}

// Process normalizes the configured column of every row and counts the
// canonical names.
func (p *Processor) Process(t *table.Table) (*tally.Counts, Stats, error) {
	// 1. Validate the input table
	if err := p.validator.Validate(t); err != nil {
		return nil, Stats{}, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Normalize and count
	counts := tally.New()
	stats := Stats{Rows: t.Len()}

	for i := range t.Rows {
		raw, _ := t.Record(i).Get(p.column)

		country, ok := p.transformer.Transform(raw)
		if !ok {
			stats.Skipped++

			if p.onSkip != nil {
				p.onSkip(i, raw)
			}

			continue
		}

		counts.Inc(country)
		stats.Counted++
	}

	return counts, stats, nil
}
