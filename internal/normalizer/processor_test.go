package normalizer

import (
	"errors"
	"testing"

	"metprep/internal/table"
)

func TestNewProcessor(t *testing.T) {
	p := NewProcessor("Country")
	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
}

func TestProcessor_Process(t *testing.T) {
	tbl := table.New(
		[]string{"Object ID", "Country"},
		[][]string{
			{"1", "United States"},
			{"2", "USA"},
			{"3", "France"},
			{"4", ""},
			{"5", "Probably France?"},
			{"6"},
			{"7", "??"},
			{"8", "Egypt"},
		},
	)

	var skipped []int

	p := NewProcessor("Country").OnSkip(func(row int, _ string) {
		skipped = append(skipped, row)
	})

	counts, stats, err := p.Process(tbl)
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if stats.Rows != 8 || stats.Counted != 5 || stats.Skipped != 3 {
		t.Errorf("Stats = %+v, want {Rows:8 Counted:5 Skipped:3}", stats)
	}

	if counts.Total() != stats.Counted {
		t.Errorf("Total() = %d, want %d", counts.Total(), stats.Counted)
	}

	want := []struct {
		key   string
		count int
	}{
		{"United States of America", 2},
		{"France", 2},
		{"Egypt", 1},
	}

	got := counts.Sorted()
	if len(got) != len(want) {
		t.Fatalf("Sorted() = %+v, want %d entries", got, len(want))
	}

	for i, w := range want {
		if got[i].Key != w.key || got[i].Count != w.count {
			t.Errorf("Sorted()[%d] = %+v, want %s=%d", i, got[i], w.key, w.count)
		}
	}

	if len(skipped) != 3 || skipped[0] != 3 || skipped[1] != 5 || skipped[2] != 6 {
		t.Errorf("skipped rows = %v, want [3 5 6]", skipped)
	}
}

func TestProcessor_Process_SumMatchesNonEmpty(t *testing.T) {
	inputs := []string{"Italy", "", "italy ", "Possibly Italy", "   ", "Japan", "present-day Japan", "Peru?"}

	rows := make([][]string, len(inputs))
	nonEmpty := 0

	for i, in := range inputs {
		rows[i] = []string{in}
		if _, ok := NormalizeCountry(in); ok {
			nonEmpty++
		}
	}

	counts, _, err := NewProcessor("Country").Process(table.New([]string{"Country"}, rows))
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	if counts.Total() != nonEmpty {
		t.Errorf("Total() = %d, want %d", counts.Total(), nonEmpty)
	}

	if counts.Get("Italy") != 3 || counts.Get("Japan") != 2 || counts.Get("Peru") != 1 {
		t.Errorf("unexpected counts: Italy=%d Japan=%d Peru=%d",
			counts.Get("Italy"), counts.Get("Japan"), counts.Get("Peru"))
	}
}

func TestProcessor_Process_ValidationError(t *testing.T) {
	p := NewProcessor("Country")

	counts, _, err := p.Process(table.New([]string{"Culture"}, [][]string{{"French"}}))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Process error = %v, want ErrMissingColumn", err)
	}

	if counts != nil {
		t.Error("Process expected nil result for invalid input")
	}
}
