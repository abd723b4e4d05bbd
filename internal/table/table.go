// Package table loads and writes header-first CSV tables held fully in memory.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table read errors.
var (
	ErrEmptyInput  = errors.New("input has no header row")
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
	ErrRaggedRow   = errors.New("row has more fields than the header")
)

// Options configures how a table is read.
type Options struct {
	// Strict rejects rows with more fields than the header. Rows with fewer
	// fields are always accepted; their missing cells read as absent.
	Strict bool
}

// Table is a header plus its data rows.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
	last  map[string]int
}

// New builds a table from a header and rows. Rows are used as given.
func New(header []string, rows [][]string) *Table {
	t := &Table{
		Header: header,
		Rows:   rows,
		index:  make(map[string]int, len(header)),
		last:   make(map[string]int, len(header)),
	}

	for i, name := range header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}

		t.last[name] = i
	}

	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a header column. A repeated name
// resolves to its first occurrence.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Has reports whether the header contains name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Record returns a named view over row i.
func (t *Table) Record(i int) Record {
	return Record{table: t, fields: t.Rows[i]}
}

// Record is one row addressed by column name.
type Record struct {
	table  *Table
	fields []string
}

// Get returns the cell for column name. The boolean is false when the column
// is not in the header or the row is too short to hold it. A repeated name
// resolves to its last occurrence, the way a row turned into a map would.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.table.last[name]
	if !ok || i >= len(r.fields) {
		return "", false
	}

	return r.fields[i], true
}

// Load reads the whole file at path into a table.
func Load(path string, opts Options) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Parse decodes UTF-8 CSV bytes into a table. A leading byte order mark is
// dropped so it never becomes part of the first column name. Line breaks
// inside quoted cells are kept byte for byte, including "\r\n".
func Parse(data []byte, opts Options) (*Table, error) {
	if off := invalidUTF8Offset(data); off >= 0 {
		line := bytes.Count(data[:off], []byte("\n")) + 1
		return nil, fmt.Errorf("%w: line %d, byte offset %d", ErrInvalidUTF8, line, off)
	}

	decoded := transform.NewReader(bytes.NewReader(data),
		transform.Chain(unicode.UTF8BOM.NewDecoder(), newCRGuard()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	restoreCR(header)

	var rows [][]string

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, readErr)
		}

		if opts.Strict && len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrRaggedRow, line, len(record), len(header))
		}

		restoreCR(record)
		rows = append(rows, record)
	}

	return New(header, rows), nil
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence, or -1.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}

	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size == 1 {
			return off
		}

		off += size
	}

	return -1
}

// Write encodes t as CSV: the header, then every row. Rows shorter than the
// header are padded with empty cells.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t.Rows {
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			row = padded
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// Encode returns t encoded as CSV bytes.
func Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
