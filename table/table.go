// Package table holds the flat pixel table produced by an extraction: an
// ordered list of column names plus rows of typed cells.
package table

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Table is a column-ordered, row-oriented result table. Column order is
// significant and fixed at construction.
type Table struct {
	cols []string
	rows [][]Value
}

func New(cols []string) *Table {
	cp := make([]string, len(cols))
	copy(cp, cols)
	return &Table{cols: cp}
}

// Append adds one row. The row must match the table arity exactly.
func (t *Table) Append(row []Value) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, row)
	return nil
}

func (t *Table) Columns() []string {
	cp := make([]string, len(t.cols))
	copy(cp, t.cols)
	return cp
}

func (t *Table) NumRows() int { return len(t.rows) }

// Row returns the i-th row. The returned slice is shared, not a copy.
func (t *Table) Row(i int) []Value { return t.rows[i] }

// Cell returns the named cell of row i, or a null value and false when the
// column does not exist.
func (t *Table) Cell(i int, col string) (Value, bool) {
	for j, c := range t.cols {
		if c == col {
			return t.rows[i][j], true
		}
	}
	return Null(), false
}

// WriteCSV writes the table with a header row. Null cells encode as empty
// fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(t.cols))
	for i, row := range t.rows {
		for j, v := range row {
			rec[j] = v.Encode()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Fingerprint hashes the column names and every cell into a single xxhash
// digest. Two tables with identical schema and content produce the same
// fingerprint.
func (t *Table) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, c := range t.cols {
		_, _ = d.WriteString(c)
		_, _ = d.Write([]byte{0})
	}
	for _, row := range t.rows {
		for _, v := range row {
			_, _ = d.Write([]byte{byte(v.kind)})
			switch v.kind {
			case KindInt:
				binary.LittleEndian.PutUint64(buf[:], uint64(v.n))
				_, _ = d.Write(buf[:])
			case KindFloat:
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.f))
				_, _ = d.Write(buf[:])
			case KindString:
				_, _ = d.WriteString(v.s)
				_, _ = d.Write([]byte{0})
			}
		}
	}
	return d.Sum64()
}
