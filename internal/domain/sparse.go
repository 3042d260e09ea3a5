package domain

import (
	"fmt"
	"slices"

	"github.com/james-bowman/sparse"
)

// SparseEntry is one nonzero cell of a sparse matrix.
type SparseEntry struct {
	Row, Col int
	Value    float64
}

// SparseMatrix is an immutable compressed-row matrix. Column indices within each row
// are stored ascending.
type SparseMatrix struct {
	rows, cols int
	// csr is nil when the matrix has no rows or no columns.
	csr *sparse.CSR
}

// NewSparseMatrix builds a matrix from entries in any order. Duplicate cells are summed
// and explicit zeros are dropped.
func NewSparseMatrix(rows, cols int, entries []SparseEntry) (SparseMatrix, error) {
	if rows < 0 || cols < 0 {
		return SparseMatrix{}, fmt.Errorf("matrix size %dx%d: %w", rows, cols, ErrInvalidArgument)
	}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return SparseMatrix{}, fmt.Errorf("entry (%d, %d) outside %dx%d matrix: %w",
				e.Row, e.Col, rows, cols, ErrInvalidArgument)
		}
	}

	m := SparseMatrix{rows: rows, cols: cols}
	if rows == 0 || cols == 0 {
		return m, nil
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b SparseEntry) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	// COO input is summed and zero-free here so the CSR layout is canonical.
	ia := make([]int, 0, len(sorted))
	ja := make([]int, 0, len(sorted))
	data := make([]float64, 0, len(sorted))
	for i := 0; i < len(sorted); {
		e := sorted[i]
		v := e.Value
		for i++; i < len(sorted) && sorted[i].Row == e.Row && sorted[i].Col == e.Col; i++ {
			v += sorted[i].Value
		}
		if v == 0 {
			continue
		}
		ia = append(ia, e.Row)
		ja = append(ja, e.Col)
		data = append(data, v)
	}

	m.csr = sparse.NewCOO(rows, cols, ia, ja, data).ToCSR()
	return m, nil
}

// sparseFromNonZero collects the cells of any gonum-style sparse matrix.
func sparseFromNonZero(rows, cols int, src interface {
	DoNonZero(fn func(i, j int, v float64))
}) (SparseMatrix, error) {
	var entries []SparseEntry
	src.DoNonZero(func(i, j int, v float64) {
		entries = append(entries, SparseEntry{Row: i, Col: j, Value: v})
	})
	return NewSparseMatrix(rows, cols, entries)
}

func (m SparseMatrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// NNZ is the number of stored nonzero cells.
func (m SparseMatrix) NNZ() int {
	if m.csr == nil {
		return 0
	}
	return m.csr.NNZ()
}

// RowIndices returns the ascending column indices of the nonzero cells in row r.
func (m SparseMatrix) RowIndices(r int) []int {
	if m.csr == nil || r < 0 || r >= m.rows {
		return nil
	}
	var cols []int
	m.csr.DoRowNonZero(r, func(_, j int, _ float64) {
		cols = append(cols, j)
	})
	return cols
}

// At returns the value at (r, c), zero when unset or out of range.
func (m SparseMatrix) At(r, c int) float64 {
	if m.csr == nil || r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return 0
	}
	return m.csr.At(r, c)
}

// Entries returns all nonzero cells in row-major order.
func (m SparseMatrix) Entries() []SparseEntry {
	entries := make([]SparseEntry, 0, m.NNZ())
	if m.csr == nil {
		return entries
	}
	for r := range m.rows {
		m.csr.DoRowNonZero(r, func(i, j int, v float64) {
			entries = append(entries, SparseEntry{Row: i, Col: j, Value: v})
		})
	}
	return entries
}
