// Package matrix: Masked is the concrete, row-major observation matrix.
// Values and mask share flat indexing for cache friendliness; the mask is
// the single source of truth for missingness.

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maskedErrorf wraps an underlying sentinel with Masked method context.
func maskedErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Masked.%s(%d,%d): %w", method, row, col, err)
}

// Pos identifies a single cell by row and column.
type Pos struct {
	Row, Col int
}

// Masked is a row-major matrix of float64 values with an observation mask.
// r is rows, c is columns; data and obs hold r*c elements in row-major order.
// A cell is observed iff obs[idx] is true; unobserved cells keep the storage
// default 0 in data and carry no meaning.
type Masked struct {
	r, c int       // number of rows and columns
	data []float64 // flat value storage, length == r*c
	obs  []bool    // flat observation mask, length == r*c
}

// NewMasked creates an r×c Masked matrix with every cell missing.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slices.
// Stage 3 (Finalize): return new Masked or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewMasked(rows, cols int) (*Masked, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	// Allocate flat slices; both start zeroed (all cells missing).
	return &Masked{
		r:    rows,
		c:    cols,
		data: make([]float64, rows*cols),
		obs:  make([]bool, rows*cols),
	}, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Masked) Rows() int {
	return m.r // return stored row count
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Masked) Cols() int {
	return m.c // return stored column count
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Masked) indexOf(method string, row, col int) (int, error) {
	// Validate row index
	if row < 0 || row >= m.r {
		return 0, maskedErrorf(method, row, col, ErrOutOfRange)
	}
	// Validate column index
	if col < 0 || col >= m.c {
		return 0, maskedErrorf(method, row, col, ErrOutOfRange)
	}

	// Compute flat offset
	return row*m.c + col, nil
}

// At retrieves the value stored at (row, col).
// A missing cell reports the storage default 0; consult Observed to
// distinguish a stored zero from missingness.
// Complexity: O(1).
func (m *Masked) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Observed reports whether the cell at (row, col) is observed.
// Complexity: O(1).
func (m *Masked) Observed(row, col int) (bool, error) {
	idx, err := m.indexOf("Observed", row, col)
	if err != nil {
		return false, err
	}

	return m.obs[idx], nil
}

// Set assigns value v at (row, col) and marks the cell observed.
// Stage 1 (Validate): bounds check, then the finite-value policy (ErrNaNInf).
// Stage 2 (Execute): write value and raise the mask bit.
// Complexity: O(1).
func (m *Masked) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	// Observed cells must be finite; NaN/±Inf are rejected at the boundary
	// so downstream numerics never need to re-check.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return maskedErrorf("Set", row, col, ErrNaNInf)
	}

	m.data[idx] = v
	m.obs[idx] = true

	return nil
}

// Clear marks the cell at (row, col) missing and resets its storage to 0.
// Complexity: O(1).
func (m *Masked) Clear(row, col int) error {
	idx, err := m.indexOf("Clear", row, col)
	if err != nil {
		return err
	}

	m.data[idx] = 0
	m.obs[idx] = false

	return nil
}

// ObservedCount returns the total number of observed cells.
// Complexity: O(r*c).
func (m *Masked) ObservedCount() int {
	var n, i int
	for i = 0; i < len(m.obs); i++ { // flat scan; order irrelevant for a count
		if m.obs[i] {
			n++
		}
	}

	return n
}

// RowCounts returns the number of observed cells per row.
// Complexity: O(r*c) time, O(r) space.
func (m *Masked) RowCounts() []int {
	counts := make([]int, m.r)

	var i, j int
	for i = 0; i < m.r; i++ { // fixed row-major order
		for j = 0; j < m.c; j++ {
			if m.obs[i*m.c+j] {
				counts[i]++
			}
		}
	}

	return counts
}

// ColCounts returns the number of observed cells per column.
// Complexity: O(r*c) time, O(c) space.
func (m *Masked) ColCounts() []int {
	counts := make([]int, m.c)

	var i, j int
	for i = 0; i < m.r; i++ { // fixed row-major order
		for j = 0; j < m.c; j++ {
			if m.obs[i*m.c+j] {
				counts[j]++
			}
		}
	}

	return counts
}

// ObservedPositions enumerates every observed cell in stable row-major order.
// The stable order is a contract: downstream sampling (holdout selection)
// depends on it for reproducibility.
// Complexity: O(r*c) time, O(k) space for k observed cells.
func (m *Masked) ObservedPositions() []Pos {
	out := make([]Pos, 0, m.ObservedCount())

	var i, j int
	for i = 0; i < m.r; i++ { // row-major: rows ascending
		for j = 0; j < m.c; j++ { // columns ascending within a row
			if m.obs[i*m.c+j] {
				out = append(out, Pos{Row: i, Col: j})
			}
		}
	}

	return out
}

// Mask returns a copy of the observation mask as a standalone Mask.
// Complexity: O(r*c) time and memory.
func (m *Masked) Mask() *Mask {
	on := make([]bool, len(m.obs))
	copy(on, m.obs)

	return &Mask{r: m.r, c: m.c, on: on}
}

// Clone returns a deep copy of the Masked matrix.
// Complexity: O(r*c) time and memory.
func (m *Masked) Clone() *Masked {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	obs := make([]bool, len(m.obs))
	copy(obs, m.obs)

	return &Masked{r: m.r, c: m.c, data: data, obs: obs}
}

// String implements fmt.Stringer for debugging; missing cells print as ".".
// Complexity: O(r*c) for string construction.
func (m *Masked) String() string {
	var sb strings.Builder

	var i, j, idx int
	for i = 0; i < m.r; i++ { // iterate over rows
		sb.WriteString("[")
		for j = 0; j < m.c; j++ { // iterate over columns
			idx = i*m.c + j
			if m.obs[idx] {
				sb.WriteString(strconv.FormatFloat(m.data[idx], 'g', -1, 64))
			} else {
				sb.WriteString(".") // missing cell marker
			}
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
