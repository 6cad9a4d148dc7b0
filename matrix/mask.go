// Package matrix: Mask is a standalone boolean grid sharing Masked's flat
// row-major indexing. The solver consumes it as the training mask; the
// holdout splitter produces it by clearing held-out cells from a copy of
// the observation mask.

package matrix

import "fmt"

// maskErrorf wraps an underlying sentinel with Mask method context.
func maskErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Mask.%s(%d,%d): %w", method, row, col, err)
}

// Mask is a row-major boolean grid. r is rows, c is columns, and on holds
// r*c flags in row-major order.
type Mask struct {
	r, c int    // number of rows and columns
	on   []bool // flat flag storage, length == r*c
}

// NewMask creates an r×c Mask with every flag off.
// Complexity: O(r*c) time and memory.
func NewMask(rows, cols int) (*Mask, error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Mask{r: rows, c: cols, on: make([]bool, rows*cols)}, nil
}

// Rows returns the number of rows in the mask.
// Complexity: O(1).
func (k *Mask) Rows() int {
	return k.r
}

// Cols returns the number of columns in the mask.
// Complexity: O(1).
func (k *Mask) Cols() int {
	return k.c
}

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (k *Mask) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= k.r {
		return 0, maskErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= k.c {
		return 0, maskErrorf(method, row, col, ErrOutOfRange)
	}

	return row*k.c + col, nil
}

// At reports whether the flag at (row, col) is set.
// Complexity: O(1).
func (k *Mask) At(row, col int) (bool, error) {
	idx, err := k.indexOf("At", row, col)
	if err != nil {
		return false, err
	}

	return k.on[idx], nil
}

// Set raises the flag at (row, col).
// Complexity: O(1).
func (k *Mask) Set(row, col int) error {
	idx, err := k.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	k.on[idx] = true

	return nil
}

// Clear lowers the flag at (row, col).
// Complexity: O(1).
func (k *Mask) Clear(row, col int) error {
	idx, err := k.indexOf("Clear", row, col)
	if err != nil {
		return err
	}
	k.on[idx] = false

	return nil
}

// Count returns the number of set flags.
// Complexity: O(r*c).
func (k *Mask) Count() int {
	var n, i int
	for i = 0; i < len(k.on); i++ {
		if k.on[i] {
			n++
		}
	}

	return n
}

// RowCounts returns the number of set flags per row.
// Complexity: O(r*c) time, O(r) space.
func (k *Mask) RowCounts() []int {
	counts := make([]int, k.r)

	var i, j int
	for i = 0; i < k.r; i++ {
		for j = 0; j < k.c; j++ {
			if k.on[i*k.c+j] {
				counts[i]++
			}
		}
	}

	return counts
}

// ColCounts returns the number of set flags per column.
// Complexity: O(r*c) time, O(c) space.
func (k *Mask) ColCounts() []int {
	counts := make([]int, k.c)

	var i, j int
	for i = 0; i < k.r; i++ {
		for j = 0; j < k.c; j++ {
			if k.on[i*k.c+j] {
				counts[j]++
			}
		}
	}

	return counts
}

// Positions enumerates every set flag in stable row-major order.
// Complexity: O(r*c) time, O(k) space for k set flags.
func (k *Mask) Positions() []Pos {
	out := make([]Pos, 0, k.Count())

	var i, j int
	for i = 0; i < k.r; i++ { // row-major: rows ascending
		for j = 0; j < k.c; j++ { // columns ascending within a row
			if k.on[i*k.c+j] {
				out = append(out, Pos{Row: i, Col: j})
			}
		}
	}

	return out
}

// Clone returns a deep copy of the mask.
// Complexity: O(r*c) time and memory.
func (k *Mask) Clone() *Mask {
	on := make([]bool, len(k.on))
	copy(on, k.on)

	return &Mask{r: k.r, c: k.c, on: on}
}
