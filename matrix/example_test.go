// Package matrix_test contains runnable documentation examples.
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/rankfill/matrix"
)

// ExampleNewMasked demonstrates building a tiny observation matrix and
// inspecting what is observed.
func ExampleNewMasked() {
	m, _ := matrix.NewMasked(2, 3)

	// Two competitors scored the first event; only one finished the second.
	_ = m.Set(0, 0, 1.2)
	_ = m.Set(1, 0, -0.4)
	_ = m.Set(0, 1, 0.7)

	fmt.Println("observed:", m.ObservedCount())
	fmt.Println("per column:", m.ColCounts())
	fmt.Print(m)

	// Output:
	// observed: 3
	// per column: [2 1 0]
	// [1.2, 0.7, .]
	// [-0.4, ., .]
}

// ExampleMasked_ObservedPositions shows the stable row-major enumeration the
// holdout splitter relies on.
func ExampleMasked_ObservedPositions() {
	m, _ := matrix.NewMasked(2, 2)
	_ = m.Set(1, 1, 3.0)
	_ = m.Set(0, 0, 1.0)

	for _, p := range m.ObservedPositions() {
		fmt.Printf("(%d,%d) ", p.Row, p.Col)
	}

	// Output:
	// (0,0) (1,1)
}
