package dtree_test

import (
	"context"
	"fmt"

	dtree "github.com/ariaghora/libdtree"
	"github.com/ariaghora/libdtree/dataset"
)

// ExampleGrow grows a tree on the XOR truth table and classifies one of
// its rows.
func ExampleGrow() {
	x := []float64{
		1, 1,
		0, 1,
		1, 0,
		0, 0,
	}
	ds, _ := dataset.NewLabeled(x, []float64{0, 1, 1, 0}, 2)

	tr, _ := dtree.Grow(context.Background(), ds)

	v, _ := tr.Predict([]float64{0, 1})
	fmt.Println(v)
	// Output:
	// 1
}
