package dataset

import (
	"fmt"

	"gorgonia.org/tensor"
)

/*
FromTensor takes a 2-dimensional float64 gorgonia tensor and returns an
unlabeled Dataset with a copy of its values. Tensors of any other rank
or element type are rejected.
*/
func FromTensor(t *tensor.Dense) (*Dataset, error) {
	if t.Dtype() != tensor.Float64 {
		return nil, fmt.Errorf("dataset: cannot build from tensor of %v values", t.Dtype())
	}
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: tensor of rank %d is not a sample matrix", ErrShapeMismatch, len(shape))
	}
	r, c := shape[0], shape[1]
	if c < 1 {
		return nil, fmt.Errorf("%w: tensor with %d columns", ErrEmptyDataset, c)
	}
	x := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := t.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("reading tensor value at %d,%d: %v", i, j, err)
			}
			x = append(x, v.(float64))
		}
	}
	return &Dataset{X: x, NRow: r, NCol: c}, nil
}
