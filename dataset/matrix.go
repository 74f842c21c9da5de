package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
FromMatrix takes a gonum matrix and returns an unlabeled Dataset with a
copy of its values, or ErrEmptyDataset if the matrix has no columns.
*/
func FromMatrix(m mat.Matrix) (*Dataset, error) {
	r, c := m.Dims()
	if c < 1 {
		return nil, fmt.Errorf("%w: matrix with %d columns", ErrEmptyDataset, c)
	}
	x := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x = append(x, m.At(i, j))
		}
	}
	return &Dataset{X: x, NRow: r, NCol: c}, nil
}

/*
LabelsFromMatrix takes a gonum matrix holding one label per sample,
either as a single column or as a single row, and returns them as a
label vector. Any other shape returns ErrShapeMismatch.
*/
func LabelsFromMatrix(m mat.Matrix) ([]float64, error) {
	r, c := m.Dims()
	switch {
	case c == 1:
		y := make([]float64, r)
		for i := 0; i < r; i++ {
			y[i] = m.At(i, 0)
		}
		return y, nil
	case r == 1:
		y := make([]float64, c)
		for j := 0; j < c; j++ {
			y[j] = m.At(0, j)
		}
		return y, nil
	}
	return nil, fmt.Errorf("%w: %dx%d matrix is not a label vector", ErrShapeMismatch, r, c)
}

// Matrix returns the dataset's feature values as a freshly allocated
// gonum dense matrix.
func (ds *Dataset) Matrix() *mat.Dense {
	x := make([]float64, len(ds.X))
	copy(x, ds.X)
	return mat.NewDense(ds.NRow, ds.NCol, x)
}
