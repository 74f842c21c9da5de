// Package dataset provides the numeric matrix view on which trees are
// grown and evaluated: a row-major feature matrix with an optional
// parallel vector of class labels.
package dataset

import (
	"fmt"
	"math"
)

// DataError represents a violation of the contract on training or
// prediction data.
type DataError string

const (
	// ErrEmptyDataset is returned when training data has no rows or no
	// columns.
	ErrEmptyDataset = DataError("dataset: empty dataset")
	// ErrShapeMismatch is returned when the dimensions of related pieces
	// of data disagree: a feature matrix whose length is not a multiple
	// of the column count, a label vector with a different number of
	// entries than the matrix has rows, or a prediction row with a
	// different number of values than the data the tree was grown on.
	ErrShapeMismatch = DataError("dataset: shape mismatch")
	// ErrInvalidLabel is returned when a class label is negative,
	// non-finite or not an integer value.
	ErrInvalidLabel = DataError("dataset: invalid label encoding")
)

func (e DataError) Error() string {
	return string(e)
}

/*
Dataset is a collection of samples: a row-major matrix X of NRow samples
with NCol numeric features each, plus an optional label vector Y with
one class label per sample.

Labels encode classes as non-negative integers stored in float64 values.
A Dataset without labels can only be used for prediction.
*/
type Dataset struct {
	X    []float64
	Y    []float64
	NRow int
	NCol int
}

/*
New takes a row-major slice of feature values and the number of columns
per row and returns an unlabeled Dataset built over them.
It returns ErrEmptyDataset if ncol is less than 1, and ErrShapeMismatch
if the number of values is not a multiple of ncol.
*/
func New(x []float64, ncol int) (*Dataset, error) {
	if ncol < 1 {
		return nil, fmt.Errorf("%w: %d columns", ErrEmptyDataset, ncol)
	}
	if len(x)%ncol != 0 {
		return nil, fmt.Errorf("%w: %d values cannot form rows of %d columns", ErrShapeMismatch, len(x), ncol)
	}
	return &Dataset{X: x, NRow: len(x) / ncol, NCol: ncol}, nil
}

/*
NewLabeled takes a row-major slice of feature values, a slice of class
labels and the number of columns per row and returns a labeled Dataset
built over them.
It returns ErrEmptyDataset if ncol is less than 1, and ErrShapeMismatch
if the number of values is not a multiple of ncol or the number of
labels differs from the number of rows.
*/
func NewLabeled(x, y []float64, ncol int) (*Dataset, error) {
	ds, err := New(x, ncol)
	if err != nil {
		return nil, err
	}
	if len(y) != ds.NRow {
		return nil, fmt.Errorf("%w: %d labels for %d rows", ErrShapeMismatch, len(y), ds.NRow)
	}
	ds.Y = y
	return ds, nil
}

// Row returns the i-th sample as a slice sharing the dataset's backing
// array.
func (ds *Dataset) Row(i int) []float64 {
	return ds.X[i*ds.NCol : (i+1)*ds.NCol]
}

// At returns the value of the j-th feature of the i-th sample.
func (ds *Dataset) At(i, j int) float64 {
	return ds.X[i*ds.NCol+j]
}

// Label returns the class label of the i-th sample.
func (ds *Dataset) Label(i int) float64 {
	return ds.Y[i]
}

// Labeled reports whether the dataset carries a label vector.
func (ds *Dataset) Labeled() bool {
	return ds.Y != nil
}

// Empty reports whether the dataset has no samples or no features.
func (ds *Dataset) Empty() bool {
	return ds.NRow == 0 || ds.NCol == 0
}

/*
CheckLabels verifies that every label in the dataset encodes a class as
a non-negative integer. It returns an error wrapping ErrInvalidLabel
naming the first offending row, or nil if all labels are valid.
Unlabeled datasets pass the check.
*/
func (ds *Dataset) CheckLabels() error {
	for i, y := range ds.Y {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("%w: non-finite label %v at row %d", ErrInvalidLabel, y, i)
		}
		if y < 0 {
			return fmt.Errorf("%w: negative label %v at row %d", ErrInvalidLabel, y, i)
		}
		if y != math.Trunc(y) {
			return fmt.Errorf("%w: non-integer label %v at row %d", ErrInvalidLabel, y, i)
		}
	}
	return nil
}

/*
Classes returns the number of distinct class slots in the dataset's
label vector: one more than the greatest label. Labels are assumed to
have passed CheckLabels. It returns 0 for unlabeled or empty datasets.
*/
func (ds *Dataset) Classes() int {
	if len(ds.Y) == 0 {
		return 0
	}
	max := ds.Y[0]
	for _, y := range ds.Y[1:] {
		if y > max {
			max = y
		}
	}
	return int(max) + 1
}

/*
WithLabels returns a copy of the dataset carrying the given label
vector, or ErrShapeMismatch if the number of labels differs from the
number of rows.
*/
func (ds *Dataset) WithLabels(y []float64) (*Dataset, error) {
	if len(y) != ds.NRow {
		return nil, fmt.Errorf("%w: %d labels for %d rows", ErrShapeMismatch, len(y), ds.NRow)
	}
	return &Dataset{X: ds.X, Y: y, NRow: ds.NRow, NCol: ds.NCol}, nil
}

/*
SplitLabel takes an unlabeled dataset, the names of its columns and the
name of the column holding the class labels, and returns a labeled
dataset whose features are all the other columns, together with their
names. An empty label name selects the last column.
It returns an error wrapping ErrShapeMismatch if the number of column
names does not match the dataset width or the dataset has no feature
columns left after the split, and a plain error if no column has the
given name.
*/
func SplitLabel(ds *Dataset, columns []string, label string) (*Dataset, []string, error) {
	if len(columns) != ds.NCol {
		return nil, nil, fmt.Errorf("%w: %d column names for %d columns", ErrShapeMismatch, len(columns), ds.NCol)
	}
	if ds.NCol < 2 {
		return nil, nil, fmt.Errorf("%w: no feature columns left after splitting the label column", ErrShapeMismatch)
	}
	li := ds.NCol - 1
	if label != "" {
		li = -1
		for i, name := range columns {
			if name == label {
				li = i
				break
			}
		}
		if li < 0 {
			return nil, nil, fmt.Errorf("no column named %q", label)
		}
	}
	features := make([]string, 0, ds.NCol-1)
	features = append(features, columns[:li]...)
	features = append(features, columns[li+1:]...)
	x := make([]float64, 0, ds.NRow*(ds.NCol-1))
	y := make([]float64, 0, ds.NRow)
	for i := 0; i < ds.NRow; i++ {
		row := ds.Row(i)
		x = append(x, row[:li]...)
		x = append(x, row[li+1:]...)
		y = append(y, row[li])
	}
	return &Dataset{X: x, Y: y, NRow: ds.NRow, NCol: ds.NCol - 1}, features, nil
}
