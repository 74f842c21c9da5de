/*
Package npy loads and saves datasets as NumPy .npy array files.

Features travel as a 2-dimensional array with one row per sample, and
labels as a separate 1-dimensional array, the way they are usually kept
when exported from numpy.
*/
package npy

import (
	"fmt"
	"io"
	"os"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

/*
Read takes an io.Reader for a .npy stream holding a 2-dimensional
numeric array and returns an unlabeled dataset with one sample per
array row.
*/
func Read(reader io.Reader) (*dataset.Dataset, error) {
	r, err := npyio.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("reading npy header: %v", err)
	}
	m := &mat.Dense{}
	err = r.Read(m)
	if err != nil {
		return nil, fmt.Errorf("reading npy data: %v", err)
	}
	return dataset.FromMatrix(m)
}

/*
ReadLabels takes an io.Reader for a .npy stream holding a
1-dimensional numeric array and returns its values, to be attached as
labels to a dataset read separately.
*/
func ReadLabels(reader io.Reader) ([]float64, error) {
	r, err := npyio.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("reading npy header: %v", err)
	}
	m := &mat.Dense{}
	err = r.Read(m)
	if err != nil {
		return nil, fmt.Errorf("reading npy data: %v", err)
	}
	return dataset.LabelsFromMatrix(m)
}

/*
ReadFromFilePath takes a filepath to a .npy file with a 2-dimensional
numeric array and returns the unlabeled dataset read from it.
*/
func ReadFromFilePath(filepath string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	defer f.Close()
	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing npy file %s: %v", filepath, err)
	}
	return ds, nil
}

/*
ReadLabeledFromFilePaths takes the filepath to a .npy file with the
feature matrix and the filepath to a .npy file with the label array
and returns the labeled dataset they compose.
*/
func ReadLabeledFromFilePaths(xpath, ypath string) (*dataset.Dataset, error) {
	ds, err := ReadFromFilePath(xpath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(ypath)
	if err != nil {
		return nil, fmt.Errorf("reading labels: %v", err)
	}
	defer f.Close()
	y, err := ReadLabels(f)
	if err != nil {
		return nil, fmt.Errorf("parsing npy file %s: %v", ypath, err)
	}
	return ds.WithLabels(y)
}

// Write dumps the features of the dataset onto the io.Writer as a
// 2-dimensional .npy array. Nil or empty datasets cannot be encoded and
// return an error wrapping dataset.ErrEmptyDataset.
func Write(writer io.Writer, ds *dataset.Dataset) error {
	if ds == nil || ds.Empty() {
		return fmt.Errorf("writing npy data: %w", dataset.ErrEmptyDataset)
	}
	err := npyio.Write(writer, ds.Matrix())
	if err != nil {
		return fmt.Errorf("writing npy data: %v", err)
	}
	return nil
}

// WriteLabels dumps the given labels onto the io.Writer as a
// 1-dimensional .npy array.
func WriteLabels(writer io.Writer, y []float64) error {
	err := npyio.Write(writer, y)
	if err != nil {
		return fmt.Errorf("writing npy labels: %v", err)
	}
	return nil
}
