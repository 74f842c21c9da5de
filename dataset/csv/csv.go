/*
Package csv reads and writes datasets as CSV streams.

The header or first row of a CSV stream names the columns, and every
other row holds one sample as decimal numbers. Missing values are not
supported: a '?' or any other non-numeric field is an error.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ariaghora/libdtree/dataset"
)

/*
Read takes an io.Reader for a CSV stream and returns an unlabeled
dataset with one feature per column and one sample per body row,
together with the column names from the header. An error is returned
if the stream cannot be read or a field cannot be parsed as a number.
*/
func Read(reader io.Reader) (*dataset.Dataset, []string, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	columns := make([]string, len(header))
	copy(columns, header)
	var x []float64
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		for i, v := range row {
			value, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("parsing line %d: converting %q for column %s to float64: %v", l, v, columns[i], err)
			}
			x = append(x, value)
		}
	}
	ds, err := dataset.New(x, len(columns))
	if err != nil {
		return nil, nil, err
	}
	return ds, columns, nil
}

/*
ReadLabeled takes an io.Reader for a CSV stream and the name of the
column holding the class labels and returns a labeled dataset with the
other columns as features, together with their names. An empty label
name selects the last column.
*/
func ReadLabeled(reader io.Reader, label string) (*dataset.Dataset, []string, error) {
	ds, columns, err := Read(reader)
	if err != nil {
		return nil, nil, err
	}
	return dataset.SplitLabel(ds, columns, label)
}

/*
ReadFromFilePath takes a filepath and uses Read to return the unlabeled
dataset and column names parsed from the file it points to. If the
filepath is "" os.Stdin is used instead. It returns an error if the
file cannot be opened for reading or its content cannot be parsed.
*/
func ReadFromFilePath(filepath string) (*dataset.Dataset, []string, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset: %v", err)
		}
	}
	defer f.Close()
	ds, columns, err := Read(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, columns, err
}

/*
ReadLabeledFromFilePath takes a filepath and the name of the label
column and uses ReadLabeled to return the labeled dataset and feature
column names parsed from the file it points to. If the filepath is ""
os.Stdin is used instead.
*/
func ReadLabeledFromFilePath(filepath, label string) (*dataset.Dataset, []string, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset: %v", err)
		}
	}
	defer f.Close()
	ds, columns, err := ReadLabeled(f, label)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, columns, err
}

/*
Writer writes samples one row at a time onto a CSV stream whose header
is written when the Writer is built.
*/
type Writer struct {
	count   int
	columns []string
	w       *csv.Writer
}

/*
NewWriter takes an io.Writer and a slice of column names, writes the
CSV header naming them and returns a Writer that will write sample
rows on the io.Writer.
*/
func NewWriter(writer io.Writer, columns []string) (*Writer, error) {
	w := csv.NewWriter(writer)
	err := w.Write(columns)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &Writer{columns: columns, w: w}, nil
}

// Write writes one sample row. It returns an error wrapping
// dataset.ErrShapeMismatch if the row does not have one value per
// column.
func (cw *Writer) Write(row []float64) error {
	if len(row) != len(cw.columns) {
		return fmt.Errorf("%w: %d values for %d columns", dataset.ErrShapeMismatch, len(row), len(cw.columns))
	}
	record := make([]string, len(row))
	for j, v := range row {
		record[j] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

// Count returns the number of sample rows written so far.
func (cw *Writer) Count() int {
	return cw.count
}

// Flush ensures any pending writes finish before returning. It returns
// an error if that cannot be ensured.
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

/*
WriteDataset takes an io.Writer, a dataset and a slice of column names
and dumps the dataset to the io.Writer in CSV format. With one column
name per feature the samples are written as they are; with one extra
column name and a labeled dataset the labels are written as the last
column. Anything else returns an error wrapping
dataset.ErrShapeMismatch.
*/
func WriteDataset(writer io.Writer, ds *dataset.Dataset, columns []string) error {
	withLabels := len(columns) == ds.NCol+1 && ds.Labeled()
	if len(columns) != ds.NCol && !withLabels {
		return fmt.Errorf("%w: %d column names for %d columns", dataset.ErrShapeMismatch, len(columns), ds.NCol)
	}
	cw, err := NewWriter(writer, columns)
	if err != nil {
		return err
	}
	row := make([]float64, len(columns))
	for i := 0; i < ds.NRow; i++ {
		copy(row, ds.Row(i))
		if withLabels {
			row[len(row)-1] = ds.Label(i)
		}
		err = cw.Write(row)
		if err != nil {
			return err
		}
	}
	return cw.Flush()
}
