package sqldataset

import (
	"context"
	"fmt"

	"github.com/ariaghora/libdtree/dataset"
)

/*
Set is a dataset stored on a database backend, with named columns, to
which samples can be written and from which the whole dataset can be
read back.
*/
type Set struct {
	db      Adapter
	columns []string
}

/*
Create takes an Adapter to a db backend and a slice of column names
and returns a Set backed by the given adapter or an error.

This function will ensure that the samples table is created on the
database with the given columns.
*/
func Create(ctx context.Context, db Adapter, columns []string) (*Set, error) {
	cols, err := validateColumns(db, columns)
	if err != nil {
		return nil, err
	}
	err = db.CreateSampleTable(ctx, cols)
	if err != nil {
		return nil, err
	}
	return &Set{db: db, columns: cols}, nil
}

/*
Open takes an Adapter to a db backend and returns a Set backed by the
given adapter or an error if no dataset is available through it.

This function expects the adapter to have the samples table already
created, and takes the column names from it.
*/
func Open(ctx context.Context, db Adapter) (*Set, error) {
	cols, err := db.ListColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dataset columns: %v", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no dataset available: samples table is missing or has no columns")
	}
	return &Set{db: db, columns: cols}, nil
}

// Columns returns the names of the dataset columns in storage order.
func (s *Set) Columns() []string {
	return s.columns
}

// Count returns the number of samples in the set.
func (s *Set) Count(ctx context.Context) (int, error) {
	return s.db.CountSamples(ctx)
}

/*
Write stores every row of the given dataset on the backend and returns
the number of samples actually written. The dataset width must match
the set columns or an error wrapping dataset.ErrShapeMismatch is
returned.
*/
func (s *Set) Write(ctx context.Context, ds *dataset.Dataset) (int, error) {
	if ds.NCol != len(s.columns) {
		return 0, fmt.Errorf("%w: %d columns for a set with %d", dataset.ErrShapeMismatch, ds.NCol, len(s.columns))
	}
	rows := make([][]float64, ds.NRow)
	for i := 0; i < ds.NRow; i++ {
		rows[i] = ds.Row(i)
	}
	return s.db.AddSamples(ctx, rows, s.columns)
}

/*
Read materializes the whole set as an unlabeled dataset, with the
samples in the order they were written.
*/
func (s *Set) Read(ctx context.Context) (*dataset.Dataset, error) {
	var x []float64
	err := s.db.IterateOnSamples(ctx, s.columns, func(_ int, row []float64) (bool, error) {
		x = append(x, row...)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	return dataset.New(x, len(s.columns))
}

// Close closes the connection to the database backend.
func (s *Set) Close() error {
	return s.db.Close()
}

func validateColumns(db Adapter, columns []string) ([]string, error) {
	cols := make([]string, 0, len(columns))
	seen := make(map[string]string)
	for _, name := range columns {
		column, err := db.ColumnName(name)
		if err != nil {
			return nil, fmt.Errorf("invalid column %s: %v", name, err)
		}
		if other, ok := seen[column]; ok {
			return nil, fmt.Errorf("%s and %s translate to the same column name %s", name, other, column)
		}
		seen[column] = name
		cols = append(cols, column)
	}
	return cols, nil
}
