package sqldataset

import "context"

/*
Adapter is an interface providing the methods needed to store and
retrieve a dataset on a database backend.
*/
type Adapter interface {
	// ColumnName takes the name of a dataset column and returns the
	// database column name to use for it, or an error if no valid
	// column name can represent it.
	ColumnName(string) (string, error)

	// CreateSampleTable ensures the table holding the samples exists
	// with one numeric column per given name.
	CreateSampleTable(ctx context.Context, columns []string) error

	// AddSamples inserts the given rows, each with one value per
	// column, and returns the number of rows actually inserted.
	AddSamples(ctx context.Context, rows [][]float64, columns []string) (int, error)

	// IterateOnSamples retrieves the stored samples in insertion
	// order and calls lambda with each sample and its index. If the
	// lambda returns false the iteration stops.
	IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []float64) (bool, error)) error

	// CountSamples returns the number of stored samples.
	CountSamples(ctx context.Context) (int, error)

	// ListColumns returns the names of the sample table columns in
	// their creation order.
	ListColumns(ctx context.Context) ([]string, error)

	// Close closes the connection to the database backend.
	Close() error
}
