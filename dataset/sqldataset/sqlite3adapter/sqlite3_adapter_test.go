package sqlite3adapter_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/dataset/sqldataset"
	"github.com/ariaghora/libdtree/dataset/sqldataset/sqlite3adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAdapterRoundTrip creates a dataset on an SQLite3 file, writes
// enough samples to force chunked insert statements and reads them
// back in insertion order.
func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)

	set, err := sqldataset.Create(ctx, db, []string{"sepal_length", "petal_length"})
	require.NoError(t, err)
	defer set.Close()

	x := make([]float64, 0, 50)
	for i := 0; i < 25; i++ {
		x = append(x, float64(i), float64(i)/2)
	}
	ds, err := dataset.New(x, 2)
	require.NoError(t, err)

	n, err := set.Write(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	count, err := set.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	read, err := set.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, ds.X, read.X)
}

// TestAdapterOpen reopens an SQLite3 file and rediscovers the dataset
// columns from its samples table.
func TestAdapterOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "samples.db")

	db, err := sqlite3adapter.New(path)
	require.NoError(t, err)
	set, err := sqldataset.Create(ctx, db, []string{"sepal_length", "petal_length"})
	require.NoError(t, err)
	_, err = set.Write(ctx, &dataset.Dataset{X: []float64{5.1, 1.4}, NRow: 1, NCol: 2})
	require.NoError(t, err)
	require.NoError(t, set.Close())

	db, err = sqlite3adapter.New(path)
	require.NoError(t, err)
	reopened, err := sqldataset.Open(ctx, db)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, []string{"sepal_length", "petal_length"}, reopened.Columns())
	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// TestAdapterColumnName rejects the reserved id column and names with
// quoting characters.
func TestAdapterColumnName(t *testing.T) {
	db, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer db.Close()

	name, err := db.ColumnName("sepal_length")
	require.NoError(t, err)
	assert.Equal(t, "sepal_length", name)

	_, err = db.ColumnName("id")
	require.Error(t, err)

	_, err = db.ColumnName(`sepal"length`)
	require.Error(t, err)
}

// TestAdapterIterationStops stops iterating when the lambda returns
// false.
func TestAdapterIterationStops(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"a"}
	require.NoError(t, db.CreateSampleTable(ctx, columns))
	_, err = db.AddSamples(ctx, [][]float64{{1}, {2}, {3}}, columns)
	require.NoError(t, err)

	var seen []float64
	err = db.IterateOnSamples(ctx, columns, func(i int, row []float64) (bool, error) {
		seen = append(seen, row[0])
		return len(seen) < 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, seen)
}

// TestAdapterAddSamplesChecksWidth refuses samples without one value
// per column.
func TestAdapterAddSamplesChecksWidth(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite3adapter.New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"a", "b"}
	require.NoError(t, db.CreateSampleTable(ctx, columns))
	n, err := db.AddSamples(ctx, [][]float64{{1}}, columns)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "sample 0 has 1 values for 2 columns")
}
