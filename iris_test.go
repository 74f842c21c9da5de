package dtree_test

import (
	"context"
	"testing"

	dtree "github.com/ariaghora/libdtree"
	"github.com/ariaghora/libdtree/dataset/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGrowIris grows a tree on the iris dataset with the default
// parameters and verifies its shape and its accuracy on the training
// data. The default depth limit is enough to classify every training
// row correctly.
func TestGrowIris(t *testing.T) {
	ds, features, err := csv.ReadLabeledFromFilePath("testdata/iris.csv", "species")
	require.NoError(t, err)
	require.Equal(t, []string{"sepal_width", "petal_length", "sepal_length", "petal_width"}, features)
	require.Equal(t, 150, ds.NRow)
	require.Equal(t, 3, ds.Classes())

	tr, err := dtree.Grow(context.Background(), ds)
	require.NoError(t, err)
	require.NotNil(t, tr.Root)

	assert.Equal(t, 4, tr.NFeatures)
	assert.Equal(t, 5, tr.Depth())
	assert.Equal(t, 17, tr.Nodes())
	assert.Equal(t, 1, tr.Root.Feature, "the first split should separate the setosa class by petal length")
	assert.Equal(t, 1.9, tr.Root.Threshold)
	assert.InDelta(t, 0.9183, tr.Root.Gain, 0.0001)

	rate, misses, err := tr.Test(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Zero(t, misses)
}

// TestGrowIrisShallow grows a depth-limited tree on the iris dataset
// and verifies the stump separates setosa first and the two remaining
// classes by petal width, misclassifying the 6 overlapping rows.
func TestGrowIrisShallow(t *testing.T) {
	ds, _, err := csv.ReadLabeledFromFilePath("testdata/iris.csv", "")
	require.NoError(t, err)

	tr, err := dtree.GrowWithParams(context.Background(), ds, dtree.Params{MaxDepth: 2, MinSampleSplit: 1})
	require.NoError(t, err)
	require.NotNil(t, tr.Root)

	assert.Equal(t, 2, tr.Depth())
	assert.Equal(t, 5, tr.Nodes())

	require.True(t, tr.Root.Left.Leaf)
	assert.Equal(t, 0.0, tr.Root.Left.Value)
	require.False(t, tr.Root.Right.Leaf)
	assert.Equal(t, 3, tr.Root.Right.Feature)
	assert.Equal(t, 1.7, tr.Root.Right.Threshold)
	assert.Equal(t, 1.0, tr.Root.Right.Left.Value)
	assert.Equal(t, 2.0, tr.Root.Right.Right.Value)

	rate, misses, err := tr.Test(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 0.96, rate)
	assert.Equal(t, 6, misses)
}

// TestGrowIrisMinSampleSplit verifies that groups smaller than
// MinSampleSplit become leaves instead of splitting further.
func TestGrowIrisMinSampleSplit(t *testing.T) {
	ds, _, err := csv.ReadLabeledFromFilePath("testdata/iris.csv", "")
	require.NoError(t, err)

	tr, err := dtree.GrowWithParams(context.Background(), ds, dtree.Params{MaxDepth: 5, MinSampleSplit: 20})
	require.NoError(t, err)

	assert.Equal(t, 4, tr.Depth())
	assert.Equal(t, 11, tr.Nodes())

	rate, misses, err := tr.Test(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 0.98, rate)
	assert.Equal(t, 3, misses)
}

// TestGrowIrisDepthBeyondPurity verifies raising the depth limit past
// the point where every leaf is pure does not change the tree.
func TestGrowIrisDepthBeyondPurity(t *testing.T) {
	ds, _, err := csv.ReadLabeledFromFilePath("testdata/iris.csv", "")
	require.NoError(t, err)

	tr, err := dtree.Grow(context.Background(), ds)
	require.NoError(t, err)
	deep, err := dtree.GrowWithParams(context.Background(), ds, dtree.Params{MaxDepth: 50, MinSampleSplit: 1})
	require.NoError(t, err)

	assert.Equal(t, tr, deep)
}

func BenchmarkGrowIris(b *testing.B) {
	ds, _, err := csv.ReadLabeledFromFilePath("testdata/iris.csv", "")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err = dtree.Grow(context.Background(), ds)
		if err != nil {
			b.Fatal(err)
		}
	}
}
