package tree_test

import (
	"context"
	"testing"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
testingTree returns a tree with 2 inner nodes and 3 leaves, grown on 2
features:

	x0 <= 2.5 ? 0 : (x1 <= 7 ? 1 : 2)
*/
func testingTree() *tree.Tree {
	return tree.New(&tree.Node{
		Feature:   0,
		Threshold: 2.5,
		Gain:      0.9183,
		Left:      &tree.Node{Leaf: true, Value: 0},
		Right: &tree.Node{
			Feature:   1,
			Threshold: 7,
			Gain:      1,
			Left:      &tree.Node{Leaf: true, Value: 1},
			Right:     &tree.Node{Leaf: true, Value: 2},
		},
	}, 2)
}

// TestPredict routes rows down both sides of the tree, with rows at a
// threshold going left.
func TestPredict(t *testing.T) {
	tr := testingTree()

	testCases := []struct {
		name     string
		row      []float64
		expected float64
	}{
		{"left", []float64{1, 9}, 0.0},
		{"at threshold", []float64{2.5, 9}, 0.0},
		{"right then left", []float64{3, 5}, 1.0},
		{"right then right", []float64{3, 8}, 2.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tr.Predict(tc.row)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

// TestPredictShapeMismatch rejects rows whose width differs from the
// number of features the tree was grown on.
func TestPredictShapeMismatch(t *testing.T) {
	tr := testingTree()

	_, err := tr.Predict([]float64{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
}

// TestPredictNilTree rejects predictions on nil or rootless trees.
func TestPredictNilTree(t *testing.T) {
	var tr *tree.Tree
	_, err := tr.Predict([]float64{1})
	require.Error(t, err)

	_, err = (&tree.Tree{NFeatures: 1}).Predict([]float64{1})
	require.Error(t, err)
}

// TestPredictBatch predicts every row of a dataset in row order and
// rejects empty datasets.
func TestPredictBatch(t *testing.T) {
	tr := testingTree()
	ds, err := dataset.New([]float64{
		2, 1,
		3, 5,
		3, 8,
	}, 2)
	require.NoError(t, err)

	predictions, err := tr.PredictBatch(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, predictions)

	_, err = tr.PredictBatch(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

// TestTreeTest reports the success rate of the tree over a labeled
// dataset and the number of rows it mispredicts.
func TestTreeTest(t *testing.T) {
	tr := testingTree()
	ds, err := dataset.NewLabeled([]float64{
		2, 1,
		3, 5,
		3, 8,
	}, []float64{0, 1, 0}, 2)
	require.NoError(t, err)

	rate, misses, err := tr.Test(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 2.0/3.0, rate)
	assert.Equal(t, 1, misses)
}

// TestTreeTestUnlabeled rejects datasets without labels.
func TestTreeTestUnlabeled(t *testing.T) {
	tr := testingTree()
	ds, err := dataset.New([]float64{2, 1}, 2)
	require.NoError(t, err)

	_, _, err = tr.Test(context.Background(), ds)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
}

// TestTreeTestCancelledContext stops testing when the context is
// cancelled.
func TestTreeTestCancelledContext(t *testing.T) {
	tr := testingTree()
	ds, err := dataset.NewLabeled([]float64{2, 1}, []float64{0}, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = tr.Test(ctx, ds)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestDepthAndNodes measures trees by edges on the longest root-leaf
// path and by total node count.
func TestDepthAndNodes(t *testing.T) {
	tr := testingTree()
	assert.Equal(t, 2, tr.Depth())
	assert.Equal(t, 5, tr.Nodes())

	leaf := tree.New(&tree.Node{Leaf: true, Value: 1}, 1)
	assert.Equal(t, 0, leaf.Depth())
	assert.Equal(t, 1, leaf.Nodes())

	var nilTree *tree.Tree
	assert.Equal(t, 0, nilTree.Depth())
	assert.Equal(t, 0, nilTree.Nodes())
}

// TestString renders a tree as ASCII art, one branch per line.
func TestString(t *testing.T) {
	tr := tree.New(&tree.Node{
		Feature:   0,
		Threshold: 1,
		Left:      &tree.Node{Leaf: true, Value: 0},
		Right:     &tree.Node{Leaf: true, Value: 1},
	}, 1)

	expected := "[x0 <= 1]\n|\n|__[0]\n|   \n|__[1]\n    \n"
	assert.Equal(t, expected, tr.String())

	var nilTree *tree.Tree
	assert.Equal(t, "", nilTree.String())
}
