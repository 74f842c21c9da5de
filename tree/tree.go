package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariaghora/libdtree/dataset"
)

/*
Tree is a grown binary classification tree. It is composed of the root
node of the tree and the number of features the tree was grown on,
which every predicted row must match.
*/
type Tree struct {
	Root      *Node `json:"root"`
	NFeatures int   `json:"nFeatures"`
}

// New takes the root node of a grown tree and the number of features
// it was grown on and returns the tree they compose.
func New(root *Node, nFeatures int) *Tree {
	return &Tree{root, nFeatures}
}

/*
Predict takes a row of feature values and routes it down the tree: at
every inner node the row descends left when its value for the node's
feature is less than or equal to the node's threshold, right otherwise.
It returns the class predicted by the leaf the row lands on, and an
error if the prediction could not be made.

The row must have exactly NFeatures values.
*/
func (t *Tree) Predict(row []float64) (float64, error) {
	if t == nil || t.Root == nil {
		return 0.0, fmt.Errorf("nil tree cannot predict samples")
	}
	if len(row) != t.NFeatures {
		return 0.0, fmt.Errorf("predicting sample: %w: %d features for a tree grown on %d", dataset.ErrShapeMismatch, len(row), t.NFeatures)
	}
	n := t.Root
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value, nil
}

/*
PredictBatch takes a dataset and predicts the class of every one of its
rows, returning the predictions in row order. The dataset does not need
to be labeled, but it cannot be empty and its width must match the
number of features the tree was grown on.
*/
func (t *Tree) PredictBatch(ds *dataset.Dataset) ([]float64, error) {
	if ds == nil || ds.Empty() {
		return nil, fmt.Errorf("predicting dataset: %w", dataset.ErrEmptyDataset)
	}
	predictions := make([]float64, ds.NRow)
	for i := 0; i < ds.NRow; i++ {
		v, err := t.Predict(ds.Row(i))
		if err != nil {
			return nil, fmt.Errorf("predicting dataset row %d: %v", i, err)
		}
		predictions[i] = v
	}
	return predictions, nil
}

/*
Test takes a context.Context and a labeled dataset and returns three
values:
  - the prediction success rate of the tree over the dataset
  - the number of rows whose predicted class differs from their label
  - an error if the dataset could not be tested. If this is not nil,
    the other values will be 0.0 and 0 respectively
*/
func (t *Tree) Test(ctx context.Context, ds *dataset.Dataset) (float64, int, error) {
	if ds == nil || ds.Empty() {
		return 0.0, 0, fmt.Errorf("testing tree: %w", dataset.ErrEmptyDataset)
	}
	if !ds.Labeled() {
		return 0.0, 0, fmt.Errorf("testing tree: %w: dataset has no labels", dataset.ErrShapeMismatch)
	}
	var hits, misses int
	for i := 0; i < ds.NRow; i++ {
		if err := ctx.Err(); err != nil {
			return 0.0, 0, err
		}
		v, err := t.Predict(ds.Row(i))
		if err != nil {
			return 0.0, 0, fmt.Errorf("testing tree: row %d: %v", i, err)
		}
		if v == ds.Label(i) {
			hits++
		} else {
			misses++
		}
	}
	return float64(hits) / float64(ds.NRow), misses, nil
}

// Depth returns the number of edges on the longest path from the root
// of the tree to one of its leaves. A tree made of a single leaf has
// depth 0.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return t.Root.depth()
}

// Nodes returns the number of nodes in the tree, leaves included.
func (t *Tree) Nodes() int {
	if t == nil {
		return 0
	}
	return t.Root.count()
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.Root.subtreeString()
}

func (n *Node) subtreeString() string {
	if n.Leaf {
		return fmt.Sprintf("[%g]\n \n", n.Value)
	}
	result := fmt.Sprintf("[x%d <= %g]\n|\n", n.Feature, n.Threshold)
	children := []*Node{n.Left, n.Right}
	for i, c := range children {
		for j, line := range strings.Split(c.subtreeString(), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
