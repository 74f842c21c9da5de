/*
Package dtree grows binary classification trees over numeric features
using the ID3 algorithm: at every node the feature threshold with the
highest information gain splits the rows, until the node is pure or a
growing parameter stops the recursion.

Labels are non-negative integer class identifiers encoded as float64,
the same element type as the features, so datasets round-trip through
numeric containers without a separate label column type.
*/
package dtree

import (
	"context"
	"fmt"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/tree"
)

// ParamError is an error that occurs when growing a tree with an
// invalid parameter combination.
type ParamError string

// ErrInvalidParam is the error returned when the growing parameters
// given to GrowWithParams do not validate.
const ErrInvalidParam = ParamError("dtree: invalid growing parameters")

// Error returns the message of the ParamError.
func (pe ParamError) Error() string {
	return string(pe)
}

// Params holds the parameters that bound the growth of a tree.
type Params struct {
	// MaxDepth is the depth at which growing stops and nodes become
	// leaves regardless of purity. A value of 0 yields a single
	// majority-vote leaf.
	MaxDepth int `yaml:"max_depth"`

	// MinSampleSplit is the minimum number of rows a node must hold
	// to be considered for splitting. Nodes with fewer rows become
	// leaves.
	MinSampleSplit int `yaml:"min_sample_split"`
}

// DefaultParams returns the parameters Grow uses: a maximum depth of 5
// and a minimum of 1 row per split.
func DefaultParams() Params {
	return Params{MaxDepth: 5, MinSampleSplit: 1}
}

// Validate returns an error wrapping ErrInvalidParam when p cannot
// bound the growth of a tree, nil otherwise.
func (p Params) Validate() error {
	if p.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidParam, p.MaxDepth)
	}
	if p.MinSampleSplit < 1 {
		return fmt.Errorf("%w: min sample split %d is lower than 1", ErrInvalidParam, p.MinSampleSplit)
	}
	return nil
}

// Grow grows a classification tree from the labeled dataset with the
// default parameters.
func Grow(ctx context.Context, ds *dataset.Dataset) (*tree.Tree, error) {
	return GrowWithParams(ctx, ds, DefaultParams())
}

// GrowWithParams grows a classification tree from the labeled dataset,
// bounded by the given parameters. The dataset must have at least one
// row and its labels must be non-negative integers. The context can be
// used to abort the recursion early.
func GrowWithParams(ctx context.Context, ds *dataset.Dataset, p Params) (*tree.Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Empty() {
		return nil, fmt.Errorf("growing tree: %w", dataset.ErrEmptyDataset)
	}
	if !ds.Labeled() || len(ds.Y) != ds.NRow {
		return nil, fmt.Errorf("growing tree: %w: %d labels for %d rows", dataset.ErrShapeMismatch, len(ds.Y), ds.NRow)
	}
	if err := ds.CheckLabels(); err != nil {
		return nil, fmt.Errorf("growing tree: %w", err)
	}
	root, err := grow(ctx, ds, 0, p)
	if err != nil {
		return nil, err
	}
	return &tree.Tree{Root: root, NFeatures: ds.NCol}, nil
}

// grow recursively builds the subtree for ds at the given depth.
func grow(ctx context.Context, ds *dataset.Dataset, depth int, p Params) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isPure(ds.Y) || ds.NRow < p.MinSampleSplit || depth == p.MaxDepth {
		return leafNode(ds.Y), nil
	}
	s, ok := bestSplit(ds)
	if !ok {
		// Impure rows that no feature can tell apart: close the
		// branch with a majority vote instead of recursing into an
		// empty side.
		return leafNode(ds.Y), nil
	}
	left, err := grow(ctx, subset(ds, s.left), depth+1, p)
	if err != nil {
		return nil, err
	}
	right, err := grow(ctx, subset(ds, s.right), depth+1, p)
	if err != nil {
		return nil, err
	}
	return &tree.Node{
		Feature:   s.feature,
		Threshold: s.threshold,
		Gain:      s.gain,
		Left:      left,
		Right:     right,
	}, nil
}

// leafNode builds a leaf predicting the majority class of labels.
func leafNode(labels []float64) *tree.Node {
	return &tree.Node{Leaf: true, Value: majorityClass(labels)}
}
