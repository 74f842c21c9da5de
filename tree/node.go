package tree

/*
Node is a node of a classification tree.

A leaf node carries in Value the class it predicts. An inner node
carries the feature index and threshold that route samples down the
tree, the information gain its split achieved when the tree was grown,
and its two children: Left gathers the samples whose feature value is
less than or equal to the threshold, Right the rest.
*/
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Gain      float64 `json:"gain,omitempty"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
}

func (n *Node) depth() int {
	if n == nil || n.Leaf {
		return 0
	}
	ld := n.Left.depth()
	rd := n.Right.depth()
	if ld > rd {
		return ld + 1
	}
	return rd + 1
}

func (n *Node) count() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.count() + n.Right.count()
}
