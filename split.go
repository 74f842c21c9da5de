package dtree

import "github.com/ariaghora/libdtree/dataset"

// splitResult describes the best binary partition found for a node's
// dataset: the feature and threshold that maximize information gain,
// and the row indices falling on each side in their original order.
type splitResult struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

// uniqueValues returns the distinct values of xs in first-seen order.
func uniqueValues(xs []float64) []float64 {
	seen := make(map[float64]bool, len(xs))
	uniq := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			uniq = append(uniq, x)
		}
	}
	return uniq
}

// bestSplit exhaustively evaluates every distinct value of every
// feature as a candidate threshold and returns the partition with the
// highest information gain. Candidates leaving either side empty are
// skipped; on equal gain the earlier candidate wins. The second return
// value is false when no candidate partitions the rows, which happens
// when every feature is constant across the dataset.
func bestSplit(ds *dataset.Dataset) (splitResult, bool) {
	var best splitResult
	found := false
	bestGain := -1.0
	col := make([]float64, ds.NRow)
	left := make([]int, 0, ds.NRow)
	right := make([]int, 0, ds.NRow)
	leftY := make([]float64, 0, ds.NRow)
	rightY := make([]float64, 0, ds.NRow)
	for f := 0; f < ds.NCol; f++ {
		for i := 0; i < ds.NRow; i++ {
			col[i] = ds.At(i, f)
		}
		for _, threshold := range uniqueValues(col) {
			left, right = left[:0], right[:0]
			leftY, rightY = leftY[:0], rightY[:0]
			for i := 0; i < ds.NRow; i++ {
				if col[i] <= threshold {
					left = append(left, i)
					leftY = append(leftY, ds.Label(i))
				} else {
					right = append(right, i)
					rightY = append(rightY, ds.Label(i))
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			g := gain(ds.Y, leftY, rightY)
			if g > bestGain {
				bestGain = g
				found = true
				best.feature = f
				best.threshold = threshold
				best.gain = g
				best.left = append(best.left[:0], left...)
				best.right = append(best.right[:0], right...)
			}
		}
	}
	return best, found
}

// subset materializes the rows of ds selected by idx, preserving their
// relative order.
func subset(ds *dataset.Dataset, idx []int) *dataset.Dataset {
	x := make([]float64, 0, len(idx)*ds.NCol)
	y := make([]float64, 0, len(idx))
	for _, i := range idx {
		x = append(x, ds.Row(i)...)
		y = append(y, ds.Label(i))
	}
	return &dataset.Dataset{X: x, Y: y, NRow: len(idx), NCol: ds.NCol}
}
