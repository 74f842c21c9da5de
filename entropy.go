package dtree

import "math"

// bincount returns the number of occurrences of each class in labels,
// indexed by class. The result has max(labels)+1 entries.
func bincount(labels []float64) []int {
	max := 0.0
	for _, y := range labels {
		if y > max {
			max = y
		}
	}
	counts := make([]int, int(max)+1)
	for _, y := range labels {
		counts[int(y)]++
	}
	return counts
}

// entropy returns the Shannon entropy in bits of the class distribution
// of labels. Classes with zero count contribute nothing.
func entropy(labels []float64) float64 {
	counts := bincount(labels)
	n := float64(len(labels))
	var e float64
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / n
			e -= p * math.Log2(p)
		}
	}
	return e
}

// gain returns the information gained by splitting parent into left and
// right: the parent entropy minus the size-weighted entropies of the
// two sides.
func gain(parent, left, right []float64) float64 {
	n := float64(len(parent))
	lprop := float64(len(left)) / n
	rprop := float64(len(right)) / n
	return entropy(parent) - (lprop*entropy(left) + rprop*entropy(right))
}

// isPure reports whether all labels belong to a single class.
func isPure(labels []float64) bool {
	for _, y := range labels[1:] {
		if y != labels[0] {
			return false
		}
	}
	return true
}

// majorityClass returns the most frequent class in labels. When several
// classes are equally frequent the smallest one wins.
func majorityClass(labels []float64) float64 {
	counts := bincount(labels)
	idxmax := 0
	for i, c := range counts {
		if c > counts[idxmax] {
			idxmax = i
		}
	}
	return float64(idxmax)
}
