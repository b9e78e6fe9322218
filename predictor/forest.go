package predictor

import (
	"context"
	"math/rand"
	"sort"
)

// forestModel averages the predictions of regression trees grown on
// bootstrap resamples of the training set.
type forestModel struct {
	trees []*regressionTree
}

func (f *forestModel) predict(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// trainForest grows cfg.Trees trees of depth at most cfg.MaxDepth. Every
// split considers all features and minimises the summed squared error of the
// two children. The context is checked before each tree.
func trainForest(ctx context.Context, train []sample, cfg TrainerConfig) (*forestModel, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	f := &forestModel{trees: make([]*regressionTree, cfg.Trees)}
	idx := make([]int, len(train))
	for i := range f.trees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := range idx {
			idx[j] = rng.Intn(len(train))
		}
		f.trees[i] = growTree(train, idx, cfg.MaxDepth)
	}
	return f, nil
}

// treeNode is a split when left >= 0, otherwise a leaf predicting value.
type treeNode struct {
	feature     int
	threshold   float64
	left, right int
	value       float64
}

type regressionTree struct {
	nodes []treeNode
}

func (t *regressionTree) predict(x []float64) float64 {
	i := 0
	for {
		n := &t.nodes[i]
		if n.left < 0 {
			return n.value
		}
		if x[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
}

func growTree(train []sample, idx []int, maxDepth int) *regressionTree {
	t := &regressionTree{}
	t.grow(train, append([]int(nil), idx...), 0, maxDepth)
	return t
}

// grow appends the subtree for idx and returns its node index.
func (t *regressionTree) grow(train []sample, idx []int, depth, maxDepth int) int {
	var sum, sumSq float64
	for _, i := range idx {
		y := train[i].y
		sum += y
		sumSq += y * y
	}
	n := float64(len(idx))
	node := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{left: -1, right: -1, value: sum / n})

	if len(idx) < 2 || depth >= maxDepth || sumSq-sum*sum/n <= 1e-12 {
		return node
	}
	feature, threshold, ok := bestSplit(train, idx)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if train[i].x[feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := t.grow(train, left, depth+1, maxDepth)
	r := t.grow(train, right, depth+1, maxDepth)
	t.nodes[node].feature = feature
	t.nodes[node].threshold = threshold
	t.nodes[node].left = l
	t.nodes[node].right = r
	return node
}

// bestSplit returns the feature and midpoint threshold with the lowest
// summed child squared error. ok is false when every feature is constant.
func bestSplit(train []sample, idx []int) (feature int, threshold float64, ok bool) {
	dim := len(train[idx[0]].x)
	sorted := make([]int, len(idx))
	best := 0.0
	for f := 0; f < dim; f++ {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool {
			return train[sorted[a]].x[f] < train[sorted[b]].x[f]
		})

		var totalSum, totalSq float64
		for _, i := range sorted {
			totalSum += train[i].y
			totalSq += train[i].y * train[i].y
		}

		var leftSum, leftSq float64
		for k := 1; k < len(sorted); k++ {
			y := train[sorted[k-1]].y
			leftSum += y
			leftSq += y * y

			lo, hi := train[sorted[k-1]].x[f], train[sorted[k]].x[f]
			if lo == hi {
				continue
			}
			nl, nr := float64(k), float64(len(sorted)-k)
			rightSum, rightSq := totalSum-leftSum, totalSq-leftSq
			sse := leftSq - leftSum*leftSum/nl + rightSq - rightSum*rightSum/nr
			if !ok || sse < best {
				feature, threshold, best, ok = f, (lo+hi)/2, sse, true
			}
		}
	}
	return feature, threshold, ok
}
