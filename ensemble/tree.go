// Package ensemble implements the random-forest regressor that predicts
// global sales from the encoded feature matrix.
//
// The forest is a fixed number of CART regression trees, each trained on a
// bootstrap resample of the training set; a prediction is the mean of the
// tree outputs. Training is deliberately single-threaded: fitting happens
// once at startup and the fitted forest is immutable afterwards.
package ensemble

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	vgerrors "vgsales-predictor/pkg/errors"
)

// treeNode is a node in a regression tree.
type treeNode struct {
	isLeaf    bool
	feature   int       // Split feature index (internal nodes)
	threshold float64   // Split threshold (internal nodes)
	left      *treeNode // Values <= threshold
	right     *treeNode // Values > threshold
	value     float64   // Mean target at this node (prediction for leaves)
	impurity  float64   // Target variance at this node
	nSamples  int
	depth     int
}

// RegressionTree is a CART regression tree using variance reduction as the
// splitting criterion and mean target values at the leaves.
type RegressionTree struct {
	state *model.StateManager

	// Hyperparameters
	maxDepth        int // 0 = unlimited
	minSamplesSplit int
	minSamplesLeaf  int

	root      *treeNode
	nFeatures int
}

// RegressionTreeOption is a functional option for NewRegressionTree.
type RegressionTreeOption func(*RegressionTree)

// NewRegressionTree creates a regression tree with default hyperparameters
// (unlimited depth, min 2 samples to split, min 1 sample per leaf).
func NewRegressionTree(opts ...RegressionTreeOption) *RegressionTree {
	rt := &RegressionTree{
		state:           model.NewStateManager(),
		maxDepth:        0,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// WithTreeMaxDepth sets the maximum tree depth (0 = unlimited).
func WithTreeMaxDepth(depth int) RegressionTreeOption {
	return func(rt *RegressionTree) {
		rt.maxDepth = depth
	}
}

// WithTreeMinSamplesSplit sets the minimum samples required to split.
func WithTreeMinSamplesSplit(n int) RegressionTreeOption {
	return func(rt *RegressionTree) {
		rt.minSamplesSplit = n
	}
}

// WithTreeMinSamplesLeaf sets the minimum samples required in a leaf.
func WithTreeMinSamplesLeaf(n int) RegressionTreeOption {
	return func(rt *RegressionTree) {
		rt.minSamplesLeaf = n
	}
}

// Fit builds the tree from X and target values y.
func (rt *RegressionTree) Fit(X mat.Matrix, y []float64) (err error) {
	defer vgerrors.Recover(&err, "RegressionTree.Fit")
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return vgerrors.NewModelError("RegressionTree.Fit", "empty data", vgerrors.ErrEmptyData)
	}
	if nSamples != len(y) {
		return vgerrors.NewDimensionError("RegressionTree.Fit", nSamples, len(y), 0)
	}

	rt.nFeatures = nFeatures
	rt.root = rt.buildTree(X, y, 0)

	rt.state.SetFitted()
	return nil
}

// buildTree recursively grows the tree.
func (rt *RegressionTree) buildTree(X mat.Matrix, y []float64, depth int) *treeNode {
	nSamples := len(y)

	mean := meanOf(y)
	impurity := varianceOf(y, mean)

	node := &treeNode{
		value:    mean,
		impurity: impurity,
		nSamples: nSamples,
		depth:    depth,
	}

	if rt.shouldStop(nSamples, impurity, depth) {
		node.isLeaf = true
		return node
	}

	bestFeature, bestThreshold, bestDecrease := rt.findBestSplit(X, y, impurity)
	if bestFeature == -1 || bestDecrease <= 0 {
		node.isLeaf = true
		return node
	}

	leftIndices, rightIndices := rt.splitData(X, bestFeature, bestThreshold)
	if len(leftIndices) < rt.minSamplesLeaf || len(rightIndices) < rt.minSamplesLeaf {
		node.isLeaf = true
		return node
	}

	node.feature = bestFeature
	node.threshold = bestThreshold

	leftX, leftY := subset(X, y, leftIndices)
	rightX, rightY := subset(X, y, rightIndices)

	node.left = rt.buildTree(leftX, leftY, depth+1)
	node.right = rt.buildTree(rightX, rightY, depth+1)

	return node
}

// shouldStop checks the stopping criteria.
func (rt *RegressionTree) shouldStop(nSamples int, impurity float64, depth int) bool {
	if rt.maxDepth > 0 && depth >= rt.maxDepth {
		return true
	}
	if nSamples < rt.minSamplesSplit {
		return true
	}
	// Pure node: all targets identical.
	if impurity == 0.0 {
		return true
	}
	return false
}

// findBestSplit scans every feature and candidate threshold for the split
// with the largest variance reduction. All features are considered at every
// node; there is no per-split feature subsampling.
func (rt *RegressionTree) findBestSplit(X mat.Matrix, y []float64, parentImpurity float64) (int, float64, float64) {
	nSamples, nFeatures := X.Dims()
	bestFeature := -1
	bestThreshold := 0.0
	bestDecrease := 0.0

	for feature := 0; feature < nFeatures; feature++ {
		values := make([]float64, nSamples)
		for i := 0; i < nSamples; i++ {
			values[i] = X.At(i, feature)
		}

		sortedIndices := make([]int, nSamples)
		for i := range sortedIndices {
			sortedIndices[i] = i
		}
		sort.Slice(sortedIndices, func(i, j int) bool {
			return values[sortedIndices[i]] < values[sortedIndices[j]]
		})

		for i := 0; i < nSamples-1; i++ {
			idx1 := sortedIndices[i]
			idx2 := sortedIndices[i+1]
			if values[idx1] == values[idx2] {
				continue
			}

			threshold := (values[idx1] + values[idx2]) / 2.0

			var leftY, rightY []float64
			for j := 0; j < nSamples; j++ {
				if X.At(j, feature) <= threshold {
					leftY = append(leftY, y[j])
				} else {
					rightY = append(rightY, y[j])
				}
			}

			if len(leftY) < rt.minSamplesLeaf || len(rightY) < rt.minSamplesLeaf {
				continue
			}

			leftImpurity := varianceOf(leftY, meanOf(leftY))
			rightImpurity := varianceOf(rightY, meanOf(rightY))

			weighted := (float64(len(leftY))*leftImpurity + float64(len(rightY))*rightImpurity) / float64(nSamples)
			decrease := parentImpurity - weighted

			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestDecrease
}

// splitData partitions sample indices by feature threshold.
func (rt *RegressionTree) splitData(X mat.Matrix, feature int, threshold float64) ([]int, []int) {
	nSamples, _ := X.Dims()
	var leftIndices, rightIndices []int
	for i := 0; i < nSamples; i++ {
		if X.At(i, feature) <= threshold {
			leftIndices = append(leftIndices, i)
		} else {
			rightIndices = append(rightIndices, i)
		}
	}
	return leftIndices, rightIndices
}

// Predict returns one prediction per row of X.
func (rt *RegressionTree) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer vgerrors.Recover(&err, "RegressionTree.Predict")
	if !rt.state.IsFitted() {
		return nil, vgerrors.NewNotFittedError("RegressionTree", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != rt.nFeatures {
		return nil, vgerrors.NewDimensionError("RegressionTree.Predict", rt.nFeatures, nFeatures, 1)
	}

	predictions := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		node := rt.root
		for !node.isLeaf {
			if X.At(i, node.feature) <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		predictions.SetVec(i, node.value)
	}

	return predictions, nil
}

// Depth returns the maximum depth of the fitted tree.
func (rt *RegressionTree) Depth() int {
	return maxDepthOf(rt.root)
}

func maxDepthOf(node *treeNode) int {
	if node == nil {
		return 0
	}
	if node.isLeaf {
		return node.depth
	}
	leftDepth := maxDepthOf(node.left)
	rightDepth := maxDepthOf(node.right)
	if leftDepth > rightDepth {
		return leftDepth
	}
	return rightDepth
}

// subset extracts the rows of X and entries of y at the given indices.
func subset(X mat.Matrix, y []float64, indices []int) (mat.Matrix, []float64) {
	_, nFeatures := X.Dims()

	subX := mat.NewDense(len(indices), nFeatures, nil)
	subY := make([]float64, len(indices))
	for i, idx := range indices {
		for j := 0; j < nFeatures; j++ {
			subX.Set(i, j, X.At(idx, j))
		}
		subY[i] = y[idx]
	}
	return subX, subY
}

func meanOf(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

func varianceOf(y []float64, mean float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(y))
}
