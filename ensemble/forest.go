package ensemble

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	"vgsales-predictor/metrics"
	vgerrors "vgsales-predictor/pkg/errors"
	"vgsales-predictor/pkg/log"
)

// DefaultNEstimators is the forest size used when no option overrides it.
const DefaultNEstimators = 10

// DefaultRandomState seeds the bootstrap RNG so fits are reproducible
// unless a caller overrides it.
const DefaultRandomState int64 = 42

// RandomForestRegressor averages the predictions of bootstrap-aggregated
// regression trees.
//
// Output is whatever the trees produce, with no clamping to
// non-negative; with non-negative training targets every leaf mean is
// non-negative anyway.
type RandomForestRegressor struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	nEstimators     int
	maxDepth        int // 0 = unlimited
	minSamplesSplit int
	minSamplesLeaf  int
	randomState     int64

	trees     []*RegressionTree
	nFeatures int
}

// RandomForestOption is a functional option for NewRandomForestRegressor.
type RandomForestOption func(*RandomForestRegressor)

// NewRandomForestRegressor creates a forest with default hyperparameters:
// 10 trees, unlimited depth, fixed bootstrap seed 42.
func NewRandomForestRegressor(opts ...RandomForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		state:           model.NewStateManager(),
		logger:          log.GetLoggerWithName("RandomForestRegressor"),
		nEstimators:     DefaultNEstimators,
		maxDepth:        0,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		randomState:     DefaultRandomState,
	}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.nEstimators = n
	}
}

// WithMaxDepth sets the maximum depth per tree (0 = unlimited).
func WithMaxDepth(depth int) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.maxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum samples required to split a node.
func WithMinSamplesSplit(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.minSamplesSplit = n
	}
}

// WithMinSamplesLeaf sets the minimum samples required in a leaf.
func WithMinSamplesLeaf(n int) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.minSamplesLeaf = n
	}
}

// WithRandomState sets the bootstrap RNG seed.
func WithRandomState(seed int64) RandomForestOption {
	return func(rf *RandomForestRegressor) {
		rf.randomState = seed
	}
}

// Fit trains the forest on X against target vector y. Each tree is fit on
// a bootstrap resample (n samples drawn with replacement) of the training
// set, sequentially, from a single seeded RNG.
func (rf *RandomForestRegressor) Fit(X mat.Matrix, y *mat.VecDense) (err error) {
	defer vgerrors.Recover(&err, "RandomForestRegressor.Fit")
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return vgerrors.NewModelError("RandomForestRegressor.Fit", "empty data", vgerrors.ErrEmptyData)
	}
	if y.Len() != nSamples {
		return vgerrors.NewDimensionError("RandomForestRegressor.Fit", nSamples, y.Len(), 0)
	}
	if rf.nEstimators < 1 {
		return vgerrors.NewValueError("RandomForestRegressor.Fit", "nEstimators must be >= 1")
	}

	rf.logger.Info("training random forest",
		"samples", nSamples,
		"features", nFeatures,
		"trees", rf.nEstimators,
		"seed", rf.randomState)

	targets := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		targets[i] = y.AtVec(i)
	}

	rng := rand.New(rand.NewSource(rf.randomState))

	rf.nFeatures = nFeatures
	rf.trees = make([]*RegressionTree, rf.nEstimators)
	for t := 0; t < rf.nEstimators; t++ {
		indices := make([]int, nSamples)
		for i := range indices {
			indices[i] = rng.Intn(nSamples)
		}
		bootX, bootY := subset(X, targets, indices)

		tree := NewRegressionTree(
			WithTreeMaxDepth(rf.maxDepth),
			WithTreeMinSamplesSplit(rf.minSamplesSplit),
			WithTreeMinSamplesLeaf(rf.minSamplesLeaf),
		)
		if err := tree.Fit(bootX, bootY); err != nil {
			return vgerrors.Wrapf(err, "fitting tree %d", t)
		}
		rf.trees[t] = tree
	}

	rf.state.SetFitted()
	rf.logger.Info("random forest trained", "trees", len(rf.trees))
	return nil
}

// Predict returns the mean tree prediction for each row of X.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer vgerrors.Recover(&err, "RandomForestRegressor.Predict")
	if !rf.state.IsFitted() {
		return nil, vgerrors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != rf.nFeatures {
		return nil, vgerrors.NewDimensionError("RandomForestRegressor.Predict", rf.nFeatures, nFeatures, 1)
	}

	sums := make([]float64, nSamples)
	for _, tree := range rf.trees {
		preds, err := tree.Predict(X)
		if err != nil {
			return nil, err
		}
		for i := 0; i < nSamples; i++ {
			sums[i] += preds.AtVec(i)
		}
	}

	result := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		result.SetVec(i, sums[i]/float64(len(rf.trees)))
	}
	return result, nil
}

// Score returns the coefficient of determination of the forest's
// predictions on X against y. In this repository it is only ever called
// with the training set, as a fit-quality diagnostic.
func (rf *RandomForestRegressor) Score(X mat.Matrix, y *mat.VecDense) (float64, error) {
	preds, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(y, preds)
}

// IsFitted returns whether Fit has completed.
func (rf *RandomForestRegressor) IsFitted() bool {
	return rf.state.IsFitted()
}

// NumTrees returns the number of fitted trees.
func (rf *RandomForestRegressor) NumTrees() int {
	return len(rf.trees)
}
