package ensemble_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/ensemble"
)

func TestRegressionTree_PerfectSplit(t *testing.T) {
	// One feature cleanly separates the two target groups.
	X := mat.NewDense(4, 1, []float64{1, 2, 10, 11})
	y := []float64{5, 5, 20, 20}

	tree := ensemble.NewRegressionTree()
	if err := tree.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	preds, err := tree.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	expected := []float64{5, 5, 20, 20}
	for i, want := range expected {
		if preds.AtVec(i) != want {
			t.Errorf("prediction %d: expected %f, got %f", i, want, preds.AtVec(i))
		}
	}
}

func TestRegressionTree_SingleSampleIsLeaf(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{1, 2})
	y := []float64{3.5}

	tree := ensemble.NewRegressionTree()
	if err := tree.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	preds, err := tree.Predict(mat.NewDense(1, 2, []float64{9, 9}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if preds.AtVec(0) != 3.5 {
		t.Errorf("single-sample tree should always predict 3.5, got %f", preds.AtVec(0))
	}
	if tree.Depth() != 0 {
		t.Errorf("single-sample tree should be a lone leaf, depth %d", tree.Depth())
	}
}

func TestRegressionTree_MaxDepth(t *testing.T) {
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	tree := ensemble.NewRegressionTree(ensemble.WithTreeMaxDepth(2))
	if err := tree.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if tree.Depth() > 2 {
		t.Errorf("depth %d exceeds configured maximum 2", tree.Depth())
	}
}

func TestRegressionTree_DimensionMismatch(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	y := []float64{1, 2}

	tree := ensemble.NewRegressionTree()
	if err := tree.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if _, err := tree.Predict(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("Predict with wrong feature count should fail")
	}
}

func TestRegressionTree_UnfittedError(t *testing.T) {
	tree := ensemble.NewRegressionTree()
	if _, err := tree.Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("Predict before Fit should fail")
	}
}

func TestRegressionTree_TargetLengthMismatch(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := []float64{1, 2}

	tree := ensemble.NewRegressionTree()
	if err := tree.Fit(X, y); err == nil {
		t.Error("Fit with mismatched target length should fail")
	}
}
