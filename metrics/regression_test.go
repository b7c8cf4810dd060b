package metrics_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/metrics"
)

func TestMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSE failed: %v", err)
	}
	if mse != 0 {
		t.Errorf("perfect predictions should give MSE=0, got %f", mse)
	}

	yPred2 := mat.NewVecDense(4, []float64{2, 3, 4, 5})
	mse, err = metrics.MSE(yTrue, yPred2)
	if err != nil {
		t.Fatalf("MSE failed: %v", err)
	}
	if mse != 1.0 {
		t.Errorf("expected MSE=1.0, got %f", mse)
	}
}

func TestMSE_LengthMismatch(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(2, []float64{1, 2})

	if _, err := metrics.MSE(yTrue, yPred); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(2, []float64{0, 0})
	yPred := mat.NewVecDense(2, []float64{3, 3})

	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE failed: %v", err)
	}
	if math.Abs(rmse-3.0) > 1e-12 {
		t.Errorf("expected RMSE=3.0, got %f", rmse)
	}
}

func TestR2Score(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	// Perfect predictions: R² = 1.
	r2, err := metrics.R2Score(yTrue, yTrue)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if math.Abs(r2-1.0) > 1e-12 {
		t.Errorf("expected R²=1.0, got %f", r2)
	}

	// Mean predictions: R² = 0.
	yMean := mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5})
	r2, err = metrics.R2Score(yTrue, yMean)
	if err != nil {
		t.Fatalf("R2Score failed: %v", err)
	}
	if math.Abs(r2) > 1e-12 {
		t.Errorf("expected R²=0.0 for mean predictor, got %f", r2)
	}
}

func TestR2Score_NoVariance(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{5, 5, 5})
	yPred := mat.NewVecDense(3, []float64{5, 5, 5})

	if _, err := metrics.R2Score(yTrue, yPred); err == nil {
		t.Error("expected error when yTrue has no variance")
	}
}
