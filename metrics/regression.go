// Package metrics implements the regression metrics used for fit
// diagnostics.
//
// Only training-set diagnostics are computed in this repository (there is
// no held-out split), so the package stays small: MSE, RMSE, and the
// coefficient of determination.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	vgerrors "vgsales-predictor/pkg/errors"
)

// MSE returns the mean squared error between true and predicted values.
//
// Errors:
//   - ValueError: if the vectors are empty
//   - DimensionError: if the vectors have different lengths
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, vgerrors.NewValueError("MSE", "empty vector")
	}
	if yPred.Len() != n {
		return 0, vgerrors.NewDimensionError("MSE", n, yPred.Len(), 0)
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE returns the root mean squared error, i.e. the square root of MSE,
// in the same units as the target.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2Score returns the coefficient of determination.
//
// R² = 1 - RSS/TSS. A perfect fit scores 1.0; predicting the mean scores
// 0.0; worse-than-mean predictions go negative. In this repository it is
// evaluated against the training set itself, for diagnostic display only.
//
// Errors:
//   - ValueError: if the vectors are empty, or yTrue has no variance
//   - DimensionError: if the vectors have different lengths
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, vgerrors.NewValueError("R2Score", "empty vector")
	}
	if yPred.Len() != n {
		return 0, vgerrors.NewDimensionError("R2Score", n, yPred.Len(), 0)
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	if tss == 0 {
		return 0, vgerrors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	return 1 - rss/tss, nil
}
