package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	vgerrors "vgsales-predictor/pkg/errors"
)

// MaxAbsScaler scales each feature by its maximum absolute value observed
// during fit, so every training column lands in [-1, 1].
//
// Columns whose training-time maximum is zero are left unscaled (their
// divisor is set to 1): a constant-zero column carries no information and
// dividing by zero is otherwise undefined.
type MaxAbsScaler struct {
	model.BaseEstimator

	// MaxAbs is the per-column maximum absolute value from fit.
	MaxAbs []float64

	// Scale is the per-column divisor applied by Transform: MaxAbs, with
	// zeros replaced by 1.
	Scale []float64

	// NFeatures is the number of feature columns.
	NFeatures int
}

// NewMaxAbsScaler creates an unfitted MaxAbsScaler.
func NewMaxAbsScaler() *MaxAbsScaler {
	return &MaxAbsScaler{}
}

// Fit computes the per-column maximum absolute value of X.
//
// Errors:
//   - ModelError wrapping ErrEmptyData: if X has no rows or no columns
func (s *MaxAbsScaler) Fit(X mat.Matrix) (err error) {
	defer vgerrors.Recover(&err, "MaxAbsScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return vgerrors.NewModelError("MaxAbsScaler.Fit", "empty data", vgerrors.ErrEmptyData)
	}

	s.NFeatures = c
	s.MaxAbs = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		maxAbs := 0.0
		for i := 0; i < r; i++ {
			if v := math.Abs(X.At(i, j)); v > maxAbs {
				maxAbs = v
			}
		}

		s.MaxAbs[j] = maxAbs
		if maxAbs == 0 {
			s.Scale[j] = 1.0
		} else {
			s.Scale[j] = maxAbs
		}
	}

	s.SetFitted()
	return nil
}

// Transform divides each column of X by its fitted maximum absolute value.
//
// Errors:
//   - NotFittedError: if Fit has not completed
//   - DimensionError: if X's width differs from the fitted width
func (s *MaxAbsScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "MaxAbsScaler.Transform")
	if !s.IsFitted() {
		return nil, vgerrors.NewNotFittedError("MaxAbsScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, vgerrors.NewDimensionError("MaxAbsScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)/s.Scale[j])
		}
	}

	return result, nil
}

// FitTransform fits the scaler and transforms the same data.
func (s *MaxAbsScaler) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "MaxAbsScaler.FitTransform")
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform multiplies each column back by its fitted scale.
func (s *MaxAbsScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "MaxAbsScaler.InverseTransform")
	if !s.IsFitted() {
		return nil, vgerrors.NewNotFittedError("MaxAbsScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, vgerrors.NewDimensionError("MaxAbsScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j])
		}
	}

	return result, nil
}

// String returns a short description of the scaler.
func (s *MaxAbsScaler) String() string {
	if !s.IsFitted() {
		return "MaxAbsScaler()"
	}
	return fmt.Sprintf("MaxAbsScaler(n_features=%d)", s.NFeatures)
}
