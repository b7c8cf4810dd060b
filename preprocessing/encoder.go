package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	vgerrors "vgsales-predictor/pkg/errors"
)

// OneHotEncoder converts categorical string features into binary indicator
// columns.
//
// Each input feature gets one output column per distinct category value
// seen during fit, in sorted order. A value never seen during fit maps to
// an all-zero block for that feature; that fallback is a load-bearing
// contract of the prediction pipeline, not an error condition.
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories holds the sorted category values per input feature.
	Categories [][]string

	// CategoryToIdx maps category value to index within each feature block.
	CategoryToIdx []map[string]int

	// NFeatures is the number of input features.
	NFeatures int

	// NOutputs is the total number of output columns.
	NOutputs int
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit collects the distinct category values per feature from the training
// rows.
//
// Errors:
//   - ModelError wrapping ErrEmptyData: if data has no rows or no columns
//   - DimensionError: if rows have inconsistent widths
func (e *OneHotEncoder) Fit(data [][]string) (err error) {
	defer vgerrors.Recover(&err, "OneHotEncoder.Fit")
	if len(data) == 0 {
		return vgerrors.NewModelError("OneHotEncoder.Fit", "empty data", vgerrors.ErrEmptyData)
	}
	if len(data[0]) == 0 {
		return vgerrors.NewModelError("OneHotEncoder.Fit", "empty features", vgerrors.ErrEmptyData)
	}

	nSamples := len(data)
	nFeatures := len(data[0])

	for i, row := range data {
		if len(row) != nFeatures {
			return vgerrors.NewDimensionError("OneHotEncoder.Fit", nFeatures, len(row), i)
		}
	}

	e.NFeatures = nFeatures
	e.Categories = make([][]string, nFeatures)
	e.CategoryToIdx = make([]map[string]int, nFeatures)

	for j := 0; j < nFeatures; j++ {
		categorySet := make(map[string]bool)
		for i := 0; i < nSamples; i++ {
			categorySet[data[i][j]] = true
		}

		categories := make([]string, 0, len(categorySet))
		for category := range categorySet {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		e.Categories[j] = categories

		categoryToIdx := make(map[string]int, len(categories))
		for idx, category := range categories {
			categoryToIdx[category] = idx
		}
		e.CategoryToIdx[j] = categoryToIdx
	}

	e.NOutputs = 0
	for _, categories := range e.Categories {
		e.NOutputs += len(categories)
	}

	e.SetFitted()
	return nil
}

// Transform one-hot encodes rows using the fitted category vocabularies.
// Unknown category values leave their feature block all zero.
func (e *OneHotEncoder) Transform(data [][]string) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "OneHotEncoder.Transform")
	if !e.IsFitted() {
		return nil, vgerrors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	if len(data) == 0 {
		return nil, vgerrors.NewValueError("OneHotEncoder.Transform", "no rows")
	}

	nSamples := len(data)
	if len(data[0]) != e.NFeatures {
		return nil, vgerrors.NewDimensionError("OneHotEncoder.Transform", e.NFeatures, len(data[0]), 1)
	}

	result := mat.NewDense(nSamples, e.NOutputs, nil)
	for i := 0; i < nSamples; i++ {
		offset := 0
		for j := 0; j < e.NFeatures; j++ {
			if idx, known := e.CategoryToIdx[j][data[i][j]]; known {
				result.Set(i, offset+idx, 1.0)
			}
			// Unknown category: block stays zero.
			offset += len(e.Categories[j])
		}
	}

	return result, nil
}

// FitTransform fits the category vocabularies and transforms the same rows.
func (e *OneHotEncoder) FitTransform(data [][]string) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "OneHotEncoder.FitTransform")
	if err := e.Fit(data); err != nil {
		return nil, err
	}
	return e.Transform(data)
}
