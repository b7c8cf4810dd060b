// Package preprocessing implements the feature-encoding stages of the
// sales-prediction pipeline.
//
//   - CountVectorizer: bag-of-words counts over game titles
//   - OneHotEncoder: one-hot indicators for year, platform, genre, publisher
//   - MaxAbsScaler: per-feature scaling by maximum absolute value
//
// All three follow the Fit / Transform / FitTransform pattern and embed the
// estimator state machine: Transform before Fit returns a NotFittedError,
// and Transform never mutates fitted state, so repeated calls on the same
// input produce identical output.
package preprocessing

import (
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	vgerrors "vgsales-predictor/pkg/errors"
)

// CountVectorizer converts a collection of text documents into a matrix of
// token counts.
//
// Tokenization: the document is
// lower-cased and tokens are maximal runs of two or more word characters
// (letters, digits, underscore). Single-character tokens are dropped. The
// vocabulary is sorted so column order is deterministic.
type CountVectorizer struct {
	model.BaseEstimator

	// Vocabulary is the sorted list of terms seen during fit. Column j of
	// the transform output counts occurrences of Vocabulary[j].
	Vocabulary []string

	// TermToIdx maps each vocabulary term to its column index.
	TermToIdx map[string]int
}

// NewCountVectorizer creates an unfitted CountVectorizer.
func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{}
}

// Fit builds the term vocabulary from the given documents.
//
// Errors:
//   - ModelError wrapping ErrEmptyData: if docs is empty
func (v *CountVectorizer) Fit(docs []string) (err error) {
	defer vgerrors.Recover(&err, "CountVectorizer.Fit")
	if len(docs) == 0 {
		return vgerrors.NewModelError("CountVectorizer.Fit", "empty corpus", vgerrors.ErrEmptyData)
	}

	termSet := make(map[string]bool)
	for _, doc := range docs {
		for _, tok := range tokenize(doc) {
			termSet[tok] = true
		}
	}

	if len(termSet) == 0 {
		return vgerrors.NewModelError("CountVectorizer.Fit", "empty vocabulary", vgerrors.ErrEmptyData)
	}

	vocab := make([]string, 0, len(termSet))
	for term := range termSet {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	v.Vocabulary = vocab
	v.TermToIdx = make(map[string]int, len(vocab))
	for idx, term := range vocab {
		v.TermToIdx[term] = idx
	}

	v.SetFitted()
	return nil
}

// Transform produces one count row per document over the fitted
// vocabulary. Tokens outside the vocabulary contribute nothing; an empty
// or all-whitespace document yields an all-zero row, never an error.
func (v *CountVectorizer) Transform(docs []string) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "CountVectorizer.Transform")
	if !v.IsFitted() {
		return nil, vgerrors.NewNotFittedError("CountVectorizer", "Transform")
	}

	if len(docs) == 0 {
		return nil, vgerrors.NewValueError("CountVectorizer.Transform", "no documents")
	}

	result := mat.NewDense(len(docs), len(v.Vocabulary), nil)
	for i, doc := range docs {
		for _, tok := range tokenize(doc) {
			if j, known := v.TermToIdx[tok]; known {
				result.Set(i, j, result.At(i, j)+1)
			}
		}
	}

	return result, nil
}

// FitTransform fits the vocabulary and transforms the same documents.
func (v *CountVectorizer) FitTransform(docs []string) (_ mat.Matrix, err error) {
	defer vgerrors.Recover(&err, "CountVectorizer.FitTransform")
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// NumTerms returns the vocabulary size, i.e. the transform output width.
func (v *CountVectorizer) NumTerms() int {
	return len(v.Vocabulary)
}

// tokenize lower-cases s and returns maximal runs of word characters with
// at least two runes.
func tokenize(s string) []string {
	s = strings.ToLower(s)

	var tokens []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}
