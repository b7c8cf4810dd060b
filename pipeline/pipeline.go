// Package pipeline wires the feature-encoding stages and the forest into
// the fitted prediction pipeline the application serves requests from.
//
// The pipeline has exactly two states. It starts untrained; Fit runs the
// whole sequence (title vectorization, categorical encoding, max-abs
// normalization, forest training) and returns a Ready pipeline. There is
// no partial-Ready state and no retraining: the fitted state is immutable
// and shared by every subsequent prediction.
package pipeline

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"vgsales-predictor/core/model"
	"vgsales-predictor/dataset"
	"vgsales-predictor/ensemble"
	vgerrors "vgsales-predictor/pkg/errors"
	"vgsales-predictor/pkg/log"
	"vgsales-predictor/preprocessing"
)

// Request is one prediction request from the presentation layer.
type Request struct {
	Title     string
	Year      int
	Platform  string
	Genre     string
	Publisher string
}

// ParseRequest validates five raw field values into a Request.
//
// Every field except the title must be non-blank, and the year must parse
// as an integer. No range check is applied to the year: a year outside the
// training range is a valid request that hits the unseen-category
// fallback. An empty title is likewise valid and produces an all-zero
// bag-of-words block.
func ParseRequest(title, year, platform, genre, publisher string) (Request, error) {
	yearValue, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return Request{}, vgerrors.NewValidationError("year", "must be an integer", year)
	}
	if strings.TrimSpace(platform) == "" {
		return Request{}, vgerrors.NewValidationError("platform", "must not be empty", platform)
	}
	if strings.TrimSpace(genre) == "" {
		return Request{}, vgerrors.NewValidationError("genre", "must not be empty", genre)
	}
	if strings.TrimSpace(publisher) == "" {
		return Request{}, vgerrors.NewValidationError("publisher", "must not be empty", publisher)
	}

	return Request{
		Title:     title,
		Year:      yearValue,
		Platform:  platform,
		Genre:     genre,
		Publisher: publisher,
	}, nil
}

// Option configures Fit.
type Option func(*options)

type options struct {
	estimators int
	seed       int64
}

// WithEstimators sets the number of forest trees.
func WithEstimators(n int) Option {
	return func(o *options) { o.estimators = n }
}

// WithSeed sets the forest's bootstrap RNG seed.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// Pipeline is the fitted prediction pipeline. All fields are write-once
// during Fit and read-only afterwards, so concurrent readers need no
// locking.
type Pipeline struct {
	state  *model.StateManager
	logger log.Logger

	vectorizer *preprocessing.CountVectorizer
	encoder    *preprocessing.OneHotEncoder
	scaler     *preprocessing.MaxAbsScaler
	forest     *ensemble.RandomForestRegressor

	nFeatures int
	r2        float64
}

// Fit trains the full pipeline on the loaded records and returns it Ready.
// Any failure aborts the whole fit; no partially fitted pipeline is ever
// returned.
func Fit(records []dataset.Record, opts ...Option) (*Pipeline, error) {
	o := &options{
		estimators: ensemble.DefaultNEstimators,
		seed:       ensemble.DefaultRandomState,
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := log.GetLoggerWithName("Pipeline")

	if len(records) == 0 {
		return nil, vgerrors.NewModelError("Pipeline.Fit", "no training records", vgerrors.ErrEmptyData)
	}

	logger.Info("selecting training features", "records", len(records),
		"features", "Name, Year, Platform, Genre, Publisher", "target", "Global_Sales")

	titles := make([]string, len(records))
	catRows := make([][]string, len(records))
	y := mat.NewVecDense(len(records), nil)
	for i, rec := range records {
		titles[i] = rec.Name
		catRows[i] = categoricalRow(rec.Year, rec.Platform, rec.Genre, rec.Publisher)
		y.SetVec(i, rec.GlobalSales)
	}

	p := &Pipeline{
		state:      model.NewStateManager(),
		logger:     logger,
		vectorizer: preprocessing.NewCountVectorizer(),
		encoder:    preprocessing.NewOneHotEncoder(),
		scaler:     preprocessing.NewMaxAbsScaler(),
		forest: ensemble.NewRandomForestRegressor(
			ensemble.WithNEstimators(o.estimators),
			ensemble.WithRandomState(o.seed),
		),
	}

	logger.Info("vectorizing game titles")
	titleMatrix, err := p.vectorizer.FitTransform(titles)
	if err != nil {
		return nil, vgerrors.Wrap(err, "vectorizing titles")
	}

	logger.Info("encoding year, platform, genre, and publisher")
	catMatrix, err := p.encoder.FitTransform(catRows)
	if err != nil {
		return nil, vgerrors.Wrap(err, "encoding categorical features")
	}

	logger.Info("concatenating feature blocks",
		"title_terms", p.vectorizer.NumTerms(), "category_columns", p.encoder.NOutputs)
	var X mat.Dense
	X.Augment(titleMatrix, catMatrix)
	_, p.nFeatures = X.Dims()

	logger.Info("normalizing features", "columns", p.nFeatures)
	normalized, err := p.scaler.FitTransform(&X)
	if err != nil {
		return nil, vgerrors.Wrap(err, "normalizing features")
	}

	logger.Info("training random forest regression model", "trees", o.estimators)
	if err := p.forest.Fit(normalized, y); err != nil {
		return nil, vgerrors.Wrap(err, "training forest")
	}

	// Training-set fit quality, for diagnostic display only. A training
	// table with no target variance makes R² undefined; that is not a fit
	// failure.
	r2, err := p.forest.Score(normalized, y)
	if err != nil {
		logger.Warn("training R² unavailable", "reason", err.Error())
	} else {
		p.r2 = r2
		logger.Info("model trained", "r_squared", roundTo(r2, 8))
	}

	p.state.SetFitted()
	return p, nil
}

// Transform encodes a request into a normalized feature row. The fitted
// state is never mutated: repeated calls with the same request produce
// identical vectors.
func (p *Pipeline) Transform(req Request) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, vgerrors.NewNotFittedError("Pipeline", "Transform")
	}

	titleMatrix, err := p.vectorizer.Transform([]string{req.Title})
	if err != nil {
		return nil, vgerrors.Wrap(err, "vectorizing title")
	}

	catMatrix, err := p.encoder.Transform([][]string{
		categoricalRow(req.Year, req.Platform, req.Genre, req.Publisher),
	})
	if err != nil {
		return nil, vgerrors.Wrap(err, "encoding categorical features")
	}

	var row mat.Dense
	row.Augment(titleMatrix, catMatrix)

	return p.scaler.Transform(&row)
}

// Predict encodes, normalizes, and scores one request, returning the sales
// estimate in millions of units rounded to 4 decimal digits. A failing
// request leaves the pipeline Ready for the next one.
func (p *Pipeline) Predict(req Request) (float64, error) {
	if !p.state.IsFitted() {
		return 0, vgerrors.NewNotFittedError("Pipeline", "Predict")
	}

	row, err := p.Transform(req)
	if err != nil {
		return 0, err
	}

	preds, err := p.forest.Predict(row)
	if err != nil {
		return 0, err
	}

	return roundTo(preds.AtVec(0), 4), nil
}

// R2 returns the training-set coefficient of determination recorded during
// Fit. Diagnostic only; it never gates predictions.
func (p *Pipeline) R2() float64 { return p.r2 }

// NumFeatures returns the width of the fitted feature space.
func (p *Pipeline) NumFeatures() int { return p.nFeatures }

// IsReady returns whether Fit has completed.
func (p *Pipeline) IsReady() bool { return p.state.IsFitted() }

// categoricalRow builds the encoder input for one record or request. Year
// is stringified and one-hot encoded like the other categorical fields.
func categoricalRow(year int, platform, genre, publisher string) []string {
	return []string{strconv.Itoa(year), platform, genre, publisher}
}

// roundTo rounds v to the given number of decimal digits.
func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
