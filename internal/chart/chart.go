// Package chart renders the running sales scatter chart to a PNG file.
//
// The chart shows the training set (sales on X, release year on Y) and
// every prediction made during the session in a contrasting color. It is
// re-rendered after each prediction.
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"vgsales-predictor/dataset"
	vgerrors "vgsales-predictor/pkg/errors"
)

// Chart accumulates scatter points and renders them to a file.
type Chart struct {
	path        string
	training    plotter.XYs
	predictions plotter.XYs
}

// New creates a chart over the training records, rendered to path.
func New(records []dataset.Record, path string) *Chart {
	training := make(plotter.XYs, len(records))
	for i, rec := range records {
		training[i].X = rec.GlobalSales
		training[i].Y = float64(rec.Year)
	}
	return &Chart{path: path, training: training}
}

// AddPrediction appends one predicted point to the session series.
func (c *Chart) AddPrediction(year int, sales float64) {
	c.predictions = append(c.predictions, plotter.XY{X: sales, Y: float64(year)})
}

// Render writes the chart PNG. Training points are drawn in cyan,
// session predictions in red.
func (c *Chart) Render() error {
	p := plot.New()
	p.Title.Text = "Video Game Global Sales"
	p.X.Label.Text = "Global Sales (millions)"
	p.Y.Label.Text = "Year"

	trainScatter, err := plotter.NewScatter(c.training)
	if err != nil {
		return vgerrors.Wrap(err, "building training scatter")
	}
	trainScatter.GlyphStyle.Color = color.RGBA{R: 0, G: 180, B: 200, A: 255}
	trainScatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(trainScatter)
	p.Legend.Add("training", trainScatter)

	if len(c.predictions) > 0 {
		predScatter, err := plotter.NewScatter(c.predictions)
		if err != nil {
			return vgerrors.Wrap(err, "building prediction scatter")
		}
		predScatter.GlyphStyle.Color = color.RGBA{R: 220, G: 40, B: 40, A: 255}
		predScatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(predScatter)
		p.Legend.Add("predicted", predScatter)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, c.path); err != nil {
		return vgerrors.Wrapf(err, "saving chart to %s", c.path)
	}
	return nil
}

// Path returns the render target.
func (c *Chart) Path() string { return c.path }
