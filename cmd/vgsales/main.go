// Command vgsales trains the global-sales model on the bundled dataset and
// serves predictions, either through the interactive terminal form or as a
// one-shot prediction with -predict.
package main

import (
	"flag"
	"fmt"
	"os"

	"vgsales-predictor/dataset"
	"vgsales-predictor/internal/cfg"
	"vgsales-predictor/internal/chart"
	"vgsales-predictor/internal/ui"
	"vgsales-predictor/pipeline"
	"vgsales-predictor/pkg/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vgsales", flag.ContinueOnError)
	predict := fs.Bool("predict", false, "predict once from the field flags and exit")
	title := fs.String("title", "", "game title")
	year := fs.String("year", "", "release year")
	platform := fs.String("platform", "", "platform, e.g. Wii")
	genre := fs.String("genre", "", "genre, e.g. Sports")
	publisher := fs.String("publisher", "", "publisher, e.g. Nintendo")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	conf, err := cfg.Load()
	if err != nil {
		log.LogError(err, "invalid configuration")
		return 1
	}
	log.SetupLogger(conf.LogLevel)
	logger := log.GetLoggerWithName("vgsales")

	records, err := dataset.Load(conf.DataPath)
	if err != nil {
		log.LogError(err, "loading training data")
		return 1
	}

	p, err := pipeline.Fit(records,
		pipeline.WithEstimators(conf.Estimators),
		pipeline.WithSeed(conf.Seed),
	)
	if err != nil {
		log.LogError(err, "training failed")
		return 1
	}

	if *predict {
		req, err := pipeline.ParseRequest(*title, *year, *platform, *genre, *publisher)
		if err != nil {
			log.LogError(err, "invalid request")
			return 2
		}
		prediction, err := p.Predict(req)
		if err != nil {
			log.LogError(err, "prediction failed")
			return 1
		}
		fmt.Printf("%.4f\n", prediction)
		return 0
	}

	c := chart.New(records, conf.ChartPath)
	if err := c.Render(); err != nil {
		logger.Warn("initial chart render failed", "error", err.Error())
		c = nil
	}

	if err := ui.Run(p, c); err != nil {
		log.LogError(err, "terminal ui failed")
		return 1
	}
	return 0
}
