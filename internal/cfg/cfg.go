// Package cfg loads application configuration by layering defaults, an
// optional YAML file, and environment variables.
//
// Precedence (low -> high):
//  1. defaults
//  2. YAML file named by VGS_CONFIG, if set
//  3. environment variables with the VGS_ prefix (VGS_DATA_PATH, ...)
package cfg

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	vgerrors "vgsales-predictor/pkg/errors"
)

// Config contains process configuration.
type Config struct {
	// DataPath is the training CSV location.
	DataPath string `koanf:"data_path"`

	// Estimators is the number of trees in the forest.
	Estimators int `koanf:"estimators"`

	// Seed drives the forest's bootstrap sampling.
	Seed int64 `koanf:"seed"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ChartPath is where the sales scatter chart is rendered.
	ChartPath string `koanf:"chart_path"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DataPath:   "data/vgsales.csv",
		Estimators: 10,
		Seed:       42,
		LogLevel:   "info",
		ChartPath:  "vgsales.png",
	}
}

// Load builds a Config from defaults, the optional VGS_CONFIG file, and
// VGS_-prefixed environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("VGS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, vgerrors.Wrapf(err, "loading config file %s", path)
		}
	}

	// VGS_DATA_PATH -> data_path, matching the koanf struct tags.
	envProvider := env.Provider("VGS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "vgs_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, vgerrors.Wrap(err, "loading environment config")
	}

	cfg := *Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, vgerrors.Wrap(err, "unmarshaling config")
	}

	if cfg.DataPath == "" {
		return nil, vgerrors.NewValueError("cfg.Load", "data_path must not be empty")
	}
	if cfg.Estimators < 1 {
		return nil, vgerrors.NewValueError("cfg.Load", "estimators must be >= 1")
	}
	return &cfg, nil
}
