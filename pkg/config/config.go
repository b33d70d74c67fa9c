// Package config loads the YAML run configuration used by the example
// programs: model options, logging setup, and an inline dataset.
package config

import (
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/olsstat/linear"
	"github.com/YuminosukeSato/olsstat/pkg/errors"
	"github.com/YuminosukeSato/olsstat/pkg/log"
)

const (
	FormatJSON    = "json"
	FormatZerolog = "zerolog"
)

// Config is the top-level YAML document.
//
//	confidence_level: 0.95
//	alpha: 0.01          # optional, overrides 1-confidence_level for the extra interval
//	log_level: info
//	log_format: json     # json | zerolog
//	precision: 4
//	plot_dir: ./plots    # optional
//	dataset:
//	  features: [size, age]
//	  x: [[1, 2], [2, 1], [3, 5]]
//	  y: [3, 4, 8]
type Config struct {
	ConfidenceLevel float64  `yaml:"confidence_level"`
	Alpha           *float64 `yaml:"alpha"`
	LogLevel        string   `yaml:"log_level"`
	LogFormat       string   `yaml:"log_format"`
	Precision       int      `yaml:"precision"`
	PlotDir         string   `yaml:"plot_dir"`
	Dataset         Dataset  `yaml:"dataset"`
}

// Dataset holds X row by row and the response y.
type Dataset struct {
	Features []string    `yaml:"features"`
	X        [][]float64 `yaml:"x"`
	Y        []float64   `yaml:"y"`
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(b)
}

// Parse decodes a YAML document, fills defaults and validates it.
func Parse(b []byte) (*Config, error) {
	c := Config{
		ConfidenceLevel: 0.95,
		LogLevel:        "info",
		LogFormat:       FormatJSON,
		Precision:       4,
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrap(err, "unmarshal yaml")
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ranges and the shape of the dataset.
func (c *Config) Validate() error {
	if !(c.ConfidenceLevel > 0 && c.ConfidenceLevel < 1) {
		return errors.NewValidationError("confidence_level", "must be in (0, 1)", c.ConfidenceLevel)
	}
	if c.Alpha != nil && !(*c.Alpha > 0 && *c.Alpha < 1) {
		return errors.NewValidationError("alpha", "must be in (0, 1)", *c.Alpha)
	}
	if _, err := log.ToLogLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("log_level", err.Error(), c.LogLevel)
	}
	if c.LogFormat != FormatJSON && c.LogFormat != FormatZerolog {
		return errors.NewValidationError("log_format", "must be json or zerolog", c.LogFormat)
	}
	if c.Precision < 0 {
		return errors.NewValidationError("precision", "must be non-negative", c.Precision)
	}
	return c.Dataset.validate()
}

func (d *Dataset) validate() error {
	if len(d.X) == 0 {
		return errors.NewValidationError("dataset.x", "must not be empty", 0)
	}
	width := len(d.X[0])
	if width == 0 {
		return errors.NewValidationError("dataset.x", "rows must have at least one column", 0)
	}
	for i, row := range d.X {
		if len(row) != width {
			return errors.NewValidationError("dataset.x", "ragged rows", i)
		}
	}
	if len(d.Y) != len(d.X) {
		return errors.NewValidationError("dataset.y", "length must match the rows of dataset.x", len(d.Y))
	}
	if len(d.Features) > 0 && len(d.Features) != width {
		return errors.NewValidationError("dataset.features", "must name every column of dataset.x", len(d.Features))
	}
	return nil
}

// Matrices returns the dataset as an n×d design and a length-n response.
func (d *Dataset) Matrices() (*mat.Dense, *mat.VecDense) {
	n, w := len(d.X), len(d.X[0])
	X := mat.NewDense(n, w, nil)
	for i, row := range d.X {
		X.SetRow(i, row)
	}
	return X, mat.NewVecDense(n, append([]float64(nil), d.Y...))
}

// Logger builds the logger selected by log_format. The json format also
// installs itself as the slog default.
func (c *Config) Logger(w io.Writer) (log.Logger, error) {
	switch c.LogFormat {
	case FormatZerolog:
		level, err := log.ToLogLevel(c.LogLevel)
		if err != nil {
			return nil, err
		}
		return log.NewZerologLogger(w, log.Level(level)), nil
	default:
		if err := log.SetupLoggerTo(w, c.LogLevel); err != nil {
			return nil, err
		}
		return log.GetLogger(), nil
	}
}

// ModelOptions translates the configuration into linear.Option values.
func (c *Config) ModelOptions(logger log.Logger) []linear.Option {
	opts := []linear.Option{
		linear.WithConfidenceLevel(c.ConfidenceLevel),
		linear.WithPrecision(c.Precision),
	}
	if len(c.Dataset.Features) > 0 {
		opts = append(opts, linear.WithFeatureNames(c.Dataset.Features...))
	}
	if logger != nil {
		opts = append(opts, linear.WithLogger(logger))
	}
	return opts
}
