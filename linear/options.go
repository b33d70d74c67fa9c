package linear

import (
	"github.com/YuminosukeSato/olsstat/pkg/log"
)

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithConfidenceLevel sets the confidence level used by ConfidenceInterval.
// It must lie in (0,1); Fit rejects anything else.
func WithConfidenceLevel(level float64) Option {
	return func(lr *LinearRegression) {
		lr.confidenceLevel = level
	}
}

// WithFeatureNames sets the predictor labels used in summaries.
// The number of names must match the number of columns of X passed to Fit.
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.featureNames = append([]string(nil), names...)
	}
}

// WithRcond sets the relative cutoff for small singular values of the Gram
// matrix. Singular values at or below rcond times the largest one are
// treated as zero.
func WithRcond(rcond float64) Option {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}

// WithLogger sets the logger used for fit and warning events
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}

// WithPrecision sets the number of decimals used when rendering summaries
func WithPrecision(digits int) Option {
	return func(lr *LinearRegression) {
		lr.precision = digits
	}
}
