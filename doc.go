// Package olsstat provides ordinary least squares linear regression with the
// statistical inference you would expect from a statistics package:
// goodness of fit, F and t tests, confidence intervals, information
// criteria and predictor correlation.
//
// The model is fitted once on a design matrix X (n×d) and a response y, and
// every diagnostic is derived from that single fit. Sums of squares, the
// residual variance and the parameter covariance are computed lazily and
// cached until the next Fit.
//
// # Installation
//
//	go get github.com/YuminosukeSato/olsstat
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/olsstat/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
//	    y := mat.NewVecDense(5, []float64{2, 4, 5, 4, 5})
//
//	    model := linear.NewLinearRegression(linear.WithFeatureNames("x"))
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    basic, err := model.SummaryBasic()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    coefs, err := model.SummaryCoefficients()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(basic)
//	    fmt.Println(coefs)
//	}
//
// # Packages
//
//   - linear: LinearRegression, its sum-of-squares decomposition, inference and summaries
//   - metrics: regression metrics (MSE, RMSE, MAE, R², MAPE, explained variance)
//   - preprocessing: StandardScaler, used for standardized coefficients
//   - diagplot: residual diagnostic plots rendered with gonum/plot
//   - core/model: estimator state and the Fitter/Predictor interfaces
//   - pkg/config: YAML run configuration
//   - pkg/errors: typed errors and warnings built on cockroachdb/errors
//   - pkg/log: structured logging over log/slog or zerolog
//
// # Errors
//
// Statistics that cannot be computed return typed errors instead of NaN:
//
//	if _, err := model.Variance(); err != nil {
//	    var degenerate *errors.DegenerateModelError
//	    if errors.As(err, &degenerate) {
//	        // n <= d+1, no residual degrees of freedom
//	    }
//	}
//
// Conditions that still produce a usable value, such as a rank deficient
// design or a constant predictor in the correlation matrix, are reported
// through errors.Warn and the configured logger.
//
// A LinearRegression is not safe for concurrent use.
package olsstat
