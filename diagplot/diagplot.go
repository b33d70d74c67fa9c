// Package diagplot draws residual diagnostics for a fitted regression with
// gonum/plot.
//
// Two plots are provided: residuals against fitted values, which shows
// non-linearity and heteroscedasticity, and a normal Q-Q plot of the
// standardized residuals, which shows departures from normal errors.
package diagplot

import (
	"io"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// Size is the width and height of every rendered plot.
const Size = 4 * vg.Inch

// Source provides the fitted values and residuals of a model.
// *linear.LinearRegression satisfies it.
type Source interface {
	FittedValues() (*mat.VecDense, error)
	Residuals() (*mat.VecDense, error)
}

// ResidualsVsFitted plots residuals against fitted values with a zero
// reference line. Errors from src are returned unchanged.
func ResidualsVsFitted(src Source) (*plot.Plot, error) {
	fitted, err := src.FittedValues()
	if err != nil {
		return nil, err
	}
	res, err := src.Residuals()
	if err != nil {
		return nil, err
	}
	if fitted.Len() != res.Len() {
		return nil, errors.NewDimensionError("diagplot.ResidualsVsFitted", fitted.Len(), res.Len(), 0)
	}

	pts := make(plotter.XYs, res.Len())
	for i := range pts {
		pts[i].X = fitted.AtVec(i)
		pts[i].Y = res.AtVec(i)
	}

	p := plot.New()
	p.Title.Text = "Residuals vs Fitted"
	p.X.Label.Text = "Fitted values"
	p.Y.Label.Text = "Residuals"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "diagplot.ResidualsVsFitted")
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	p.Add(plotter.NewGrid(), scatter, zero)
	return p, nil
}

// NormalQQ plots sorted standardized residuals against standard normal
// quantiles at (i-0.5)/n, with the y = x reference line.
func NormalQQ(src Source) (*plot.Plot, error) {
	const op = "diagplot.NormalQQ"

	res, err := src.Residuals()
	if err != nil {
		return nil, err
	}
	n := res.Len()
	if n < 2 {
		return nil, errors.NewValueError(op, "at least two residuals are required")
	}

	r := mat.Col(nil, 0, res)
	mean, sd := stat.MeanStdDev(r, nil)
	if sd == 0 {
		return nil, errors.NewValueError(op, "residuals have zero variance")
	}
	for i := range r {
		r[i] = (r[i] - mean) / sd
	}
	sort.Float64s(r)

	pts := make(plotter.XYs, n)
	for i := range pts {
		pts[i].X = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
		pts[i].Y = r[i]
	}

	p := plot.New()
	p.Title.Text = "Normal Q-Q"
	p.X.Label.Text = "Theoretical quantiles"
	p.Y.Label.Text = "Standardized residuals"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	diag := plotter.NewFunction(func(x float64) float64 { return x })

	p.Add(plotter.NewGrid(), scatter, diag)
	return p, nil
}

// Save writes p to path. The format follows the file extension
// (.png, .svg, .pdf, ...).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Size, Size, path); err != nil {
		return errors.Wrapf(err, "diagplot: save %s", path)
	}
	return nil
}

// WriteTo renders p to w in the given format ("png", "svg", "pdf", ...).
func WriteTo(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Size, Size, format)
	if err != nil {
		return errors.Wrapf(err, "diagplot: render %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "diagplot: write")
	}
	return nil
}
