package linear

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
	"github.com/YuminosukeSato/olsstat/preprocessing"
)

// PearsonCorrelation は説明変数（切片列を除く）間のピアソン相関行列 d×d を返す
//
// 対角成分は常に1。分散0の列を含む組の相関は0とし、その列ごとに
// UndefinedMetricWarning を発行する。丸め誤差で [-1, 1] を外れた値は切り詰める。
func (lr *LinearRegression) PearsonCorrelation() (*mat.SymDense, error) {
	if err := lr.RequireFitted(modelName, "PearsonCorrelation"); err != nil {
		return nil, err
	}

	d := lr.d
	centered := make([][]float64, d)
	norms := make([]float64, d)
	for j := 0; j < d; j++ {
		col := mat.Col(nil, j+1, lr.design)
		constant := floats.Max(col) == floats.Min(col)
		floats.AddConst(-floats.Sum(col)/float64(lr.n), col)
		centered[j] = col
		if !constant {
			norms[j] = floats.Norm(col, 2)
		}

		if norms[j] == 0 && d > 1 {
			errors.Warn(errors.NewUndefinedMetricWarning(
				fmt.Sprintf("pearson_correlation(%s)", lr.labels[j+1]),
				"zero variance in predictor", 0))
		}
	}

	corr := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		corr.SetSym(i, i, 1)
		for j := i + 1; j < d; j++ {
			var r float64
			if norms[i] != 0 && norms[j] != 0 {
				r = floats.Dot(centered[i], centered[j]) / (norms[i] * norms[j])
				r = errors.ClipValue(r, -1, 1)
			}
			corr.SetSym(i, j, r)
		}
	}
	return corr, nil
}

// StandardizedCoefficients は標準化（ベータ）係数 b_j·sd(x_j)/sd(y) を返す
//
// 切片は含まない。分散0の説明変数の係数は0とし UndefinedMetricWarning を
// 発行する。応答変数が定数の場合は DegenerateModelError。
func (lr *LinearRegression) StandardizedCoefficients() ([]float64, error) {
	const op = "LinearRegression.StandardizedCoefficients"
	if err := lr.RequireFitted(modelName, "StandardizedCoefficients"); err != nil {
		return nil, err
	}

	// [X | y] をまとめて標準化し、列ごとの標準偏差を得る
	var data mat.Dense
	data.Augment(lr.design.Slice(0, lr.n, 1, lr.d+1), lr.response)

	scaler := preprocessing.NewStandardScalerDefault()
	if err := scaler.Fit(&data); err != nil {
		return nil, errors.Wrap(err, op)
	}
	if scaler.IsConstant(lr.d) {
		return nil, errors.NewDegenerateModelError(op, "response has zero total sum of squares", lr.ResidualDoF())
	}

	sdY := scaler.Scale[lr.d]
	beta := make([]float64, lr.d)
	for j := range beta {
		if scaler.IsConstant(j) {
			errors.Warn(errors.NewUndefinedMetricWarning(
				fmt.Sprintf("standardized_coefficient(%s)", lr.labels[j+1]),
				"zero variance in predictor", 0))
			continue
		}
		beta[j] = lr.coef.AtVec(j+1) * scaler.Scale[j] / sdY
	}
	return beta, nil
}
