package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
	"github.com/YuminosukeSato/olsstat/pkg/log"
)

// requireDoF は残差自由度 n-d-1 が正であることを確認する
func (lr *LinearRegression) requireDoF(op string) error {
	if dof := lr.ResidualDoF(); dof <= 0 {
		return errors.NewDegenerateModelError(op, "not enough observations for the residual degrees of freedom", dof)
	}
	return nil
}

func (lr *LinearRegression) sse() float64 {
	res := lr.residuals()
	return mat.Dot(res, res)
}

func (lr *LinearRegression) syy() float64 {
	y := lr.response.RawVector().Data
	if floats.Max(y) == floats.Min(y) {
		return 0
	}
	mean := stat.Mean(y, nil)
	var s float64
	for _, v := range y {
		s += (v - mean) * (v - mean)
	}
	return s
}

// ssr は Syy - SSE を返す。負の値は数値的な異常として警告する
// 応答変数が定数なら丸め誤差の SSE は無視して 0。
func (lr *LinearRegression) ssr() float64 {
	syy := lr.syy()
	if syy == 0 {
		return 0
	}
	v := syy - lr.sse()
	if v < 0 {
		w := errors.NewNumericalWarning("LinearRegression.RegressionSumOfSquares", "SSR", v,
			"regression sum of squares is negative; the fit is numerically unreliable")
		errors.Warn(w)
		lr.logger.Warn(w.Error(),
			log.ModelNameKey, modelName,
			log.ErrorCodeKey, log.ErrorNegativeSSR,
			log.QuantityKey, "SSR",
			log.ValueKey, v,
		)
	}
	return v
}

// SumSquaredError は残差平方和 SSE を返す
func (lr *LinearRegression) SumSquaredError() (float64, error) {
	if err := lr.RequireFitted(modelName, "SumSquaredError"); err != nil {
		return 0, err
	}
	return lr.sse(), nil
}

// MeanSquaredError は SSE/(n-d-1) を返す
//
// 分母は n ではなく残差自由度。ホールドアウト評価用の n で割る MSE は
// Evaluate を使う。
func (lr *LinearRegression) MeanSquaredError() (float64, error) {
	const op = "LinearRegression.MeanSquaredError"
	if err := lr.RequireFitted(modelName, "MeanSquaredError"); err != nil {
		return 0, err
	}
	if err := lr.requireDoF(op); err != nil {
		return 0, err
	}
	return lr.sse() / float64(lr.ResidualDoF()), nil
}

// RootMeanSquaredError は MeanSquaredError の平方根を返す
func (lr *LinearRegression) RootMeanSquaredError() (float64, error) {
	mse, err := lr.MeanSquaredError()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// TotalSumOfSquares は応答変数の平均からの偏差平方和 Syy を返す
func (lr *LinearRegression) TotalSumOfSquares() (float64, error) {
	if err := lr.RequireFitted(modelName, "TotalSumOfSquares"); err != nil {
		return 0, err
	}
	return lr.syy(), nil
}

// RegressionSumOfSquares は回帰平方和 SSR = Syy - SSE を返す
//
// 切片付きモデルでは非負になるはず。負の場合は NumericalWarning を発行したうえで
// その値をそのまま返す。
func (lr *LinearRegression) RegressionSumOfSquares() (float64, error) {
	if err := lr.RequireFitted(modelName, "RegressionSumOfSquares"); err != nil {
		return 0, err
	}
	return lr.ssr(), nil
}

// RSquared は決定係数 SSR/Syy を返す
// 応答変数が定数（Syy = 0）の場合は DegenerateModelError。
func (lr *LinearRegression) RSquared() (float64, error) {
	const op = "LinearRegression.RSquared"
	if err := lr.RequireFitted(modelName, "RSquared"); err != nil {
		return 0, err
	}

	syy := lr.syy()
	if syy == 0 {
		return 0, errors.NewDegenerateModelError(op, "response has zero total sum of squares", lr.ResidualDoF())
	}
	return lr.ssr() / syy, nil
}

// AdjustedRSquared は自由度調整済み決定係数 1 - (1-R²)(n-1)/(n-d-1) を返す
func (lr *LinearRegression) AdjustedRSquared() (float64, error) {
	const op = "LinearRegression.AdjustedRSquared"
	r2, err := lr.RSquared()
	if err != nil {
		return 0, err
	}
	if err := lr.requireDoF(op); err != nil {
		return 0, err
	}
	return 1 - (1-r2)*float64(lr.n-1)/float64(lr.ResidualDoF()), nil
}

// LogLikelihood は正規誤差を仮定した対数尤度 -n/2 (1 + log(2π SSE/n)) を返す
// 完全に当てはまる場合（SSE = 0）は +Inf。
func (lr *LinearRegression) LogLikelihood() (float64, error) {
	if err := lr.RequireFitted(modelName, "LogLikelihood"); err != nil {
		return 0, err
	}
	n := float64(lr.n)
	return -0.5 * n * (1 + math.Log(2*math.Pi*lr.sse()/n)), nil
}

// AIC は赤池情報量規準 -2logL + 2k を返す（k = d+1）
func (lr *LinearRegression) AIC() (float64, error) {
	ll, err := lr.LogLikelihood()
	if err != nil {
		return 0, err
	}
	return -2*ll + 2*float64(lr.d+1), nil
}

// BIC はベイズ情報量規準 -2logL + k log(n) を返す（k = d+1）
func (lr *LinearRegression) BIC() (float64, error) {
	ll, err := lr.LogLikelihood()
	if err != nil {
		return 0, err
	}
	return -2*ll + float64(lr.d+1)*math.Log(float64(lr.n)), nil
}
