package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// Variance は残差分散の不偏推定量 σ² = SSE/(n-d-1) を返す
//
// 最初の呼び出しで σ² と共分散行列 σ²(XᵀX)⁺ を同時に計算してキャッシュする。
// 分散や共分散を必要とする他のメソッドはすべてここを経由する。
func (lr *LinearRegression) Variance() (float64, error) {
	const op = "LinearRegression.Variance"
	if err := lr.RequireFitted(modelName, "Variance"); err != nil {
		return 0, err
	}
	if err := lr.requireDoF(op); err != nil {
		return 0, err
	}

	if lr.sigma2 == nil {
		sigma2 := lr.sse() / float64(lr.ResidualDoF())

		cov := mat.NewDense(lr.d+1, lr.d+1, nil)
		cov.Scale(sigma2, lr.gramInv)

		lr.sigma2 = &sigma2
		lr.cov = cov
	}
	return *lr.sigma2, nil
}

// StandardDeviation は残差標準偏差 √σ² を返す
func (lr *LinearRegression) StandardDeviation() (float64, error) {
	v, err := lr.Variance()
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// CovarianceMatrix は係数推定量の共分散行列 σ²(XᵀX)⁺ のコピーを返す
func (lr *LinearRegression) CovarianceMatrix() (*mat.Dense, error) {
	if _, err := lr.Variance(); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(lr.cov), nil
}

// StandardErrors は各係数（切片を含む）の標準誤差を返す
func (lr *LinearRegression) StandardErrors() ([]float64, error) {
	if _, err := lr.Variance(); err != nil {
		return nil, err
	}
	return lr.standardErrors(), nil
}

func (lr *LinearRegression) standardErrors() []float64 {
	se := make([]float64, lr.d+1)
	for i := range se {
		// 丸め誤差で対角成分がわずかに負になることがある
		se[i] = math.Sqrt(math.Max(lr.cov.At(i, i), 0))
	}
	return se
}

// Significance は回帰全体の F 検定を行い、F 統計量と p 値を返す
//
// F = (SSR/d) / (SSE/(n-d-1))、p 値は自由度 (d, n-d-1) の F 分布の上側確率。
// SSE = 0 の完全な当てはまりでは F = +Inf、p = 0。
func (lr *LinearRegression) Significance() (f, p float64, err error) {
	const op = "LinearRegression.Significance"
	if err := lr.RequireFitted(modelName, "Significance"); err != nil {
		return 0, 0, err
	}
	if err := lr.requireDoF(op); err != nil {
		return 0, 0, err
	}

	if lr.syy() == 0 {
		return 0, 0, errors.NewDegenerateModelError(op, "response has zero total sum of squares", lr.ResidualDoF())
	}

	dof := float64(lr.ResidualDoF())
	sse := lr.sse()
	ssr := lr.ssr()

	if sse == 0 {
		if ssr > 0 {
			return math.Inf(1), 0, nil
		}
		return 0, 0, errors.NewDegenerateModelError(op, "regression sum of squares is not positive on an exact fit", lr.ResidualDoF())
	}

	f = (ssr / float64(lr.d)) / (sse / dof)
	if f <= 0 {
		return f, 1, nil
	}

	dist := distuv.F{D1: float64(lr.d), D2: dof}
	return f, dist.Survival(f), nil
}

// ParameterSignificance は係数ごとの t 検定を行う
//
// t = b / se、p 値は自由度 n-d-1 の t 分布での両側確率 2·min(CDF(t), 1-CDF(t))。
// 戻り値はどちらも長さ d+1 で、先頭が切片。
func (lr *LinearRegression) ParameterSignificance() (tStats, pValues []float64, err error) {
	if _, err := lr.Variance(); err != nil {
		return nil, nil, err
	}

	se := lr.standardErrors()
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(lr.ResidualDoF())}

	tStats = make([]float64, lr.d+1)
	pValues = make([]float64, lr.d+1)
	for i := range tStats {
		b := lr.coef.AtVec(i)
		switch {
		case se[i] == 0 && b == 0:
			tStats[i], pValues[i] = 0, 1
		case se[i] == 0:
			tStats[i], pValues[i] = math.Copysign(math.Inf(1), b), 0
		default:
			t := b / se[i]
			tStats[i] = t
			pValues[i] = math.Min(1, 2*math.Min(dist.CDF(t), dist.Survival(t)))
		}
	}
	return tStats, pValues, nil
}

// ConfidenceInterval は設定された信頼水準での係数の信頼区間を返す
// 結果は (d+1)×2 行列で、各行が [下限, 上限]。
func (lr *LinearRegression) ConfidenceInterval() (*mat.Dense, error) {
	return lr.ConfidenceIntervalAlpha(1 - lr.confidenceLevel)
}

// ConfidenceIntervalAlpha は有意水準 alpha での係数の信頼区間を返す
//
// 臨界値は自由度 n-d-1 の t 分布の 1-alpha/2 分位点。alpha は (0,1) でなければ
// ValidationError。
func (lr *LinearRegression) ConfidenceIntervalAlpha(alpha float64) (*mat.Dense, error) {
	if err := lr.RequireFitted(modelName, "ConfidenceInterval"); err != nil {
		return nil, err
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, errors.NewValidationError("alpha", "must be in (0, 1)", alpha)
	}
	if _, err := lr.Variance(); err != nil {
		return nil, err
	}

	se := lr.standardErrors()
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(lr.ResidualDoF())}
	crit := dist.Quantile(1 - alpha/2)

	ci := mat.NewDense(lr.d+1, 2, nil)
	for i := 0; i <= lr.d; i++ {
		b := lr.coef.AtVec(i)
		ci.Set(i, 0, b-crit*se[i])
		ci.Set(i, 1, b+crit*se[i])
	}
	return ci, nil
}
