// Package linear は切片付き重回帰（最小二乗法）と、その統計的推測を提供します。
//
// LinearRegression は Fit で係数を求めたあと、残差・平方和の分解・F検定・
// 係数ごとの t 検定・信頼区間・説明変数間の相関・要約表を問い合わせ時に
// 計算します。残差分散と共分散行列、予測値は最初の問い合わせで計算して
// キャッシュし、再度 Fit すると破棄されます。
//
// LinearRegression は並行利用に対して安全ではありません。
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/olsstat/core/model"
	"github.com/YuminosukeSato/olsstat/metrics"
	"github.com/YuminosukeSato/olsstat/pkg/errors"
	"github.com/YuminosukeSato/olsstat/pkg/log"
)

const (
	modelName = "LinearRegression"

	// InterceptName は要約表での切片のラベル
	InterceptName = "const"

	defaultConfidenceLevel = 0.95
	defaultPrecision       = 4
)

// compile-time interface checks
var (
	_ model.Regressor   = (*LinearRegression)(nil)
	_ model.LinearModel = (*LinearRegression)(nil)
)

// LinearRegression は切片付き線形回帰モデル
type LinearRegression struct {
	model.BaseEstimator

	// 設定
	confidenceLevel float64
	featureNames    []string
	rcond           float64
	precision       int
	logger          log.Logger

	// Fit で確定する状態
	design   *mat.Dense    // n×(d+1)、先頭列は1
	response *mat.VecDense // 長さ n
	coef     *mat.VecDense // 長さ d+1、先頭が切片
	gramInv  *mat.Dense    // pinv(XᵀX)
	labels   []string      // 長さ d+1、先頭は InterceptName
	n, d     int
	rank     int

	// 遅延計算キャッシュ。sigma2 と cov は常に同時に設定・破棄される
	sigma2 *float64
	cov    *mat.Dense
	yHat   *mat.VecDense
}

// NewLinearRegression は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	lr := linear.NewLinearRegression(
//	    linear.WithConfidenceLevel(0.99),
//	    linear.WithFeatureNames("age", "income"),
//	)
//	if err := lr.Fit(X, y); err != nil {
//	    return err
//	}
//	s, err := lr.SummaryCoefficients()
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		confidenceLevel: defaultConfidenceLevel,
		rcond:           defaultRcond,
		precision:       defaultPrecision,
	}
	for _, opt := range opts {
		opt(lr)
	}
	if lr.logger == nil {
		lr.logger = log.GetLogger()
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
//
// X は n×d、y は長さ n の列ベクトル（n×1）または行ベクトル（1×n）。
// 計画行列 [1, X] のグラム行列の擬似逆行列から b = (XᵀX)⁺ Xᵀy を求める。
// グラム行列がランク落ちしている場合はエラーではなく RankDeficientWarning を
// 発行し、最小ノルム解を返す。
//
// 失敗した場合、モデルは未学習状態に戻る。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	const op = "LinearRegression.Fit"
	defer errors.Recover(&err, op)

	// 以前の学習結果とキャッシュを破棄する
	lr.clear()

	r, c := X.Dims()
	if r == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if c == 0 {
		return errors.NewDimensionError(op, 1, 0, 1)
	}

	yVec, err := metrics.ToVector(op, y)
	if err != nil {
		return err
	}
	if yVec.Len() != r {
		return errors.NewDimensionError(op, r, yVec.Len(), 0)
	}

	if err := lr.validate(c); err != nil {
		return err
	}

	if err := errors.CheckMatrix(op, X, r, c, 0); err != nil {
		return err
	}
	if err := errors.CheckMatrix(op, yVec, r, 1, 0); err != nil {
		return err
	}

	// 切片項のために X に 1 の列を追加
	design := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		design.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			design.Set(i, j+1, X.At(i, j))
		}
	}

	// 正規方程式 (XᵀX) b = Xᵀy を擬似逆行列で解く
	var gram mat.Dense
	gram.Mul(design.T(), design)

	gramInv, rank, err := pseudoInverse(&gram, lr.rcond)
	if err != nil {
		return err
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), yVec)

	coef := mat.NewVecDense(c+1, nil)
	coef.MulVec(gramInv, &xty)

	if err := errors.CheckMatrix(op, coef, c+1, 1, 0); err != nil {
		return err
	}

	lr.design = design
	lr.response = yVec
	lr.coef = coef
	lr.gramInv = gramInv
	lr.n, lr.d = r, c
	lr.rank = rank
	lr.labels = lr.makeLabels(c)
	lr.SetFitted()

	if rank < c+1 {
		w := errors.NewRankDeficientWarning(op, rank, c+1)
		errors.Warn(w)
		lr.logger.Warn(w.Error(),
			log.ModelNameKey, modelName,
			log.ErrorCodeKey, log.ErrorRankDeficient,
			log.RankKey, rank,
		)
	}

	lr.logger.Debug("linear regression fitted",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationFit,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.RankKey, rank,
		log.ResidualDoFKey, lr.ResidualDoF(),
	)

	return nil
}

// validate は設定値を検証する
func (lr *LinearRegression) validate(nFeatures int) error {
	if !(lr.confidenceLevel > 0 && lr.confidenceLevel < 1) {
		return errors.NewValidationError("confidence_level", "must be in (0, 1)", lr.confidenceLevel)
	}
	if !(lr.rcond >= 0 && lr.rcond < 1) {
		return errors.NewValidationError("rcond", "must be in [0, 1)", lr.rcond)
	}
	if lr.precision < 0 {
		return errors.NewValidationError("precision", "must be non-negative", lr.precision)
	}
	if len(lr.featureNames) > 0 && len(lr.featureNames) != nFeatures {
		return errors.NewValidationError("feature_names",
			fmt.Sprintf("expected %d names to match the columns of X", nFeatures), len(lr.featureNames))
	}
	return nil
}

func (lr *LinearRegression) makeLabels(nFeatures int) []string {
	labels := make([]string, nFeatures+1)
	labels[0] = InterceptName
	for j := 0; j < nFeatures; j++ {
		if len(lr.featureNames) > 0 {
			labels[j+1] = lr.featureNames[j]
		} else {
			labels[j+1] = fmt.Sprintf("x%d", j+1)
		}
	}
	return labels
}

// clear は学習結果とすべてのキャッシュを破棄し、未学習状態に戻す
func (lr *LinearRegression) clear() {
	lr.Reset()
	lr.design = nil
	lr.response = nil
	lr.coef = nil
	lr.gramInv = nil
	lr.labels = nil
	lr.n, lr.d, lr.rank = 0, 0, 0
	lr.sigma2 = nil
	lr.cov = nil
	lr.yHat = nil
}

// Coefficients は傾き係数（切片を除く d 個）を返す。未学習なら nil
func (lr *LinearRegression) Coefficients() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	out := make([]float64, lr.d)
	for j := range out {
		out[j] = lr.coef.AtVec(j + 1)
	}
	return out
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.coef.AtVec(0)
}

// Params は切片を含む d+1 個の係数を返す
func (lr *LinearRegression) Params() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	return mat.Col(nil, 0, lr.coef)
}

// NSamples は学習に使った行数 n を返す
func (lr *LinearRegression) NSamples() int { return lr.n }

// NFeatures は説明変数の数 d を返す
func (lr *LinearRegression) NFeatures() int { return lr.d }

// Rank はグラム行列の数値ランクを返す
func (lr *LinearRegression) Rank() int { return lr.rank }

// ResidualDoF は残差自由度 n-d-1 を返す
func (lr *LinearRegression) ResidualDoF() int {
	if !lr.IsFitted() {
		return 0
	}
	return lr.n - lr.d - 1
}

// ConfidenceLevel は設定された信頼水準を返す
func (lr *LinearRegression) ConfidenceLevel() float64 { return lr.confidenceLevel }

// FeatureNames は説明変数のラベルを返す。学習前は設定された名前を返す
func (lr *LinearRegression) FeatureNames() []string {
	if lr.IsFitted() {
		return append([]string(nil), lr.labels[1:]...)
	}
	return append([]string(nil), lr.featureNames...)
}

// GramInverse は pinv(XᵀX) のコピーを返す
func (lr *LinearRegression) GramInverse() (*mat.Dense, error) {
	if err := lr.RequireFitted(modelName, "GramInverse"); err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(lr.gramInv), nil
}

// fittedValues は予測値 ŷ = Xb を遅延計算してキャッシュを返す
func (lr *LinearRegression) fittedValues() *mat.VecDense {
	if lr.yHat == nil {
		yHat := mat.NewVecDense(lr.n, nil)
		yHat.MulVec(lr.design, lr.coef)
		lr.yHat = yHat
	}
	return lr.yHat
}

// FittedValues は学習データに対する予測値 ŷ のコピーを返す
func (lr *LinearRegression) FittedValues() (*mat.VecDense, error) {
	if err := lr.RequireFitted(modelName, "FittedValues"); err != nil {
		return nil, err
	}
	return mat.VecDenseCopyOf(lr.fittedValues()), nil
}

func (lr *LinearRegression) residuals() *mat.VecDense {
	res := mat.NewVecDense(lr.n, nil)
	res.SubVec(lr.response, lr.fittedValues())
	return res
}

// Residuals は残差 y - ŷ を返す
func (lr *LinearRegression) Residuals() (*mat.VecDense, error) {
	if err := lr.RequireFitted(modelName, "Residuals"); err != nil {
		return nil, err
	}
	return lr.residuals(), nil
}

// Predict は入力データに対する予測を行う
// 予測: y = X * b[1:] + b[0]
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError("LinearRegression.Predict", "empty data", errors.ErrEmptyData)
	}
	if c != lr.d {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.d, c, 1)
	}

	slopes := lr.coef.SliceVec(1, lr.d+1)
	var pred mat.VecDense
	pred.MulVec(X, slopes)

	out := mat.NewDense(r, 1, nil)
	intercept := lr.coef.AtVec(0)
	for i := 0; i < r; i++ {
		out.Set(i, 0, pred.AtVec(i)+intercept)
	}

	lr.logger.Debug("linear regression predicted",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, r,
	)
	return out, nil
}

// predictVec は Predict の結果と y をベクトルとして揃える
func (lr *LinearRegression) predictVec(op string, X, y mat.Matrix) (yTrue, yPred *mat.VecDense, err error) {
	yTrue, err = metrics.ToVector(op, y)
	if err != nil {
		return nil, nil, err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return nil, nil, err
	}

	r, _ := pred.Dims()
	if yTrue.Len() != r {
		return nil, nil, errors.NewDimensionError(op, r, yTrue.Len(), 0)
	}
	return yTrue, mat.NewVecDense(r, mat.Col(nil, 0, pred)), nil
}

// Score はモデルの決定係数（R²）をホールドアウトデータで計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}

	yTrue, yPred, err := lr.predictVec("LinearRegression.Score", X, y)
	if err != nil {
		return 0, err
	}

	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	lr.logger.Debug("linear regression scored",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationScore,
		log.SamplesKey, yTrue.Len(),
		log.R2ScoreKey, r2,
	)
	return r2, nil
}

// Evaluation はホールドアウトデータでの評価指標。いずれも n で正規化する
type Evaluation struct {
	NSamples          int
	MSE               float64
	RMSE              float64
	MAE               float64
	R2                float64
	MAPE              float64
	ExplainedVariance float64
}

// Evaluate はホールドアウトデータに対する回帰指標をまとめて計算する
func (lr *LinearRegression) Evaluate(X, y mat.Matrix) (*Evaluation, error) {
	if err := lr.RequireFitted(modelName, "Evaluate"); err != nil {
		return nil, err
	}

	yTrue, yPred, err := lr.predictVec("LinearRegression.Evaluate", X, y)
	if err != nil {
		return nil, err
	}

	ev := &Evaluation{NSamples: yTrue.Len()}
	metricFns := []struct {
		dst *float64
		fn  func(yTrue, yPred *mat.VecDense) (float64, error)
	}{
		{&ev.MSE, metrics.MSE},
		{&ev.RMSE, metrics.RMSE},
		{&ev.MAE, metrics.MAE},
		{&ev.R2, metrics.R2Score},
		{&ev.MAPE, metrics.MAPE},
		{&ev.ExplainedVariance, metrics.ExplainedVarianceScore},
	}
	for _, m := range metricFns {
		v, err := m.fn(yTrue, yPred)
		if err != nil {
			return nil, errors.Wrap(err, "LinearRegression.Evaluate")
		}
		*m.dst = v
	}

	lr.logger.Debug("linear regression evaluated",
		log.ModelNameKey, modelName,
		log.OperationKey, log.OperationEvaluate,
		log.SamplesKey, ev.NSamples,
		log.R2ScoreKey, ev.R2,
	)
	return ev, nil
}
