// Package metrics は学習済みモデルをホールドアウトデータで評価するための回帰指標を提供します。
//
// いずれの指標も標本数 n で正規化します。回帰診断で使う残差自由度 n-d-1 による
// 不偏推定とは異なる点に注意してください。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// ToVector は n×1 または 1×n の行列を長さ n のベクトルに変換する
func ToVector(op string, m mat.Matrix) (*mat.VecDense, error) {
	if v, ok := m.(*mat.VecDense); ok {
		return mat.VecDenseCopyOf(v), nil
	}

	r, c := m.Dims()
	switch {
	case c == 1:
		return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
	case r == 1:
		return mat.NewVecDense(c, mat.Row(nil, 0, m)), nil
	default:
		return nil, errors.NewDimensionError(op, 1, c, 1)
	}
}

// values はストライドを考慮してベクトルの要素をスライスにコピーする
func values(v *mat.VecDense) []float64 {
	if v.Len() == 0 {
		return nil
	}
	return mat.Col(nil, 0, v)
}

// checkPair は2つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) ([]float64, []float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return values(yTrue), values(yPred), nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	diff := make([]float64, len(t))
	floats.SubTo(diff, t, p)
	return floats.Dot(diff, diff) / float64(len(t)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "RMSE")
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score は決定係数（R²）を計算する
//
// 予測が平均より悪い場合は負の値になる。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := stat.Mean(t, nil)
	var tss, rss float64
	for i := range t {
		tss += (t[i] - yMean) * (t[i] - yMean)
		rss += (t[i] - p[i]) * (t[i] - p[i])
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// MAPE は平均絶対パーセンテージ誤差を計算する
// yTrue が0の要素は除外する。
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := checkPair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAPE = (100/n) * Σ|yTrue - yPred|/|yTrue|
	var sum float64
	validCount := 0
	for i := range t {
		if t[i] != 0 {
			sum += math.Abs(t[i]-p[i]) / math.Abs(t[i])
			validCount++
		}
	}

	if validCount == 0 {
		return 0, errors.NewValueError("MAPE", "all yTrue values are zero")
	}

	return (sum / float64(validCount)) * 100, nil
}

// ExplainedVarianceScore は説明分散スコアを計算する
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := checkPair("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	diff := make([]float64, len(t))
	floats.SubTo(diff, t, p)

	_, varYTrue := stat.PopMeanVariance(t, nil)
	_, varDiff := stat.PopMeanVariance(diff, nil)

	if varYTrue == 0 {
		return 0, errors.NewValueError("ExplainedVarianceScore", "no variance in yTrue")
	}

	// 説明分散スコア = 1 - Var(yTrue - yPred) / Var(yTrue)
	return 1 - varDiff/varYTrue, nil
}
