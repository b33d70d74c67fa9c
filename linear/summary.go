package linear

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// BasicSummary はモデル全体の当てはまりの要約
type BasicSummary struct {
	NSamples          int
	NFeatures         int
	RSquared          float64
	AdjustedRSquared  float64
	Variance          float64
	StandardDeviation float64
	RMSE              float64
	FStatistic        float64
	PValue            float64
	AIC               float64
	BIC               float64

	precision int
}

// CoefficientRow は係数1つ分の推定結果
type CoefficientRow struct {
	Name     string
	Estimate float64
	StdErr   float64
	TStat    float64
	PValue   float64
	Lower    float64
	Upper    float64
}

// CoefficientSummary は係数ごとの推定・検定・信頼区間の表
// Rows の先頭は切片。
type CoefficientSummary struct {
	ConfidenceLevel float64
	Rows            []CoefficientRow

	precision int
}

// SummaryBasic は n, d, R², 分散, 標準偏差, RMSE, F 統計量, p 値をまとめる
//
// 自由度調整済み R² と AIC/BIC も含む。残差自由度が0以下、または応答変数が
// 定数の場合は DegenerateModelError。
func (lr *LinearRegression) SummaryBasic() (*BasicSummary, error) {
	if err := lr.RequireFitted(modelName, "SummaryBasic"); err != nil {
		return nil, err
	}

	s := &BasicSummary{
		NSamples:  lr.n,
		NFeatures: lr.d,
		precision: lr.precision,
	}

	var err error
	if s.RSquared, err = lr.RSquared(); err != nil {
		return nil, err
	}
	if s.AdjustedRSquared, err = lr.AdjustedRSquared(); err != nil {
		return nil, err
	}
	if s.Variance, err = lr.Variance(); err != nil {
		return nil, err
	}
	if s.StandardDeviation, err = lr.StandardDeviation(); err != nil {
		return nil, err
	}
	if s.RMSE, err = lr.RootMeanSquaredError(); err != nil {
		return nil, err
	}
	if s.FStatistic, s.PValue, err = lr.Significance(); err != nil {
		return nil, err
	}
	if s.AIC, err = lr.AIC(); err != nil {
		return nil, err
	}
	if s.BIC, err = lr.BIC(); err != nil {
		return nil, err
	}
	return s, nil
}

// SummaryCoefficients は係数ごとの推定値・標準誤差・t 値・p 値・信頼区間をまとめる
func (lr *LinearRegression) SummaryCoefficients() (*CoefficientSummary, error) {
	if err := lr.RequireFitted(modelName, "SummaryCoefficients"); err != nil {
		return nil, err
	}

	tStats, pValues, err := lr.ParameterSignificance()
	if err != nil {
		return nil, err
	}
	ci, err := lr.ConfidenceInterval()
	if err != nil {
		return nil, err
	}
	se := lr.standardErrors()

	s := &CoefficientSummary{
		ConfidenceLevel: lr.confidenceLevel,
		Rows:            make([]CoefficientRow, lr.d+1),
		precision:       lr.precision,
	}
	for i := range s.Rows {
		s.Rows[i] = CoefficientRow{
			Name:     lr.labels[i],
			Estimate: lr.coef.AtVec(i),
			StdErr:   se[i],
			TStat:    tStats[i],
			PValue:   pValues[i],
			Lower:    ci.At(i, 0),
			Upper:    ci.At(i, 1),
		}
	}
	return s, nil
}

func formatFloat(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}

// String はラベル付きの表を返す
func (s *BasicSummary) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	f := func(v float64) string { return formatFloat(v, s.precision) }
	fmt.Fprintln(w, "OLS Regression Results")
	fmt.Fprintf(w, "No. Observations:\t%d\n", s.NSamples)
	fmt.Fprintf(w, "No. Features:\t%d\n", s.NFeatures)
	fmt.Fprintf(w, "R-squared:\t%s\n", f(s.RSquared))
	fmt.Fprintf(w, "Adj. R-squared:\t%s\n", f(s.AdjustedRSquared))
	fmt.Fprintf(w, "Variance:\t%s\n", f(s.Variance))
	fmt.Fprintf(w, "Std. Deviation:\t%s\n", f(s.StandardDeviation))
	fmt.Fprintf(w, "RMSE:\t%s\n", f(s.RMSE))
	fmt.Fprintf(w, "F-statistic:\t%s\n", f(s.FStatistic))
	fmt.Fprintf(w, "Prob (F-statistic):\t%s\n", f(s.PValue))
	fmt.Fprintf(w, "AIC:\t%s\n", f(s.AIC))
	fmt.Fprintf(w, "BIC:\t%s\n", f(s.BIC))
	_ = w.Flush()

	return b.String()
}

// String は係数表を返す
func (s *CoefficientSummary) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	lowPct := (1 - s.ConfidenceLevel) / 2 * 100
	highPct := 100 - lowPct
	fmt.Fprintf(w, "\tcoef\tstd err\tt\tP>|t|\t[%.4g%%\t%.4g%%]\t\n", lowPct, highPct)

	f := func(v float64) string { return formatFloat(v, s.precision) }
	for _, r := range s.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Name, f(r.Estimate), f(r.StdErr), f(r.TStat), f(r.PValue), f(r.Lower), f(r.Upper))
	}
	_ = w.Flush()

	return b.String()
}
