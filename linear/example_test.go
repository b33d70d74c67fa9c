package linear_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/olsstat/linear"
	"github.com/YuminosukeSato/olsstat/pkg/log"
)

func ExampleLinearRegression() {
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewVecDense(5, []float64{2, 4, 5, 4, 5})

	quiet, _ := log.NewTestLogger(log.LevelError)
	lr := linear.NewLinearRegression(linear.WithLogger(quiet))
	if err := lr.Fit(X, y); err != nil {
		fmt.Println(err)
		return
	}

	r2, _ := lr.RSquared()
	variance, _ := lr.Variance()
	f, _, _ := lr.Significance()

	fmt.Printf("intercept=%.4f slope=%.4f\n", lr.Intercept(), lr.Coefficients()[0])
	fmt.Printf("R2=%.4f variance=%.4f F=%.4f\n", r2, variance, f)
	// Output:
	// intercept=2.2000 slope=0.6000
	// R2=0.6000 variance=0.8000 F=4.5000
}

func ExampleLinearRegression_Variance() {
	// three points and two predictors leave no residual degrees of freedom
	X := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 4})

	quiet, _ := log.NewTestLogger(log.LevelError)
	lr := linear.NewLinearRegression(linear.WithLogger(quiet))
	_ = lr.Fit(X, y)

	_, err := lr.Variance()
	fmt.Println(err)
	// Output:
	// olsstat: LinearRegression.Variance: degenerate model: not enough observations for the residual degrees of freedom (residual degrees of freedom: 0)
}
